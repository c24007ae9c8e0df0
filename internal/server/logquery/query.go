package logquery

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/exercisetracker/internal/server/models"
)

// Query holds the optional filters of a log request. A nil field is absent.
type Query struct {
	From  *time.Time
	To    *time.Time
	Limit *int
}

// Entry is the display form of one exercise.
type Entry struct {
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

// Result is the body returned by the logs endpoint.
type Result struct {
	ID       string  `json:"id"`
	UserName string  `json:"username"`
	Count    int     `json:"count"`
	Log      []Entry `json:"log"`
}

// ParseQuery reads from, to and limit from URL query values. Values that do
// not parse are dropped.
func ParseQuery(v url.Values) Query {
	var q Query

	if t, err := ParseDate(v.Get("from")); err == nil {
		q.From = &t
	}
	if t, err := ParseDate(v.Get("to")); err == nil {
		q.To = &t
	}
	if raw := strings.TrimSpace(v.Get("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			q.Limit = &n
		}
	}

	return q
}

// Run applies q to the user's log.
func Run(user *models.User, q Query) *Result {
	entries := make([]Entry, 0, len(user.Log))

	for _, ex := range user.Log {
		d := day(ex.Date)
		if q.From != nil && d.Before(*q.From) {
			continue
		}
		if q.To != nil && d.After(*q.To) {
			continue
		}
		entries = append(entries, Entry{
			Description: ex.Description,
			Duration:    ex.Duration,
			Date:        RenderDate(d),
		})
	}

	if q.Limit != nil && *q.Limit < len(entries) {
		entries = entries[:*q.Limit]
	}

	return &Result{
		ID:       user.ID,
		UserName: user.UserName,
		Count:    len(entries),
		Log:      entries,
	}
}
