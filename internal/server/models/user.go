// Package models holds the persisted shapes of the exercise tracker.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// User owns an append-only exercise log.
type User struct {
	ID        string    `json:"id"`
	UserName  string    `json:"username"`
	Log       Log       `json:"log"`
	CreatedAt time.Time `json:"-"`
}

// Exercise is one entry of a user's log. It has no identity of its own.
type Exercise struct {
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Date        time.Time `json:"date"`
}

// Log is the ordered exercise sequence of a user, stored as a JSONB array.
// A nil Log is persisted and rendered as an empty array.
type Log []Exercise

// Append adds e at the end of the log and returns the stored copy.
func (l *Log) Append(e Exercise) Exercise {
	*l = append(*l, e)
	return (*l)[len(*l)-1]
}

// MarshalJSON never emits null.
func (l Log) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Exercise(l))
}

// Value implements driver.Valuer.
func (l Log) Value() (driver.Value, error) {
	b, err := l.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Scan implements sql.Scanner for json/jsonb columns.
func (l *Log) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = Log{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Log", src)
	}

	var items []Exercise
	if err := json.Unmarshal(data, &items); err != nil {
		return errors.Join(errors.New("invalid log document"), err)
	}
	if items == nil {
		items = []Exercise{}
	}
	*l = items
	return nil
}
