package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/exercisetracker/internal/client/apiclient"
	"github.com/dmitrijs2005/exercisetracker/internal/client/models"
)

var errEmptyUserID = errors.New("user id is required")

func (a *App) report(err error) error {
	switch {
	case errors.Is(err, apiclient.ErrNotFound):
		fmt.Fprintln(a.out, "User not found")
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
	return err
}

func (a *App) CreateUser(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	u, err := a.api.CreateUser(ctx, name)
	if err != nil {
		return a.report(err)
	}

	a.currentUser = u.ID
	fmt.Fprintf(a.out, "Created user %s with id %s\n", u.UserName, u.ID)
	return nil
}

func (a *App) ListUsers(ctx context.Context) error {
	users, err := a.api.ListUsers(ctx)
	if err != nil {
		return a.report(err)
	}
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tEXERCISES")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", u.ID, u.UserName, len(u.Log))
	}
	return tw.Flush()
}

// Use makes id the default user for add and log.
func (a *App) Use(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		fmt.Fprintln(a.out, "Usage: use <id>")
		return errEmptyUserID
	}
	a.currentUser = id
	fmt.Fprintln(a.out, "Current user:", id)
	return nil
}

func (a *App) promptUserID() (string, error) {
	id, err := GetTextWithDefault(a.reader, "User id", a.currentUser, a.out)
	if err != nil {
		return "", err
	}
	if id == "" {
		fmt.Fprintln(a.out, "User id is required")
		return "", errEmptyUserID
	}
	return id, nil
}

func (a *App) AddExercise(ctx context.Context) error {
	id, err := a.promptUserID()
	if err != nil {
		return err
	}
	desc, err := GetSimpleText(a.reader, "Description", a.out)
	if err != nil {
		return err
	}
	rawDuration, err := GetSimpleText(a.reader, "Duration (minutes)", a.out)
	if err != nil {
		return err
	}
	duration, err := strconv.ParseFloat(rawDuration, 64)
	if err != nil {
		fmt.Fprintf(a.out, "Duration %q is not a number\n", rawDuration)
		return err
	}
	date, err := GetSimpleText(a.reader, "Date (yyyy-mm-dd, empty for today)", a.out)
	if err != nil {
		return err
	}

	added, err := a.api.AddExercise(ctx, id, desc, duration, date)
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintf(a.out, "Added %q (%g min) on %s for %s\n", added.Description, added.Duration, added.Date, added.UserName)
	return nil
}

func (a *App) ShowLog(ctx context.Context) error {
	id, err := a.promptUserID()
	if err != nil {
		return err
	}

	var f models.LogFilter
	if f.From, err = GetSimpleText(a.reader, "From (yyyy-mm-dd, optional)", a.out); err != nil {
		return err
	}
	if f.To, err = GetSimpleText(a.reader, "To (yyyy-mm-dd, optional)", a.out); err != nil {
		return err
	}
	rawLimit, err := GetSimpleText(a.reader, "Limit (optional)", a.out)
	if err != nil {
		return err
	}
	if rawLimit != "" {
		n, err := strconv.Atoi(rawLimit)
		if err != nil || n < 0 {
			fmt.Fprintf(a.out, "Limit %q is not a non-negative integer\n", rawLimit)
			return fmt.Errorf("invalid limit %q", rawLimit)
		}
		f.Limit = &n
	}

	res, err := a.api.GetLog(ctx, id, f)
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintf(a.out, "%s: %d exercise(s)\n", res.UserName, res.Count)
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, e := range res.Log {
		fmt.Fprintf(tw, "%s\t%g min\t%s\n", e.Date, e.Duration, e.Description)
	}
	return tw.Flush()
}

func (a *App) Health(ctx context.Context) error {
	if err := a.api.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return a.report(err)
	}
	a.setMode(ModeOnline)
	fmt.Fprintln(a.out, "Server is healthy")
	return nil
}
