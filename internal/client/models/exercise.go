// Package models holds the response shapes the CLI reads from the API.
package models

import "time"

type User struct {
	ID       string     `json:"id"`
	UserName string     `json:"username"`
	Log      []Exercise `json:"log"`
}

type Exercise struct {
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Date        time.Time `json:"date"`
}

// AddedExercise is returned after an append; Date is already rendered.
type AddedExercise struct {
	ID          string  `json:"id"`
	UserName    string  `json:"username"`
	Date        string  `json:"date"`
	Duration    float64 `json:"duration"`
	Description string  `json:"description"`
}

type LogEntry struct {
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

type ExerciseLog struct {
	ID       string     `json:"id"`
	UserName string     `json:"username"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}

// LogFilter carries the optional query parameters of a log request. Empty
// strings and a nil Limit are omitted.
type LogFilter struct {
	From  string
	To    string
	Limit *int
}
