package main

import (
	"strconv"
	"strings"
)

const (
	defaultStatusLabel = "Incomplete"
	defaultStatusColor = 5
)

// Status is a short label plus the ANSI 256 color index used to paint it
type Status struct {
	Label string `json:"status"`
	Color uint8  `json:"color"`
}

// DefaultStatus returns the status every new task starts with
func DefaultStatus() Status {
	return Status{Label: defaultStatusLabel, Color: defaultStatusColor}
}

// Task represents a single item inside a folder
type Task struct {
	Title  string `json:"title"`
	Body   string `json:"task"`
	Status Status `json:"status"`
}

// NewTask returns an empty task with the default status
func NewTask() Task {
	return Task{Status: DefaultStatus()}
}

// parseColor reads a color index in the 0-255 range
func parseColor(value string) (uint8, bool) {
	n, err := strconv.ParseUint(strings.TrimPrefix(value, "+"), 10, 8)
	if err != nil {
		return 0, false
	}

	return uint8(n), true
}
