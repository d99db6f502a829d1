// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package calendar formats and compares release dates at calendar-day precision.

Release dates are stored as timestamps but only the day matters to readers: two
values on the same day are the same release date regardless of clock time.
*/
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Layouts used across the catalog.
const (
	// Input is the form value format ("1997-12-24").
	Input = "2006-01-02"
	// Medium is the display format ("Dec 24, 1997").
	Medium = "Jan 2, 2006"
	// DayFirst is the compact display format ("24-12-1997").
	DayFirst = "02-01-2006"
)

// Day returns the calendar-day key of t. The zero time yields "".
func Day(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(Input)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Day(a) == Day(b)
}

// Parse reads a form value in [Input] layout. An empty value yields the zero time.
func Parse(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}

	day, err := time.Parse(Input, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("calendar: %q is not a YYYY-MM-DD date: %w", value, err)
	}
	return day, nil
}

// FormatMedium renders t for display. The zero time yields "".
func FormatMedium(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(Medium)
}

// FormatDayFirst renders t as dd-mm-yyyy. The zero time yields "".
func FormatDayFirst(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DayFirst)
}
