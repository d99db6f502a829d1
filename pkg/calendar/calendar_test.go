// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/comiking/pkg/calendar"
)

func TestSameDay(t *testing.T) {
	morning := time.Date(1997, 12, 24, 8, 0, 0, 0, time.UTC)
	evening := time.Date(1997, 12, 24, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(1997, 12, 25, 0, 0, 0, 0, time.UTC)

	assert.True(t, calendar.SameDay(morning, evening))
	assert.False(t, calendar.SameDay(evening, nextDay))
}

func TestParse(t *testing.T) {
	day, err := calendar.Parse("1997-12-24")
	require.NoError(t, err)
	assert.Equal(t, "1997-12-24", calendar.Day(day))

	empty, err := calendar.Parse("")
	require.NoError(t, err)
	assert.True(t, empty.IsZero())

	_, err = calendar.Parse("24-12-1997")
	assert.Error(t, err)
}

func TestFormatting(t *testing.T) {
	day := time.Date(2024, 8, 14, 15, 4, 0, 0, time.UTC)

	assert.Equal(t, "Aug 14, 2024", calendar.FormatMedium(day))
	assert.Equal(t, "14-08-2024", calendar.FormatDayFirst(day))
	assert.Empty(t, calendar.FormatMedium(time.Time{}))
	assert.Empty(t, calendar.FormatDayFirst(time.Time{}))
}
