// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textutil prepares and compares catalog names.
//
// Names are normalized once on the way in (trimmed, NFC), so "Pokémon" typed
// with a combining accent is stored and looked up as the precomposed form.
// Comparison is then plain lower-casing, the same rule PostgreSQL's lower()
// applies, so every storage engine agrees on what counts as a duplicate.
package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize trims s and converts it to Unicode normalization form C.
func Normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Fold returns the comparison key of an already normalized s.
func Fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

// EqualFold reports whether a and b name the same thing ignoring case.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}
