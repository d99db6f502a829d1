// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice complements the standard [slices] package with the generic helpers
the catalog needs for id lists (Map, Unique, SameSet).
*/
package slice

// Map maps a slice of type T to a slice of type U using the provided transformation function.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}

	return result
}

// Unique returns input without repeated elements, keeping first occurrences in order.
func Unique[T comparable](input []T) []T {
	if input == nil {
		return nil
	}

	seen := make(map[T]struct{}, len(input))
	result := make([]T, 0, len(input))
	for _, v := range input {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}

// SameSet reports whether a and b hold the same distinct elements, in any order.
//
// Repeated elements do not count: {1, 1, 2} and {2, 1} are the same set.
func SameSet[T comparable](a, b []T) bool {
	left := make(map[T]struct{}, len(a))
	for _, v := range a {
		left[v] = struct{}{}
	}

	right := make(map[T]struct{}, len(b))
	for _, v := range b {
		if _, ok := left[v]; !ok {
			return false
		}
		right[v] = struct{}{}
	}

	return len(left) == len(right)
}
