// Package schema names every catalog table and column in one place, so SQL in
// the repositories is assembled from descriptors instead of string literals.
package schema

import "strings"

// Select renders columns as a select list, each prefixed with alias when given.
//
//	Select("g", CatalogGenre.Columns()) // "g.id, g.name, g.url"
func Select(alias string, columns []string) string {
	if alias == "" {
		return strings.Join(columns, ", ")
	}

	qualified := make([]string, len(columns))
	for i, column := range columns {
		qualified[i] = alias + "." + column
	}
	return strings.Join(qualified, ", ")
}
