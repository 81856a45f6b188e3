package persistence

import "strings"

// prefixColumns rewrites a comma-separated column list so every column is
// qualified with a table alias, for use in joins.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
