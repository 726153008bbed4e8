package postgres

import (
	"fmt"
	"strings"
)

// refSeparator joins evidence refs into the photos column. File ids never
// contain it.
const refSeparator = ";"

func joinRefs(refs []string) string {
	return strings.Join(refs, refSeparator)
}

func splitRefs(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, refSeparator)
}

// placeholder returns a numbered placeholder for PostgreSQL (uses $1, $2, ...)
func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

// placeholders returns n numbered placeholders for PostgreSQL
func placeholders(n int) string {
	list := []string{}
	for i := 0; i < n; i++ {
		list = append(list, placeholder(i+1))
	}
	return strings.Join(list, ", ")
}
