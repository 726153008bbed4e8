package sqlite

import "strings"

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

// placeholder returns a placeholder for SQLite (uses ?)
func placeholder(n int) string {
	return "?"
}

// placeholders returns n placeholders for SQLite
func placeholders(n int) string {
	list := []string{}
	for i := 0; i < n; i++ {
		list = append(list, placeholder(i+1))
	}
	return strings.Join(list, ", ")
}
