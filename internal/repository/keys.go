package repository

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]`)

// NameToKey derives a stable key from a display name / Dérive une clé stable depuis un nom affiché
//
// Every character outside [A-Za-z0-9] becomes '_', then the whole string
// is lowercased. The function is idempotent: applying it to its own
// output yields the same key.
func NameToKey(name string) string {
	return strings.ToLower(nonAlphanumeric.ReplaceAllString(name, "_"))
}
