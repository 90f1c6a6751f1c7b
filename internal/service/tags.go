package service

import (
	"strings"
)

// NormalizeTags trims every title, drops blanks and repeats, and keeps the
// order of first occurrence. Comparison is case-sensitive.
func NormalizeTags(raw []string) []string {
	titles := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, tag := range raw {
		title := strings.TrimSpace(tag)
		if title == "" {
			continue
		}
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		titles = append(titles, title)
	}
	return titles
}
