package course

import (
	"strings"
)

// Search returns the courses whose name or location contains query,
// ignoring case and common suffixes like "Golf Club".
// An empty query returns all courses.
func Search(courses []*Course, query string) []*Course {
	q := normalizeTitle(query)
	if q == "" {
		return courses
	}

	matches := make([]*Course, 0)
	for _, c := range courses {
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Location), q) {
			matches = append(matches, c)
		}
	}

	return matches
}

// normalizeTitle converts a course name to a normalized form for matching
func normalizeTitle(title string) string {
	normalized := strings.ToLower(strings.TrimSpace(title))
	// Remove common suffixes
	normalized = strings.TrimSuffix(normalized, " golf links")
	normalized = strings.TrimSuffix(normalized, " golf club")
	normalized = strings.TrimSuffix(normalized, " golf course")
	normalized = strings.TrimSuffix(normalized, " country club")
	normalized = strings.TrimSuffix(normalized, " c.c.")
	normalized = strings.TrimSuffix(normalized, " g.c.")
	return normalized
}
