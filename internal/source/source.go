package source

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/golf-courses/internal/course"
)

// Loader produces the courses to export
type Loader interface {
	// Load returns the loaded courses, or an empty slice if there are none
	Load() ([]*course.Course, error)
}

// Name identifies a loader on the command line
type Name string

const (
	NameMock     Name = "mock"
	NameGolfLink Name = "golflink"
	NameCSV      Name = "csv"
)

// ParseName normalizes a source name, accepting "golflink" as an alias of "mock"
func ParseName(s string) (Name, error) {
	switch Name(strings.ToLower(strings.TrimSpace(s))) {
	case NameMock, NameGolfLink:
		return NameMock, nil
	case NameCSV:
		return NameCSV, nil
	default:
		return "", fmt.Errorf("unknown source: %s (must be 'mock' or 'csv')", s)
	}
}
