package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/golf-courses/internal/course"
	"github.com/pfrederiksen/golf-courses/internal/storage"
)

// OutputFormat specifies the export file format
type OutputFormat string

const (
	FormatJSON   OutputFormat = "json"
	FormatSQLite OutputFormat = "sqlite"
)

// WriteCourses exports courses to path in the given format
func WriteCourses(path string, format OutputFormat, courses []*course.Course, now time.Time) error {
	switch format {
	case FormatJSON:
		return storage.ExportJSON(path, courses, now)
	case FormatSQLite:
		return storage.ExportSQLite(path, courses, now)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeSummary lists the exported courses as human-readable text
func writeSummary(w io.Writer, courses []*course.Course) {
	for _, c := range courses {
		fmt.Fprintf(w, "  %s (%s)\n", c.Name, c.Location)
		fmt.Fprintf(w, "       ID: %s\n", c.ID)
		fmt.Fprintf(w, "       Par: %d  Handicap: %d  Holes: %d\n", c.Par, c.Handicap, len(c.Holes))
		fmt.Fprintf(w, "       Front nine: par %d  Back nine: par %d\n", totalPar(c.FrontNine()), totalPar(c.BackNine()))
		fmt.Fprintf(w, "       Yardage: %d white, %d blue, %d red\n",
			c.TotalYardage(course.TeeWhite), c.TotalYardage(course.TeeBlue), c.TotalYardage(course.TeeRed))
	}
}

// totalPar sums hole pars
func totalPar(holes []course.Hole) int {
	total := 0
	for _, h := range holes {
		total += h.Par
	}
	return total
}
