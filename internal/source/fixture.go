package source

import (
	"fmt"
	"io"

	"github.com/pfrederiksen/golf-courses/internal/course"
)

// fixtureCourses is the fixed course list returned by FixtureLoader
var fixtureCourses = []course.Params{
	{
		Name:     "Pebble Beach Golf Links",
		Location: "Pebble Beach, CA",
		Lat:      36.5627,
		Lon:      -121.9496,
		Par:      72,
		Handicap: 2,
	},
	{
		Name:     "Augusta National Golf Club",
		Location: "Augusta, GA",
		Lat:      33.5034,
		Lon:      -82.0112,
		Par:      72,
		Handicap: 1,
	},
	{
		Name:     "Torrey Pines Golf Course",
		Location: "San Diego, CA",
		Lat:      32.9114,
		Lon:      -117.2474,
		Par:      72,
		Handicap: 3,
	},
}

// FixtureLoader returns a fixed list of three famous courses.
//
// It is a placeholder for a GolfLink integration: GolfLink has no free public
// API, so nothing is fetched over the network. Limit is accepted for
// compatibility with a real fetcher but is ignored.
type FixtureLoader struct {
	Limit int
	Out   io.Writer
}

// NewFixtureLoader creates a FixtureLoader that reports progress to out
func NewFixtureLoader(limit int, out io.Writer) *FixtureLoader {
	return &FixtureLoader{
		Limit: limit,
		Out:   out,
	}
}

// Load returns the fixture courses with fresh IDs and default holes
func (l *FixtureLoader) Load() ([]*course.Course, error) {
	if l.Out != nil {
		fmt.Fprintln(l.Out, "[GolfLink] Fetching courses...")
	}

	courses := make([]*course.Course, 0, len(fixtureCourses))
	for _, p := range fixtureCourses {
		c, err := course.New(p)
		if err != nil {
			return nil, fmt.Errorf("building fixture course %q: %w", p.Name, err)
		}
		courses = append(courses, c)
	}

	return courses, nil
}
