// Package course provides the golf course and hole records exported by golf-courses
package course

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// DefaultPar is the course par used when none is supplied
const DefaultPar = 72

// ErrInvalid is wrapped by every validation failure returned from New and Validate
var ErrInvalid = errors.New("invalid course")

// Course is a single golf course with its 18 holes
type Course struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Par      int     `json:"par"`
	Handicap int     `json:"handicap"`
	Holes    []Hole  `json:"holes"`
}

// Params holds the fields used to build a Course.
// A zero Par means DefaultPar, and empty Holes means DefaultHoles().
type Params struct {
	Name     string
	Location string
	Lat      float64
	Lon      float64
	Par      int
	Handicap int
	Holes    []Hole
}

// New creates a Course with a fresh ID, filling in default par and holes.
// Latitude and longitude are passed through without range checks.
func New(p Params) (*Course, error) {
	par := p.Par
	if par == 0 {
		par = DefaultPar
	}

	holes := p.Holes
	if len(holes) == 0 {
		holes = DefaultHoles()
	} else {
		holes = append([]Hole(nil), holes...)
	}

	c := &Course{
		ID:       GenerateID(),
		Name:     p.Name,
		Location: p.Location,
		Lat:      p.Lat,
		Lon:      p.Lon,
		Par:      par,
		Handicap: p.Handicap,
		Holes:    holes,
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// GenerateID returns a new course ID of the form "course-<8 hex chars>"
func GenerateID() string {
	id := uuid.New()
	return fmt.Sprintf("course-%x", id[:4])
}

// Validate checks the required fields and the hole layout
func (c *Course) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if strings.TrimSpace(c.Location) == "" {
		return fmt.Errorf("%w: location is required", ErrInvalid)
	}
	if !isFinite(c.Lat) || !isFinite(c.Lon) {
		return fmt.Errorf("%w: %s has non-finite coordinates (%v, %v)", ErrInvalid, c.Name, c.Lat, c.Lon)
	}
	if len(c.Holes) != HoleCount {
		return fmt.Errorf("%w: %s has %d holes, want %d", ErrInvalid, c.Name, len(c.Holes), HoleCount)
	}

	for i, h := range c.Holes {
		if h.Number != i+1 {
			return fmt.Errorf("%w: %s hole at position %d has number %d", ErrInvalid, c.Name, i+1, h.Number)
		}
		if h.Par < 3 || h.Par > 5 {
			return fmt.Errorf("%w: %s hole %d has par %d", ErrInvalid, c.Name, h.Number, h.Par)
		}
	}

	return nil
}

// MarshalJSON writes lat and lon with a decimal point, so 1 is written as 1.0
func (c Course) MarshalJSON() ([]byte, error) {
	if !isFinite(c.Lat) || !isFinite(c.Lon) {
		return nil, fmt.Errorf("%w: %s has non-finite coordinates (%v, %v)", ErrInvalid, c.Name, c.Lat, c.Lon)
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	err := encoder.Encode(struct {
		ID       string      `json:"id"`
		Name     string      `json:"name"`
		Location string      `json:"location"`
		Lat      json.Number `json:"lat"`
		Lon      json.Number `json:"lon"`
		Par      int         `json:"par"`
		Handicap int         `json:"handicap"`
		Holes    []Hole      `json:"holes"`
	}{
		ID:       c.ID,
		Name:     c.Name,
		Location: c.Location,
		Lat:      formatCoordinate(c.Lat),
		Lon:      formatCoordinate(c.Lon),
		Par:      c.Par,
		Handicap: c.Handicap,
		Holes:    c.Holes,
	})
	if err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func formatCoordinate(v float64) json.Number {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return json.Number(s)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FrontNine returns holes 1-9
func (c *Course) FrontNine() []Hole {
	return c.Holes[:HoleCount/2]
}

// BackNine returns holes 10-18
func (c *Course) BackNine() []Hole {
	return c.Holes[HoleCount/2:]
}

// TotalYardage sums the yardage of every hole from the given tee.
// Unknown tees count as zero.
func (c *Course) TotalYardage(tee Tee) int {
	total := 0
	for _, h := range c.Holes {
		total += h.Yardages.For(tee)
	}
	return total
}
