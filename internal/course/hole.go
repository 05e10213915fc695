package course

import "fmt"

// HoleCount is the number of holes on every course
const HoleCount = 18

// Tee identifies a tee color
type Tee string

const (
	TeeWhite Tee = "white"
	TeeBlue  Tee = "blue"
	TeeRed   Tee = "red"
)

var (
	frontNinePars = [9]int{4, 3, 5, 4, 4, 3, 4, 5, 4}
	backNinePars  = [9]int{4, 4, 3, 5, 4, 4, 3, 5, 4}
)

// Hole is one of the 18 holes of a course
type Hole struct {
	ID       string   `json:"id"`
	Number   int      `json:"number"`
	Par      int      `json:"par"`
	Handicap int      `json:"handicap"`
	Yardages Yardages `json:"yardages"`
}

// Yardages holds the distance of a hole from each tee.
// Field order matches the exported key order: white, blue, red.
type Yardages struct {
	White int `json:"white"`
	Blue  int `json:"blue"`
	Red   int `json:"red"`
}

// For returns the yardage for a tee, or 0 if the tee is unknown
func (y Yardages) For(tee Tee) int {
	switch tee {
	case TeeWhite:
		return y.White
	case TeeBlue:
		return y.Blue
	case TeeRed:
		return y.Red
	default:
		return 0
	}
}

// DefaultHoles generates the standard 18-hole layout used when a course
// has no hole data of its own.
//
// Hole handicap is (number % 18) + 1, so the values are 2..18 followed by 1
// rather than a real stroke index.
func DefaultHoles() []Hole {
	holes := make([]Hole, 0, HoleCount)
	pars := append(frontNinePars[:], backNinePars[:]...)

	for i, par := range pars {
		n := i + 1
		holes = append(holes, Hole{
			ID:       fmt.Sprintf("hole-%d", n),
			Number:   n,
			Par:      par,
			Handicap: (n % HoleCount) + 1,
			Yardages: Yardages{
				White: 350 + n*10,
				Blue:  370 + n*10,
				Red:   320 + n*10,
			},
		})
	}

	return holes
}
