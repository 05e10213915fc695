package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pfrederiksen/golf-courses/internal/course"
)

// CSV column names
const (
	ColumnName     = "name"
	ColumnLocation = "location"
	ColumnLat      = "lat"
	ColumnLon      = "lon"
	ColumnPar      = "par"
	ColumnHandicap = "handicap"
)

var requiredColumns = []string{ColumnName, ColumnLocation, ColumnLat, ColumnLon}

// ParseError reports a CSV row that could not be turned into a course
type ParseError struct {
	Path   string
	Line   int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s:%d: column %q: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// CSVLoader loads courses from a CSV file with a header row.
// Required columns are name, location, lat and lon; par and handicap are optional.
type CSVLoader struct {
	Path string
	Out  io.Writer
}

// NewCSVLoader creates a CSVLoader for path that reports progress to out
func NewCSVLoader(path string, out io.Writer) *CSVLoader {
	return &CSVLoader{
		Path: path,
		Out:  out,
	}
}

// Load reads every row of the file into a course.
//
// A missing file is reported to Out and yields no courses and no error. Any
// malformed row stops the load and returns a *ParseError.
func (l *CSVLoader) Load() ([]*course.Course, error) {
	l.printf("[CSV] Loading courses from %s...\n", l.Path)

	f, err := os.Open(l.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.printf("Error: File %s not found.\n", l.Path)
			return []*course.Course{}, nil
		}
		return nil, fmt.Errorf("opening CSV file: %w", err)
	}
	defer f.Close()

	return l.parse(f)
}

// parse reads courses from r
func (l *CSVLoader) parse(r io.Reader) ([]*course.Course, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// Rows may be short or carry extra cells; required columns are checked per row
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []*course.Course{}, nil
	}
	if err != nil {
		return nil, l.wrapReadError(err)
	}

	columns := indexColumns(header)
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, &ParseError{Path: l.Path, Line: 1, Column: name, Err: errors.New("missing required column")}
		}
	}

	courses := make([]*course.Course, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, l.wrapReadError(err)
		}

		line, _ := reader.FieldPos(0)
		c, err := l.parseRecord(record, columns, line)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}

	return courses, nil
}

// parseRecord converts one CSV record into a course
func (l *CSVLoader) parseRecord(record []string, columns map[string]int, line int) (*course.Course, error) {
	row := csvRow{record: record, columns: columns}

	fail := func(column string, err error) error {
		return &ParseError{Path: l.Path, Line: line, Column: column, Err: err}
	}

	p := course.Params{
		Name:     row.get(ColumnName),
		Location: row.get(ColumnLocation),
		Par:      course.DefaultPar,
	}

	for _, name := range []string{ColumnName, ColumnLocation} {
		if row.get(name) == "" {
			return nil, fail(name, errors.New("value is required"))
		}
	}

	var err error
	if p.Lat, err = parseCoordinate(row.get(ColumnLat)); err != nil {
		return nil, fail(ColumnLat, err)
	}
	if p.Lon, err = parseCoordinate(row.get(ColumnLon)); err != nil {
		return nil, fail(ColumnLon, err)
	}

	if v := row.get(ColumnPar); v != "" {
		if p.Par, err = strconv.Atoi(v); err != nil {
			return nil, fail(ColumnPar, err)
		}
		if p.Par <= 0 {
			return nil, fail(ColumnPar, fmt.Errorf("par %d must be positive", p.Par))
		}
	}
	if v := row.get(ColumnHandicap); v != "" {
		if p.Handicap, err = strconv.Atoi(v); err != nil {
			return nil, fail(ColumnHandicap, err)
		}
	}

	c, err := course.New(p)
	if err != nil {
		return nil, fail("", err)
	}

	return c, nil
}

// parseCoordinate parses a latitude or longitude. NaN and infinities are rejected.
func parseCoordinate(v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", v)
	}
	return f, nil
}

// wrapReadError converts csv package errors into a ParseError
func (l *CSVLoader) wrapReadError(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Path: l.Path, Line: csvErr.Line, Err: csvErr.Err}
	}
	return fmt.Errorf("reading CSV file: %w", err)
}

func (l *CSVLoader) printf(format string, args ...interface{}) {
	if l.Out != nil {
		fmt.Fprintf(l.Out, format, args...)
	}
}

// indexColumns maps normalized header names to their position
func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if _, exists := columns[name]; !exists {
			columns[name] = i
		}
	}
	return columns
}

// csvRow gives access to a record by column name
type csvRow struct {
	record  []string
	columns map[string]int
}

// get returns the trimmed value of a column, or "" if the column is absent
func (r csvRow) get(name string) string {
	i, ok := r.columns[name]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}
