// Package source loads golf courses for export.
//
// Two loaders are provided: FixtureLoader returns a fixed list of well-known
// courses and stands in for a GolfLink scraper that was never written, and
// CSVLoader reads courses from a CSV file with a header row. Both generate the
// default 18-hole layout for every course they produce.
package source
