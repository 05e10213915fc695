// Package cli implements the command-line interface for golf-courses.
//
// The cli package provides the Cobra-based root command that selects a course
// source (the built-in mock list or a CSV file), optionally filters the loaded
// courses, and exports them to a JSON or SQLite file. Status lines go to stdout
// and structured logs go to stderr.
package cli
