// Package storage writes course exports to disk.
//
// The primary format is a JSON document with version, generation timestamp,
// course count and the full course list. The same data can also be written to
// a SQLite database with export, courses and holes tables. Both writers
// replace any existing file at the destination and create missing parent
// directories; a leading ~/ in the path is expanded to the home directory.
package storage
