package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pfrederiksen/golf-courses/internal/course"
)

const sqliteSchema = `
CREATE TABLE export (
	version TEXT NOT NULL,
	generated TEXT NOT NULL,
	count INTEGER NOT NULL
);

CREATE TABLE courses (
	id TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	location TEXT NOT NULL,
	lat REAL NOT NULL,
	lon REAL NOT NULL,
	par INTEGER NOT NULL,
	handicap INTEGER NOT NULL
);

CREATE TABLE holes (
	course_id TEXT NOT NULL,
	id TEXT NOT NULL,
	number INTEGER NOT NULL,
	par INTEGER NOT NULL,
	handicap INTEGER NOT NULL,
	white INTEGER NOT NULL,
	blue INTEGER NOT NULL,
	red INTEGER NOT NULL,
	PRIMARY KEY (course_id, number),
	FOREIGN KEY (course_id) REFERENCES courses(id)
);`

// ExportSQLite writes courses to a new SQLite database at path, replacing any
// existing file. The database is built in a temporary file and only moved over
// path once every row is committed.
func ExportSQLite(path string, courses []*course.Course, now time.Time) error {
	path, err := prepareOutput(path)
	if err != nil {
		return err
	}

	return replaceFile(path, func(tmpPath string) error {
		return writeDatabase(tmpPath, NewDocument(courses, now))
	})
}

// writeDatabase creates the schema in the database at path and fills it from doc
func writeDatabase(path string, doc *Document) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	if err := insertCourses(tx, doc); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing export: %w", err)
	}

	if err := db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}

	return nil
}

// insertCourses writes the document rows inside tx
func insertCourses(tx *sql.Tx, doc *Document) error {
	if _, err := tx.Exec(`INSERT INTO export (version, generated, count) VALUES (?, ?, ?)`,
		doc.Version, doc.Generated, doc.Count); err != nil {
		return fmt.Errorf("inserting export metadata: %w", err)
	}

	courseStmt, err := tx.Prepare(`INSERT INTO courses (id, position, name, location, lat, lon, par, handicap)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing course insert: %w", err)
	}
	defer courseStmt.Close()

	holeStmt, err := tx.Prepare(`INSERT INTO holes (course_id, id, number, par, handicap, white, blue, red)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing hole insert: %w", err)
	}
	defer holeStmt.Close()

	for i, c := range doc.Courses {
		if _, err := courseStmt.Exec(c.ID, i, c.Name, c.Location, c.Lat, c.Lon, c.Par, c.Handicap); err != nil {
			return fmt.Errorf("inserting course %s: %w", c.ID, err)
		}

		for _, h := range c.Holes {
			if _, err := holeStmt.Exec(c.ID, h.ID, h.Number, h.Par, h.Handicap,
				h.Yardages.White, h.Yardages.Blue, h.Yardages.Red); err != nil {
				return fmt.Errorf("inserting hole %d of course %s: %w", h.Number, c.ID, err)
			}
		}
	}

	return nil
}
