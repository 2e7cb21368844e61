// Package db stores timeline catalogs in SQLite.
package db

// Schema creates the catalog tables. Colors are packed 0xRRGGBB integers.
const Schema = `
	CREATE TABLE IF NOT EXISTS periods (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		beginTime REAL NOT NULL,
		endTime REAL NOT NULL,
		color INTEGER NOT NULL DEFAULT 8421504
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY,
		occurrenceTime REAL NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS events_by_time ON events (occurrenceTime);
`
