// Package store persists alarms, the weather cache, and the playback log in
// a SQLite database.
package store
