// Package journal persists a log of finished routine runs.
//
// The FileRepository keeps the most recent records as a JSON array on disk and
// exposes a Repository interface that the runner depends on.
package journal
