// Package version exposes build metadata of the tickstack binary.
//
// Version, Commit and BuildTime are injected with -ldflags; for plain
// `go install` builds the VCS stamp of the module is used instead.
package version
