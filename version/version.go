// Package version holds the release information of go-tiger.
package version

const (
	// Name of the project.
	Name = "go-tiger"
	// Vers is the current release version.
	Vers = "0.1.0"
	// TimestampFormat is the layout of the Timestamp.
	TimestampFormat = "2006-01-02T15:04:05Z07:00"
)

// Timestamp is the build time. It can be set with -ldflags "-X".
var Timestamp = "2019-05-01T00:00:00Z"
