package phe

// Version is populated at build time via ldflags:
//
//	go build -ldflags "-X github.com/hsiuhsiu/phe-go/pkg/phe.Version=v0.3.0"
var Version = "v0.0.0-in-progress"

// LibraryVersion returns the semantic version of the library. In development it
// defaults to v0.0.0-in-progress.
func LibraryVersion() string {
	return Version
}
