package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version is set via ldflags at build time.
var Version = "dev"

// HasVersionFlag reports whether the arguments request the version.
// It runs before flag parsing so -version works even when other flags
// would fail validation.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-version" || arg == "--version" {
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "gilbench %s (%s, %s/%s)\n",
		Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
