// Package version exists solely so that we can store the version of this application
// in one location, despite needing it in two places within the application.
//
// The main.go driver-package prints it for "-version", and the emulator logs it
// at startup, and duplicating the version number/tag in two places is a recipe
// for drift and confusion.
package version

import "fmt"

var (
	// version is populated with our release tag, at build-time, via:
	//
	//    go build -ldflags="-X chipulator/version.version=..."
	version = "unreleased"
)

// GetVersionBanner returns a banner which is suitable for printing, to show our
// name and version.
func GetVersionBanner() string {

	str := fmt.Sprintf("chipulator %s\n", version)
	return str
}

// GetVersionString returns our version number as a string.
func GetVersionString() string {
	return version
}
