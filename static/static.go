// Package static is a hierarchy of files that are added to
// the generated emulator.
//
// The intention is that we can ship a demonstration ROM, or two,
// within our emulator, so that it does something out of the box even
// when the user has no ROM files of their own.
package static

import (
	"embed"
	"path"
	"strings"
)

//go:embed roms/*.ch8
var content embed.FS

// GetROM returns the named embedded ROM.
func GetROM(name string) ([]uint8, error) {
	return content.ReadFile(path.Join("roms", name+".ch8"))
}

// ListROMs returns the names of our embedded ROMs.
func ListROMs() []string {
	var names []string

	files, err := content.ReadDir("roms")
	if err != nil {
		return names
	}
	for _, entry := range files {
		names = append(names, strings.TrimSuffix(entry.Name(), ".ch8"))
	}
	return names
}
