//go:build windows

package commandindex

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// executableFile reports whether name carries one of the extensions Windows
// treats as executable, per PATHEXT.
func executableFile(info fs.FileInfo, name string) bool {
	if !info.Mode().IsRegular() {
		return false
	}

	ext := strings.ToUpper(filepath.Ext(name))
	if ext == "" {
		return false
	}

	pathext := os.Getenv("PATHEXT")
	if pathext == "" {
		pathext = ".COM;.EXE;.BAT;.CMD"
	}
	for _, allowed := range strings.Split(pathext, ";") {
		if strings.ToUpper(allowed) == ext {
			return true
		}
	}
	return false
}
