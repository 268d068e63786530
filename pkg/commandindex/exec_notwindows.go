//go:build !windows

package commandindex

import "io/fs"

// executableFile reports whether info describes a command: a regular file
// with any execute bit set.
func executableFile(info fs.FileInfo, _ string) bool {
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}
