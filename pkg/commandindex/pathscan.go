package commandindex

import (
	"context"
	"os"
	"path/filepath"
)

// scanPathDirs walks every directory in pathEnv (split on the platform's
// path-list separator) and collects the base names of executable regular
// files. Unreadable directories are skipped and reported in the second
// return value; a cancelled context stops the walk early with whatever was
// collected so far.
func scanPathDirs(ctx context.Context, pathEnv string) (names []string, skipped []string) {
	seen := make(map[string]struct{})

	for _, dir := range filepath.SplitList(pathEnv) {
		if dir == "" {
			continue
		}
		if ctx.Err() != nil {
			skipped = append(skipped, "path scan interrupted: "+ctx.Err().Error())
			return names, skipped
		}
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}

		entries, err := os.ReadDir(dir)
		if err != nil {
			skipped = append(skipped, dir+": "+err.Error())
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			// Stat through symlinks; package managers routinely install
			// commands as links to versioned binaries.
			info, err := os.Stat(filepath.Join(dir, entry.Name()))
			if err != nil {
				continue
			}
			if executableFile(info, entry.Name()) {
				names = append(names, entry.Name())
			}
		}
	}

	return names, skipped
}
