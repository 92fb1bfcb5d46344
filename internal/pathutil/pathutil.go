// Package pathutil provides path normalization and the bin-directory
// discovery heuristic used to decide where the pipx symlink goes.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// preferredBinDirs are conventional user-local bin directories, relative to
// the home directory, checked first during discovery.
var preferredBinDirs = []string{".local/bin", "bin"}

// ExpandUser expands a leading "~" or "~/" prefix against the given home
// directory. Paths without the prefix are returned unchanged.
func ExpandUser(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~"+string(os.PathSeparator)) || strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// Absolutize tilde-expands path and resolves it to an absolute path.
func Absolutize(path, home string) (string, error) {
	return filepath.Abs(ExpandUser(path, home))
}

// DiscoverBinDir picks a directory on the search path suitable for the
// executable symlink. The policy, in order:
//
//  1. a preferred user-local directory (~/.local/bin, ~/bin) that appears
//     on the search path;
//  2. scanning the search path in reverse (later entries win), a directory
//     nested under the home directory;
//  3. scanning in reverse again, a directory that passes a writability
//     probe for the executable name.
//
// An empty result means no directory qualified; callers decide whether
// that is an error.
func DiscoverBinDir(searchPath []string, home, executable string) string {
	for _, rel := range preferredBinDirs {
		candidate := filepath.Join(home, rel)
		for _, entry := range searchPath {
			if entry == candidate {
				return candidate
			}
		}
	}

	if home != "" {
		for i := len(searchPath) - 1; i >= 0; i-- {
			if strings.HasPrefix(searchPath[i], home+string(os.PathSeparator)) {
				return searchPath[i]
			}
		}
	}

	for i := len(searchPath) - 1; i >= 0; i-- {
		if probeWritable(searchPath[i], executable) {
			return searchPath[i]
		}
	}

	return ""
}

// probeWritable checks that a file named after the executable can be
// created in dir. The probe file must not already exist (a directory
// already holding the executable name is not usable as a link target)
// and is removed again on every exit path.
func probeWritable(dir, executable string) bool {
	probe := filepath.Join(dir, executable)
	f, err := os.OpenFile(probe, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return false
	}
	_ = f.Close()
	_ = os.Remove(probe)
	return true
}
