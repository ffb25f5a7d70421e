package bookmarks

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// bookmarksFileName is the fixed name of the bookmarks file inside a
// profile directory.
const bookmarksFileName = "Bookmarks"

// Profile names one bookmark source: a profile name and the path of its
// bookmarks file.
type Profile struct {
	Name string
	Path string
}

// DiscoverProfiles probes parentDir for the default profile and any
// numbered profile subdirectories that contain a bookmarks file. Results
// are ordered Default first, then numbered profiles sorted by name.
func DiscoverProfiles(parentDir string) []Profile {
	var profiles []Profile

	defaultPath := filepath.Join(parentDir, "Default", bookmarksFileName)
	if fileExists(defaultPath) {
		profiles = append(profiles, Profile{Name: "Default", Path: defaultPath})
	}

	dirEntries, err := os.ReadDir(parentDir)
	if err != nil {
		return profiles
	}

	var numbered []Profile
	for _, de := range dirEntries {
		if !de.IsDir() || !strings.HasPrefix(de.Name(), "Profile ") {
			continue
		}
		path := filepath.Join(parentDir, de.Name(), bookmarksFileName)
		if fileExists(path) {
			numbered = append(numbered, Profile{Name: de.Name(), Path: path})
		}
	}
	sort.Slice(numbered, func(i, j int) bool { return numbered[i].Name < numbered[j].Name })

	return append(profiles, numbered...)
}

// ExplicitProfiles resolves a user-fixed profile name list under parentDir.
// Names without a bookmarks file are skipped.
func ExplicitProfiles(parentDir string, names []string) []Profile {
	profiles := make([]Profile, 0, len(names))
	for _, name := range names {
		path := filepath.Join(parentDir, name, bookmarksFileName)
		if fileExists(path) {
			profiles = append(profiles, Profile{Name: name, Path: path})
		}
	}
	return profiles
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
