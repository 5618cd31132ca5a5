package core

import (
	"regexp"
	"strings"
)

var (
	// Current Steam: "path"  "D:\\SteamLibrary"
	libraryPathPattern = regexp.MustCompile(`"path"\s*"([^"]+)"`)
	// Older Steam keys libraries by index: "1" "D:\\SteamLibrary"
	libraryIndexPattern = regexp.MustCompile(`"\d+"\s*"([^"]+)"`)
)

// ParseLibraryFolders scans the text of a libraryfolders.vdf file for
// library paths. It is a best-effort scan rather than a grammar parse, so
// malformed or empty input simply yields no paths. Values are returned in
// first-seen order with duplicates removed.
func ParseLibraryFolders(vdfText string) []string {
	seen := make(map[string]struct{})
	result := []string{}

	for _, pattern := range []*regexp.Regexp{libraryPathPattern, libraryIndexPattern} {
		for _, match := range pattern.FindAllStringSubmatch(vdfText, -1) {
			lib := strings.ReplaceAll(match[1], `\\`, `\`)
			if _, ok := seen[lib]; ok {
				continue
			}
			seen[lib] = struct{}{}
			result = append(result, lib)
		}
	}

	return result
}
