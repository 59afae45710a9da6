package scan

import (
	"path"
	"strings"
)

// shouldExclude reports whether a snapshot key matches any pattern.
//
//	*.tmp          matches the base name at any depth
//	.git/          matches a directory name at any depth
//	build/*.o      matches the whole key
//	**/cache/*.db  matches the key or any suffix of it
func shouldExclude(key string, patterns []string) bool {
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern != "" && matchPattern(key, strings.ReplaceAll(pattern, "\\", "/")) {
			return true
		}
	}
	return false
}

func matchPattern(key, pattern string) bool {
	segments := strings.Split(key, "/")

	if dir, ok := strings.CutSuffix(pattern, "/"); ok {
		// only directory segments, never the file name itself
		for _, seg := range segments[:len(segments)-1] {
			if globMatch(dir, seg) {
				return true
			}
		}
		return false
	}

	if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
		for i := range segments {
			if globMatch(rest, strings.Join(segments[i:], "/")) {
				return true
			}
		}
		return false
	}

	if strings.Contains(pattern, "/") {
		return globMatch(pattern, key)
	}

	return globMatch(pattern, segments[len(segments)-1])
}

func globMatch(pattern, name string) bool {
	matched, err := path.Match(pattern, name)
	return err == nil && matched
}
