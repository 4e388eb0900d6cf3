package authn

import "strings"

// RequiresAuth reports whether path is protected given the excluded-path
// list. The path is normalized to end with exactly one trailing slash before
// comparison. An entry ending in * excludes every path sharing its prefix;
// other entries must match exactly. With no exclusions every path requires
// authentication. Pure function, shared by all authenticator variants.
func RequiresAuth(path string, excluded []string) bool {
	if len(excluded) == 0 {
		return true
	}

	path = strings.TrimRight(path, "/") + "/"

	for _, entry := range excluded {
		if prefix, wildcard := strings.CutSuffix(entry, "*"); wildcard {
			if strings.HasPrefix(path, prefix) {
				return false
			}
			continue
		}
		if path == entry {
			return false
		}
	}

	return true
}
