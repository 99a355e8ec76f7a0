package tree

import "strings"

// ParsePath splits a slash separated key path.  Empty segments are dropped,
// so "/a//b/" is the same path as "a/b".
func ParsePath(p string) []string {
	parts := strings.Split(p, "/")
	res := parts[:0]
	for _, part := range parts {
		if part == "" {
			continue
		}
		res = append(res, part)
	}
	return res
}

// FormatPath is the inverse of ParsePath.
func FormatPath(path []string) string {
	return strings.Join(path, "/")
}
