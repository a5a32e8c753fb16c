package store

import (
	"path"
	"strings"
)

// CleanPath normalizes an absolute path: it starts with "/", has no trailing
// slash and no empty or "." components. The root is "/".
func CleanPath(p string) string {
	if p == "" || p == "/" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// JoinPath resolves p against base. An absolute p is returned cleaned;
// a relative one (including "" and ".") is joined below base.
func JoinPath(base, p string) string {
	if strings.HasPrefix(p, "/") {
		return CleanPath(p)
	}
	return CleanPath(path.Join(CleanPath(base), p))
}

// SplitPath splits a path into its components.
//
// Examples:
//   - "/" -> []string{}
//   - "/general" -> []string{"general"}
//   - "/general/subject/age" -> []string{"general", "subject", "age"}
func SplitPath(p string) []string {
	p = strings.Trim(CleanPath(p), "/")
	if p == "" {
		return []string{}
	}
	return strings.Split(p, "/")
}

// Base returns the last component of a path, or "/" for the root.
func Base(p string) string {
	return path.Base(CleanPath(p))
}

// Dir returns all but the last component of a path.
func Dir(p string) string {
	return path.Dir(CleanPath(p))
}
