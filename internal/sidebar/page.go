package sidebar

import (
	"net/url"
	"strings"
)

// PageName reduces a route or link to the page it names: the last path
// segment, URL-decoded, without query, fragment prefix, or .md suffix.
// "#/notes/c/%E7%B7%A8.md?id=x" and "/notes/c/編" both name "編".
func PageName(ref string) string {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "#")
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		ref = ref[i+1:]
	}
	if decoded, err := url.PathUnescape(ref); err == nil {
		ref = decoded
	}
	return strings.TrimSuffix(ref, ".md")
}
