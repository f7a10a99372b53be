package doctree

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nonSlug  = regexp.MustCompile(`[^\p{L}\p{N}-]+`)
	dashRuns = regexp.MustCompile(`-+`)
)

// Slugify turns heading text into an id fragment.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlug.ReplaceAllString(s, "-")
	s = dashRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 64 {
		s = strings.TrimRight(truncateRunes(s, 64), "-")
	}
	return s
}

func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// IDSet hands out ids that are unique within one document.
type IDSet struct {
	seen map[string]int
}

func NewIDSet() *IDSet {
	return &IDSet{seen: make(map[string]int)}
}

// Unique returns id, or id with a numeric suffix if it was already taken.
// An empty id becomes "section".
func (s *IDSet) Unique(id string) string {
	if id == "" {
		id = "section"
	}
	n, taken := s.seen[id]
	if !taken {
		s.seen[id] = 0
		return id
	}
	for {
		n++
		candidate := id + "-" + strconv.Itoa(n)
		if _, ok := s.seen[candidate]; !ok {
			s.seen[id] = n
			s.seen[candidate] = 0
			return candidate
		}
	}
}
