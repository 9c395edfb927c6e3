package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// DefaultTags seed the tag universe before any content has been loaded.
var DefaultTags = []string{"AI", "React", "TypeScript", "JavaScript", "Web Development"}

// TagUniverse is the insertion-ordered set of distinct tags seen across
// loaded content.
type TagUniverse struct {
	tags []string
	seen map[string]struct{}
}

// NewTagUniverse builds a universe from tags, dropping duplicates.
func NewTagUniverse(tags ...string) *TagUniverse {
	u := &TagUniverse{seen: make(map[string]struct{}, len(tags))}
	u.Add(tags...)
	return u
}

// CollectTags returns the union of all tags across items.
func CollectTags(items []ContentItem) *TagUniverse {
	u := NewTagUniverse()
	for _, item := range items {
		u.Add(item.Tags...)
	}
	return u
}

// Add inserts tags not yet present. Blank tags are ignored.
func (u *TagUniverse) Add(tags ...string) {
	for _, t := range tags {
		if strings.TrimSpace(t) == "" {
			continue
		}
		if _, ok := u.seen[t]; ok {
			continue
		}
		u.seen[t] = struct{}{}
		u.tags = append(u.tags, t)
	}
}

// Contains reports whether tag is in the universe (exact match).
func (u *TagUniverse) Contains(tag string) bool {
	_, ok := u.seen[tag]
	return ok
}

// Tags returns a copy of the tags in insertion order.
func (u *TagUniverse) Tags() []string {
	return append([]string{}, u.tags...)
}

// Len returns the number of distinct tags.
func (u *TagUniverse) Len() int {
	return len(u.tags)
}

// SuggestTags filters universe to tags containing query, compared with
// Unicode case folding, leaving out any tag in exclude. An empty query
// matches everything.
func SuggestTags(universe []string, query string, exclude []string) []string {
	fold := cases.Fold()
	needle := fold.String(query)

	skip := make(map[string]struct{}, len(exclude))
	for _, t := range exclude {
		skip[t] = struct{}{}
	}

	out := []string{}
	for _, t := range universe {
		if _, ok := skip[t]; ok {
			continue
		}
		if strings.Contains(fold.String(t), needle) {
			out = append(out, t)
		}
	}
	return out
}
