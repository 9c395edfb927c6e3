package form

import (
	"slices"
	"strings"

	"github.com/secondbrain/brain-client/internal/domain"
)

// SetTagQuery updates the tag search field.
func (f *Form) SetTagQuery(q string) error {
	return f.edit(func() { f.tagQuery = q })
}

// Suggestions returns universe tags matching the current query, without
// the ones already on the draft.
func (f *Form) Suggestions() []string {
	f.mu.Lock()
	query, tags := f.tagQuery, f.draft.Clone().Tags
	f.mu.Unlock()

	return domain.SuggestTags(f.universe(), query, tags)
}

// OfferNewTag reports whether the trimmed query could be added as a tag
// nobody has used yet.
func (f *Form) OfferNewTag() bool {
	f.mu.Lock()
	query := strings.TrimSpace(f.tagQuery)
	onDraft := f.draft.HasTag(query)
	f.mu.Unlock()

	if query == "" || onDraft {
		return false
	}
	return !slices.Contains(f.universe(), query)
}

// AddTag appends the trimmed tag unless it is blank or already present.
// The search field is cleared either way.
func (f *Form) AddTag(tag string) error {
	return f.edit(func() {
		tag = strings.TrimSpace(tag)
		if tag != "" && !f.draft.HasTag(tag) {
			f.draft.Tags = append(f.draft.Tags, tag)
		}
		f.tagQuery = ""
	})
}

// RemoveTag deletes tag from the draft by value.
func (f *Form) RemoveTag(tag string) error {
	return f.edit(func() {
		f.draft.Tags = slices.DeleteFunc(f.draft.Tags, func(t string) bool { return t == tag })
	})
}

func (f *Form) universe() []string {
	if f.tags == nil {
		return nil
	}
	return f.tags.Tags()
}
