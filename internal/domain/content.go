// Package domain defines the content, draft, tag, and share types shared by
// the brain client's workflows.
package domain

import (
	"slices"
	"strings"
	"time"
)

// ContentType determines how an item is rendered and how its link is read.
type ContentType string

// Content types accepted by the backend.
const (
	TypeYouTube ContentType = "youtube"
	TypeX       ContentType = "x"
	TypeOther   ContentType = "other"
)

// ContentTypes lists every content type in display order.
var ContentTypes = []ContentType{TypeYouTube, TypeX, TypeOther}

// ParseContentType maps a raw value to a ContentType.
func ParseContentType(raw string) (ContentType, bool) {
	t := ContentType(strings.ToLower(strings.TrimSpace(raw)))
	if slices.Contains(ContentTypes, t) {
		return t, true
	}
	return "", false
}

// Label returns the human-readable name of the type.
func (t ContentType) Label() string {
	switch t {
	case TypeYouTube:
		return "YouTube"
	case TypeX:
		return "X (Twitter)"
	default:
		return "Other"
	}
}

// ContentItem is a server-owned content entry.
type ContentItem struct {
	ID          string      `json:"_id"`
	Title       string      `json:"title"`
	Type        ContentType `json:"type"`
	Tags        []string    `json:"tags"`
	Description string      `json:"description"`
	Link        string      `json:"link,omitempty"`
	UserID      string      `json:"userId,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// ContentList is the body of GET /content.
type ContentList struct {
	Content []ContentItem `json:"content"`
}

// Draft is the not-yet-persisted content the entry form composes. It is also
// the body of POST /content.
type Draft struct {
	Title       string      `json:"title" validate:"notblank"`
	Type        ContentType `json:"type" validate:"oneof=youtube x other"`
	Tags        []string    `json:"tags" validate:"unique"`
	Description string      `json:"description"`
	Link        string      `json:"link"`
}

// NewDraft returns an empty draft with defaults applied.
func NewDraft() Draft {
	return Draft{Type: TypeOther, Tags: []string{}}
}

// Clone returns a deep copy of the draft.
func (d Draft) Clone() Draft {
	c := d
	c.Tags = append([]string{}, d.Tags...)
	return c
}

// HasTag reports whether tag is already on the draft (exact match).
func (d Draft) HasTag(tag string) bool {
	return slices.Contains(d.Tags, tag)
}

// Item converts the draft into a ContentItem for local display.
func (d Draft) Item(id string, at time.Time) ContentItem {
	return ContentItem{
		ID:          id,
		Title:       d.Title,
		Type:        d.Type,
		Tags:        append([]string{}, d.Tags...),
		Description: d.Description,
		Link:        d.Link,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
}
