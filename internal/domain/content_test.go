package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContentType(t *testing.T) {
	tests := []struct {
		raw  string
		want ContentType
		ok   bool
	}{
		{"youtube", TypeYouTube, true},
		{" X ", TypeX, true},
		{"other", TypeOther, true},
		{"tiktok", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseContentType(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewDraft_Defaults(t *testing.T) {
	d := NewDraft()

	assert.Equal(t, TypeOther, d.Type)
	assert.NotNil(t, d.Tags)
	assert.Empty(t, d.Tags)
}

func TestDraft_CloneIsIndependent(t *testing.T) {
	d := NewDraft()
	d.Tags = append(d.Tags, "go")

	c := d.Clone()
	c.Tags[0] = "rust"

	assert.Equal(t, "go", d.Tags[0])
}

func TestDraft_WireFormat(t *testing.T) {
	d := Draft{Title: "Talk", Type: TypeYouTube, Tags: []string{}, Link: "https://youtu.be/abc"}

	data, err := json.Marshal(d)
	require.NoError(t, err)

	assert.JSONEq(t, `{"title":"Talk","type":"youtube","tags":[],"description":"","link":"https://youtu.be/abc"}`, string(data))
}

func TestContentItem_DecodesBackendShape(t *testing.T) {
	raw := `{"_id":"66f1","title":"Post","type":"x","tags":["news"],"description":"d","link":"https://x.com/p/1","userId":"u1","createdAt":"2025-01-02T03:04:05.000Z","updatedAt":"2025-01-02T03:04:05.000Z"}`

	var item ContentItem
	require.NoError(t, json.Unmarshal([]byte(raw), &item))

	assert.Equal(t, "66f1", item.ID)
	assert.Equal(t, TypeX, item.Type)
	assert.Equal(t, []string{"news"}, item.Tags)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), item.CreatedAt.UTC())
}

func TestShareLink(t *testing.T) {
	assert.Equal(t, "http://localhost:5173/share/abc123", ShareLink("http://localhost:5173", "abc123"))
	assert.Equal(t, "https://b.test/share/h", ShareLink("https://b.test/", "h"))
}
