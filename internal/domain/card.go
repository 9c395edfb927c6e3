package domain

import (
	"net/url"
	"strings"
	"time"
)

// Card is the display form of a content item.
type Card struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Type        ContentType `json:"type"`
	TypeLabel   string      `json:"typeLabel"`
	Tags        []string    `json:"tags"`
	Description string      `json:"description"`
	Link        string      `json:"link,omitempty"`
	EmbedURL    string      `json:"embedUrl,omitempty"`
	AddedOn     string      `json:"addedOn"`
	Pending     bool        `json:"pending"`
}

// NewCard builds the card for item. Items without a creation time show
// today's date.
func NewCard(item ContentItem, today time.Time, pending bool) Card {
	added := item.CreatedAt
	if added.IsZero() {
		added = today
	}
	c := Card{
		ID:          item.ID,
		Title:       item.Title,
		Type:        item.Type,
		TypeLabel:   item.Type.Label(),
		Tags:        append([]string{}, item.Tags...),
		Description: item.Description,
		Link:        item.Link,
		AddedOn:     added.Format("2006-01-02"),
		Pending:     pending,
	}
	if item.Type == TypeYouTube {
		c.EmbedURL = YouTubeEmbedURL(item.Link)
	}
	return c
}

// YouTubeEmbedURL converts watch, short, and youtu.be links into an embed
// URL. It returns "" when no video id can be found.
func YouTubeEmbedURL(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Host == "" {
		return ""
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	host = strings.TrimPrefix(host, "m.")

	var videoID string
	switch host {
	case "youtu.be":
		videoID = strings.Trim(u.Path, "/")
	case "youtube.com":
		switch {
		case u.Path == "/watch":
			videoID = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/shorts/"), strings.HasPrefix(u.Path, "/embed/"):
			parts := strings.Split(strings.Trim(u.Path, "/"), "/")
			if len(parts) >= 2 {
				videoID = parts[1]
			}
		}
	}

	if videoID == "" || strings.Contains(videoID, "/") {
		return ""
	}
	return "https://www.youtube.com/embed/" + videoID
}
