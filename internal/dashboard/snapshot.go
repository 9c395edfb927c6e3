package dashboard

import "github.com/secondbrain/brain-client/internal/domain"

// Snapshot is a read-only copy of the dashboard.
type Snapshot struct {
	Items   []domain.ContentItem `json:"items"`
	Cards   []domain.Card        `json:"cards"`
	Tags    []string             `json:"tags"`
	Loading bool                 `json:"loading"`
	Error   string               `json:"error,omitempty"`
}

// Snapshot copies the current state.
func (d *Dashboard) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	today := d.now()
	s := Snapshot{
		Items:   make([]domain.ContentItem, len(d.items)),
		Cards:   make([]domain.Card, 0, len(d.items)),
		Tags:    d.universe.Tags(),
		Loading: d.inFlight > 0,
		Error:   d.errMsg,
	}
	for i, item := range d.items {
		item.Tags = append([]string{}, item.Tags...)
		s.Items[i] = item
		s.Cards = append(s.Cards, domain.NewCard(item, today, d.pending[item.ID]))
	}
	return s
}
