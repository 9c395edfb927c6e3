package form

import "github.com/secondbrain/brain-client/internal/domain"

// View is a point-in-time copy of the form for rendering.
type View struct {
	State       State        `json:"state"`
	Revision    uint64       `json:"revision"`
	Draft       domain.Draft `json:"draft"`
	ListMode    bool         `json:"listMode"`
	ListItems   []string     `json:"listItems"`
	TagQuery    string       `json:"tagQuery"`
	Suggestions []string     `json:"suggestions"`
	OfferNewTag bool         `json:"offerNewTag"`
	Error       string       `json:"error,omitempty"`
}

// State returns the lifecycle position.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Error returns the message of the last failed submit, or "".
func (f *Form) Error() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// Snapshot returns the current form contents.
func (f *Form) Snapshot() View {
	f.mu.Lock()
	v := View{
		State:     f.state,
		Revision:  f.revision,
		Draft:     f.draft.Clone(),
		ListMode:  f.listMode,
		ListItems: append([]string{}, f.listItems...),
		TagQuery:  f.tagQuery,
		Error:     f.errMsg,
	}
	f.mu.Unlock()

	v.Suggestions = f.Suggestions()
	v.OfferNewTag = f.OfferNewTag()
	return v
}
