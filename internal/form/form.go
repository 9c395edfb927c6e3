// Package form implements the content entry form: a draft being composed,
// its tag picker and list-mode description, and submission through the
// gateway.
package form

import (
	"context"
	"log/slog"
	"sync"

	"github.com/secondbrain/brain-client/internal/domain"
	domainerrors "github.com/secondbrain/brain-client/internal/errors"
	"github.com/secondbrain/brain-client/internal/notice"
	"github.com/secondbrain/brain-client/internal/validation"
)

// Messages shown to the user.
const (
	SuccessMessage = "Content added successfully!"
	FailureMessage = "Failed to add content. Please try again."
	bulletPrefix   = "• "
)

// State is the lifecycle position of the form.
type State string

const (
	StateClosed     State = "closed"
	StateOpen       State = "open"
	StateSubmitting State = "submitting"
)

var (
	// ErrClosed is returned by edits and submits on a closed form.
	ErrClosed = domainerrors.Validation("The form is not open")
	// ErrSubmitting is returned while a submission is in flight.
	ErrSubmitting = domainerrors.Busy("A submission is already in progress")
	// ErrStale is returned by Reopen when the draft was edited after the
	// caller last saw it.
	ErrStale = domainerrors.Busy("The draft changed since it was shown. Review it and submit again")
)

// Creator posts drafts to the backend.
type Creator interface {
	CreateContent(ctx context.Context, draft domain.Draft) error
}

// TagSource supplies the tag universe suggestions are drawn from.
type TagSource interface {
	Tags() []string
}

// SubmittedFunc is told about every draft the backend accepted.
type SubmittedFunc func(ctx context.Context, draft domain.Draft)

// Options configure a Form.
type Options struct {
	Creator     Creator
	Tags        TagSource
	Validator   *validation.Validator
	Notifier    notice.Notifier
	OnSubmitted SubmittedFunc
	Logger      *slog.Logger
}

// Form is safe for concurrent use. The network call in Submit runs outside
// the lock; the in-flight state is visible as StateSubmitting.
type Form struct {
	creator     Creator
	tags        TagSource
	validator   *validation.Validator
	notifier    notice.Notifier
	onSubmitted SubmittedFunc
	logger      *slog.Logger

	mu         sync.Mutex
	state      State
	generation uint64
	revision   uint64
	draft      domain.Draft
	listMode   bool
	listItems  []string
	tagQuery   string
	errMsg     string
}

// New creates a closed form.
func New(opts Options) *Form {
	if opts.Validator == nil {
		opts.Validator = validation.New()
	}
	if opts.Notifier == nil {
		opts.Notifier = notice.Discard
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Form{
		creator:     opts.Creator,
		tags:        opts.Tags,
		validator:   opts.Validator,
		notifier:    opts.Notifier,
		onSubmitted: opts.OnSubmitted,
		logger:      opts.Logger,
		state:       StateClosed,
		draft:       domain.NewDraft(),
	}
}

// Open starts a new draft, empty or pre-filled from initial.
func (f *Form) Open(initial *domain.Draft) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.openLocked(initial)
}

// Reopen replaces the open draft with initial, but only if it is still at
// revision seen. A closed form opens unconditionally.
func (f *Form) Reopen(initial *domain.Draft, seen uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case f.state == StateSubmitting:
		return ErrSubmitting
	case f.state == StateOpen && f.revision != seen:
		return ErrStale
	}
	f.openLocked(initial)
	return nil
}

func (f *Form) openLocked(initial *domain.Draft) {
	f.resetLocked()
	if initial != nil {
		f.draft = initial.Clone()
		if f.draft.Type == "" {
			f.draft.Type = domain.TypeOther
		}
		if f.draft.Tags == nil {
			f.draft.Tags = []string{}
		}
	}
	f.state = StateOpen
}

// Dismiss discards the draft and closes the form without posting. A
// submission already in flight still completes in the background.
func (f *Form) Dismiss() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
}

func (f *Form) resetLocked() {
	f.generation++
	f.revision++
	f.state = StateClosed
	f.draft = domain.NewDraft()
	f.listMode = false
	f.listItems = nil
	f.tagQuery = ""
	f.errMsg = ""
}

// edit applies fn to the open draft.
func (f *Form) edit(fn func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case StateClosed:
		return ErrClosed
	case StateSubmitting:
		return ErrSubmitting
	}
	fn()
	f.revision++
	return nil
}

// SetTitle replaces the title.
func (f *Form) SetTitle(title string) error {
	return f.edit(func() { f.draft.Title = title })
}

// SetType replaces the content type.
func (f *Form) SetType(t domain.ContentType) error {
	if _, ok := domain.ParseContentType(string(t)); !ok {
		return domainerrors.Validationf("unknown content type %q", t)
	}
	return f.edit(func() { f.draft.Type = t })
}

// SetLink replaces the link.
func (f *Form) SetLink(link string) error {
	return f.edit(func() { f.draft.Link = link })
}

// SetDescription replaces the plain description.
func (f *Form) SetDescription(description string) error {
	return f.edit(func() { f.draft.Description = description })
}
