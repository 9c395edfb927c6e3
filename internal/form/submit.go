package form

import (
	"context"

	"github.com/secondbrain/brain-client/internal/domain"
	domainerrors "github.com/secondbrain/brain-client/internal/errors"
	"github.com/secondbrain/brain-client/internal/gateway"
	"github.com/secondbrain/brain-client/internal/notice"
)

// Submit validates the draft and posts it. On success the form resets and
// closes and the submitted draft is returned. On failure the form stays open
// with the message available from Error.
func (f *Form) Submit(ctx context.Context) (domain.Draft, error) {
	f.mu.Lock()
	switch f.state {
	case StateClosed:
		f.mu.Unlock()
		return domain.Draft{}, ErrClosed
	case StateSubmitting:
		f.mu.Unlock()
		return domain.Draft{}, ErrSubmitting
	}

	draft := f.draft.Clone()
	if f.listMode {
		draft.Description = ComposeDescription(draft.Description, f.listItems)
	}
	if err := f.validator.Validate(draft); err != nil {
		f.errMsg = domainerrors.Message(err, FailureMessage)
		f.mu.Unlock()
		return domain.Draft{}, err
	}

	f.state = StateSubmitting
	f.errMsg = ""
	generation := f.generation
	f.mu.Unlock()

	err := f.creator.CreateContent(ctx, draft)

	f.mu.Lock()
	current := f.generation == generation
	if err != nil {
		msg := gateway.Message(err, FailureMessage)
		if current {
			f.state = StateOpen
			f.errMsg = msg
		}
		f.mu.Unlock()
		f.logger.Error("Content submission error", "error", err)
		return domain.Draft{}, domainerrors.API(msg).WithCause(err)
	}
	if current {
		f.resetLocked()
	}
	f.mu.Unlock()

	f.logger.Info("content added", "title", draft.Title, "type", draft.Type)
	f.notifier.Notify(notice.Info(SuccessMessage))
	if f.onSubmitted != nil {
		f.onSubmitted(ctx, draft)
	}
	return draft, nil
}
