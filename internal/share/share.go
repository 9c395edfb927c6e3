// Package share drives publishing and revoking the public link to a
// collection.
package share

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/secondbrain/brain-client/internal/domain"
	domainerrors "github.com/secondbrain/brain-client/internal/errors"
	"github.com/secondbrain/brain-client/internal/notice"
)

// Alert messages.
const (
	ShareFailureMessage  = "Failed to share brain. Please try again."
	RevokeFailureMessage = "Failed to revoke brain. Please try again."
	CopyFailureMessage   = "Failed to copy link to clipboard"
)

// ErrNothingToCopy is returned by CopyLink while no link is published.
var ErrNothingToCopy = domainerrors.Validation("There is no share link to copy. Share the brain first")

// CopiedFor is how long the "copied" confirmation stays visible.
const CopiedFor = 2 * time.Second

// Phase is where the workflow stands.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseShared  Phase = "shared"
	PhaseRevoked Phase = "revoked"
)

// Toggler switches public sharing on the backend.
type Toggler interface {
	SetShare(ctx context.Context, enabled bool) (domain.ShareResult, error)
}

// Options configure a Workflow.
type Options struct {
	Toggler   Toggler
	Origin    string // client origin share links are built on
	Clipboard Clipboard
	Notifier  notice.Notifier
	Logger    *slog.Logger
	Now       func() time.Time
}

// Workflow is safe for concurrent use. Share and revoke exclude each other
// while either is in flight.
type Workflow struct {
	toggler   Toggler
	origin    string
	clipboard Clipboard
	notifier  notice.Notifier
	logger    *slog.Logger
	now       func() time.Time

	mu          sync.Mutex
	phase       Phase
	result      domain.ShareResult
	sharing     bool
	revoking    bool
	copiedUntil time.Time
}

// New creates an idle workflow.
func New(opts Options) *Workflow {
	if opts.Clipboard == nil {
		opts.Clipboard = SystemClipboard{}
	}
	if opts.Notifier == nil {
		opts.Notifier = notice.Discard
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Workflow{
		toggler:   opts.Toggler,
		origin:    opts.Origin,
		clipboard: opts.Clipboard,
		notifier:  opts.Notifier,
		logger:    opts.Logger,
		now:       opts.Now,
		phase:     PhaseIdle,
	}
}

// Open resets the workflow to idle.
func (w *Workflow) Open() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.phase = PhaseIdle
	w.result = domain.ShareResult{}
	w.copiedUntil = time.Time{}
}

func (w *Workflow) begin(flag *bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.sharing || w.revoking {
		return domainerrors.Busy("A share request is already in progress")
	}
	*flag = true
	return nil
}

// Share publishes the collection and records the link.
func (w *Workflow) Share(ctx context.Context) (string, error) {
	if err := w.begin(&w.sharing); err != nil {
		return "", err
	}

	res, err := w.toggler.SetShare(ctx, true)

	w.mu.Lock()
	w.sharing = false
	if err != nil {
		w.mu.Unlock()
		w.logger.Error("Error sharing brain", "error", err)
		w.notifier.Notify(notice.Error(ShareFailureMessage))
		return "", domainerrors.API(ShareFailureMessage).WithCause(err)
	}
	w.phase = PhaseShared
	w.result = res
	link := domain.ShareLink(w.origin, res.Hash)
	w.mu.Unlock()

	w.logger.Info("brain shared", "hash", res.Hash)
	return link, nil
}

// Revoke withdraws the public link.
func (w *Workflow) Revoke(ctx context.Context) error {
	if err := w.begin(&w.revoking); err != nil {
		return err
	}

	_, err := w.toggler.SetShare(ctx, false)

	w.mu.Lock()
	w.revoking = false
	if err != nil {
		w.mu.Unlock()
		w.logger.Error("Error revoking brain", "error", err)
		w.notifier.Notify(notice.Error(RevokeFailureMessage))
		return domainerrors.API(RevokeFailureMessage).WithCause(err)
	}
	w.phase = PhaseRevoked
	w.result = domain.ShareResult{}
	w.copiedUntil = time.Time{}
	w.mu.Unlock()

	w.logger.Info("brain share revoked")
	return nil
}

// CopyLink puts the share link on the clipboard.
func (w *Workflow) CopyLink() (string, error) {
	w.mu.Lock()
	if w.phase != PhaseShared || w.result.Hash == "" {
		w.mu.Unlock()
		return "", ErrNothingToCopy
	}
	link := domain.ShareLink(w.origin, w.result.Hash)
	w.mu.Unlock()

	if err := w.clipboard.WriteAll(link); err != nil {
		w.logger.Error("Failed to copy link", "error", err)
		w.notifier.Notify(notice.Error(CopyFailureMessage))
		return "", domainerrors.Clipboard(err, CopyFailureMessage)
	}

	w.mu.Lock()
	w.copiedUntil = w.now().Add(CopiedFor)
	w.mu.Unlock()
	return link, nil
}

// DialogView is a point-in-time copy of the workflow.
type DialogView struct {
	Phase    Phase  `json:"phase"`
	Link     string `json:"link,omitempty"`
	Message  string `json:"message,omitempty"`
	Hash     string `json:"hash,omitempty"`
	Sharing  bool   `json:"sharing"`
	Revoking bool   `json:"revoking"`
	Copied   bool   `json:"copied"`
}

// Snapshot copies the current state.
func (w *Workflow) Snapshot() DialogView {
	w.mu.Lock()
	defer w.mu.Unlock()

	v := DialogView{
		Phase:    w.phase,
		Message:  w.result.Message,
		Hash:     w.result.Hash,
		Sharing:  w.sharing,
		Revoking: w.revoking,
		Copied:   w.now().Before(w.copiedUntil),
	}
	if w.phase == PhaseShared && w.result.Hash != "" {
		v.Link = domain.ShareLink(w.origin, w.result.Hash)
	}
	return v
}

// Copied reports whether a copy happened within the last CopiedFor.
func (w *Workflow) Copied() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.now().Before(w.copiedUntil)
}
