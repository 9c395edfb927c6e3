// Package dashboard holds the loaded content collection and the tag
// universe derived from it.
package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/secondbrain/brain-client/internal/domain"
	domainerrors "github.com/secondbrain/brain-client/internal/errors"
	"github.com/secondbrain/brain-client/internal/gateway"
	"github.com/secondbrain/brain-client/internal/id"
)

// LoadFailureMessage is shown when a load fails without a backend message.
const LoadFailureMessage = "Failed to load content"

// Lister fetches the caller's collection.
type Lister interface {
	ListContent(ctx context.Context) ([]domain.ContentItem, error)
}

// Dashboard is safe for concurrent use. Every Load takes a sequence number;
// a response older than the newest one applied is dropped.
type Dashboard struct {
	lister Lister
	logger *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	items    []domain.ContentItem
	pending  map[string]bool
	universe *domain.TagUniverse
	errMsg   string
	inFlight int
	issued   uint64
	applied  uint64
}

// New creates an empty dashboard. The tag universe starts with the defaults.
func New(lister Lister, logger *slog.Logger) *Dashboard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dashboard{
		lister:   lister,
		logger:   logger,
		now:      time.Now,
		items:    []domain.ContentItem{},
		pending:  make(map[string]bool),
		universe: domain.NewTagUniverse(domain.DefaultTags...),
	}
}

// Load fetches the collection. On success the items and the tag universe
// are replaced wholesale; on failure they are left as they were.
func (d *Dashboard) Load(ctx context.Context) error {
	d.mu.Lock()
	d.issued++
	seq := d.issued
	d.inFlight++
	d.errMsg = ""
	d.mu.Unlock()

	items, err := d.lister.ListContent(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.inFlight--

	if seq < d.applied {
		d.logger.Debug("discarding stale content load", "seq", seq, "applied", d.applied)
		return nil
	}
	d.applied = seq

	if err != nil {
		d.errMsg = gateway.Message(err, LoadFailureMessage)
		d.logger.Error("Error fetching content", "error", err)
		return domainerrors.API(d.errMsg).WithCause(err)
	}

	d.errMsg = ""
	d.items = append([]domain.ContentItem{}, items...)
	d.pending = make(map[string]bool)
	d.universe = domain.CollectTags(d.items)
	d.logger.Debug("content loaded", "count", len(d.items), "tags", d.universe.Len())
	return nil
}

// HandleSubmitted shows draft immediately under a local id, then reloads.
// Whatever the reload returns replaces the optimistic entry.
func (d *Dashboard) HandleSubmitted(ctx context.Context, draft domain.Draft) {
	d.mu.Lock()
	localID := id.Local()
	d.items = append(d.items, draft.Item(localID, d.now()))
	d.pending[localID] = true
	d.universe.Add(draft.Tags...)
	d.mu.Unlock()

	if err := d.Load(ctx); err != nil {
		d.logger.Warn("reload after submit failed", "error", err)
	}
}

// Delete is not offered by the backend contract.
func (d *Dashboard) Delete(_ context.Context, itemID string) error {
	return domainerrors.NotImplemented("Deleting content is not supported").WithDetails(map[string]string{"id": itemID})
}

// Tags returns the current tag universe.
func (d *Dashboard) Tags() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.universe.Tags()
}

// Loading reports whether a load is outstanding.
func (d *Dashboard) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inFlight > 0
}

// Error returns the message of the last failed load, or "".
func (d *Dashboard) Error() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.errMsg
}
