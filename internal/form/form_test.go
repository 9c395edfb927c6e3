package form

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondbrain/brain-client/internal/domain"
	domainerrors "github.com/secondbrain/brain-client/internal/errors"
	"github.com/secondbrain/brain-client/internal/gateway"
	"github.com/secondbrain/brain-client/internal/notice"
)

type fakeCreator struct {
	mu      sync.Mutex
	calls   []domain.Draft
	err     error
	release chan struct{}
	started chan struct{}
}

func (c *fakeCreator) CreateContent(ctx context.Context, draft domain.Draft) error {
	c.mu.Lock()
	c.calls = append(c.calls, draft)
	c.mu.Unlock()

	if c.started != nil {
		c.started <- struct{}{}
	}
	if c.release != nil {
		<-c.release
	}
	return c.err
}

func (c *fakeCreator) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

type staticTags []string

func (s staticTags) Tags() []string { return s }

type harness struct {
	form      *Form
	creator   *fakeCreator
	notices   *notice.Queue
	submitted []domain.Draft
}

func newHarness(t *testing.T, universe ...string) *harness {
	t.Helper()
	h := &harness{creator: &fakeCreator{}, notices: notice.NewQueue()}
	h.form = New(Options{
		Creator:  h.creator,
		Tags:     staticTags(universe),
		Notifier: h.notices,
		OnSubmitted: func(_ context.Context, d domain.Draft) {
			h.submitted = append(h.submitted, d)
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return h
}

func TestOpen_Defaults(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, StateClosed, h.form.State())

	h.form.Open(nil)

	v := h.form.Snapshot()
	assert.Equal(t, StateOpen, v.State)
	assert.Equal(t, domain.TypeOther, v.Draft.Type)
	assert.Empty(t, v.Draft.Title)
	assert.Empty(t, v.Draft.Tags)
	assert.False(t, v.ListMode)
}

func TestOpen_Prefilled(t *testing.T) {
	h := newHarness(t)
	initial := domain.Draft{Title: "Existing", Tags: []string{"Go"}}

	h.form.Open(&initial)
	require.NoError(t, h.form.AddTag("Rust"))

	v := h.form.Snapshot()
	assert.Equal(t, "Existing", v.Draft.Title)
	assert.Equal(t, domain.TypeOther, v.Draft.Type)
	assert.Equal(t, []string{"Go", "Rust"}, v.Draft.Tags)
	assert.Equal(t, []string{"Go"}, initial.Tags, "caller's draft is not aliased")
}

func TestReopen_ChecksRevision(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.form.Reopen(&domain.Draft{Title: "first"}, 0), "closed form opens")
	seen := h.form.Snapshot().Revision

	require.NoError(t, h.form.AddTag("AI"))
	err := h.form.Reopen(&domain.Draft{Title: "second"}, seen)
	assert.Equal(t, ErrStale, err)

	v := h.form.Snapshot()
	assert.Equal(t, "first", v.Draft.Title)
	assert.Equal(t, []string{"AI"}, v.Draft.Tags)

	require.NoError(t, h.form.Reopen(&domain.Draft{Title: "second"}, v.Revision))
	v = h.form.Snapshot()
	assert.Equal(t, "second", v.Draft.Title)
	assert.Empty(t, v.Draft.Tags)
	assert.NotEqual(t, seen, v.Revision)
}

func TestEdits_RequireOpenForm(t *testing.T) {
	h := newHarness(t)

	assert.ErrorIs(t, h.form.SetTitle("x"), ErrClosed)
	assert.ErrorIs(t, h.form.AddTag("x"), ErrClosed)
	_, err := h.form.Submit(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestFieldEdits(t *testing.T) {
	h := newHarness(t)
	h.form.Open(nil)

	require.NoError(t, h.form.SetTitle("Talk"))
	require.NoError(t, h.form.SetType(domain.TypeYouTube))
	require.NoError(t, h.form.SetLink("https://youtu.be/abc"))
	require.NoError(t, h.form.SetDescription("notes"))
	assert.Error(t, h.form.SetType("podcast"))

	d := h.form.Snapshot().Draft
	assert.Equal(t, "Talk", d.Title)
	assert.Equal(t, domain.TypeYouTube, d.Type)
	assert.Equal(t, "https://youtu.be/abc", d.Link)
	assert.Equal(t, "notes", d.Description)
}

func TestAddTag_TrimsAndClearsQuery(t *testing.T) {
	h := newHarness(t)
	h.form.Open(nil)

	require.NoError(t, h.form.SetTagQuery("  Go  "))
	require.NoError(t, h.form.AddTag("  Go  "))

	v := h.form.Snapshot()
	assert.Equal(t, []string{"Go"}, v.Draft.Tags)
	assert.Empty(t, v.TagQuery)
}

func TestAddTag_BlankOrDuplicateIsNoop(t *testing.T) {
	h := newHarness(t)
	h.form.Open(nil)
	require.NoError(t, h.form.AddTag("Go"))

	require.NoError(t, h.form.SetTagQuery("Go"))
	require.NoError(t, h.form.AddTag("Go"))
	require.NoError(t, h.form.AddTag("   "))

	v := h.form.Snapshot()
	assert.Equal(t, []string{"Go"}, v.Draft.Tags)
	assert.Empty(t, v.TagQuery, "query cleared even on no-op")
}

func TestAddThenRemoveTagRestoresSet(t *testing.T) {
	h := newHarness(t)
	h.form.Open(&domain.Draft{Tags: []string{"AI", "Go"}})

	for _, tag := range []string{"Rust", "web dev", "Ünïcode"} {
		before := h.form.Snapshot().Draft.Tags
		require.NoError(t, h.form.AddTag(tag))
		require.NoError(t, h.form.RemoveTag(tag))
		assert.Equal(t, before, h.form.Snapshot().Draft.Tags, tag)
	}
}

func TestSuggestions_FilterAndExclude(t *testing.T) {
	h := newHarness(t, "React", "TypeScript", "JavaScript", "AI")
	h.form.Open(nil)
	require.NoError(t, h.form.AddTag("JavaScript"))

	require.NoError(t, h.form.SetTagQuery("SCRIPT"))

	assert.Equal(t, []string{"TypeScript"}, h.form.Suggestions())
}

func TestOfferNewTag(t *testing.T) {
	h := newHarness(t, "React", "AI")
	h.form.Open(nil)
	require.NoError(t, h.form.AddTag("Go"))

	tests := []struct {
		query string
		want  bool
	}{
		{"", false},
		{"   ", false},
		{"React", false},
		{"Go", false},
		{"react", true},
		{"Rust", true},
		{"  Rust  ", true},
	}
	for _, tt := range tests {
		require.NoError(t, h.form.SetTagQuery(tt.query))
		assert.Equal(t, tt.want, h.form.OfferNewTag(), "query %q", tt.query)
	}
}

func TestListMode_TogglingKeepsText(t *testing.T) {
	h := newHarness(t)
	h.form.Open(nil)
	require.NoError(t, h.form.SetDescription("intro"))
	require.NoError(t, h.form.SetListMode(true))
	require.NoError(t, h.form.AddListItem())
	require.NoError(t, h.form.SetListItem(0, "first"))

	require.NoError(t, h.form.SetListMode(false))
	require.NoError(t, h.form.SetListMode(true))

	v := h.form.Snapshot()
	assert.Equal(t, "intro", v.Draft.Description)
	assert.Equal(t, []string{"first"}, v.ListItems)
}

func TestListItems_EditAndRemove(t *testing.T) {
	h := newHarness(t)
	h.form.Open(nil)
	require.NoError(t, h.form.AddListItem())
	require.NoError(t, h.form.AddListItem())
	require.NoError(t, h.form.AddListItem())
	require.NoError(t, h.form.SetListItem(0, "a"))
	require.NoError(t, h.form.SetListItem(2, "c"))

	require.NoError(t, h.form.RemoveListItem(1))

	assert.Equal(t, []string{"a", "c"}, h.form.Snapshot().ListItems)
	assert.Error(t, h.form.SetListItem(5, "x"))
	assert.Error(t, h.form.RemoveListItem(-1))
}

func TestComposeDescription(t *testing.T) {
	tests := []struct {
		name        string
		description string
		items       []string
		want        string
	}{
		{"appends after blank line", "intro", []string{"a", "", "b"}, "intro\n\n• a\n• b"},
		{"no description", "", []string{"a", "b"}, "• a\n• b"},
		{"whitespace items dropped", "intro", []string{"  ", "\t"}, "intro"},
		{"items kept verbatim", "", []string{" spaced "}, "•  spaced "},
		{"no items", "intro", nil, "intro"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComposeDescription(tt.description, tt.items))
		})
	}
}

func TestSubmit_BlankTitleMakesNoCall(t *testing.T) {
	h := newHarness(t)
	h.form.Open(nil)
	require.NoError(t, h.form.SetTitle("   "))

	_, err := h.form.Submit(context.Background())

	assert.ErrorIs(t, err, domainerrors.ErrValidation)
	assert.Equal(t, 0, h.creator.callCount())
	assert.Equal(t, StateOpen, h.form.State())
	assert.NotEmpty(t, h.form.Error())
}

func TestSubmit_ListModeComposesDescription(t *testing.T) {
	h := newHarness(t)
	h.form.Open(nil)
	require.NoError(t, h.form.SetTitle("Notes"))
	require.NoError(t, h.form.SetDescription("intro"))
	require.NoError(t, h.form.SetListMode(true))
	for i, item := range []string{"a", "", "b"} {
		require.NoError(t, h.form.AddListItem())
		require.NoError(t, h.form.SetListItem(i, item))
	}

	draft, err := h.form.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "intro\n\n• a\n• b", draft.Description)
	require.Equal(t, 1, h.creator.callCount())
	assert.Equal(t, "intro\n\n• a\n• b", h.creator.calls[0].Description)
}

func TestSubmit_PlainModeIgnoresListItems(t *testing.T) {
	h := newHarness(t)
	h.form.Open(nil)
	require.NoError(t, h.form.SetTitle("Notes"))
	require.NoError(t, h.form.SetDescription("intro"))
	require.NoError(t, h.form.AddListItem())
	require.NoError(t, h.form.SetListItem(0, "a"))

	draft, err := h.form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "intro", draft.Description)
}

func TestSubmit_SuccessResetsAndNotifies(t *testing.T) {
	h := newHarness(t)
	h.form.Open(nil)
	require.NoError(t, h.form.SetTitle("Talk"))
	require.NoError(t, h.form.AddTag("Go"))

	_, err := h.form.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateClosed, h.form.State())
	assert.Empty(t, h.form.Snapshot().Draft.Title)
	require.Len(t, h.submitted, 1)
	assert.Equal(t, "Talk", h.submitted[0].Title)
	assert.Equal(t, []notice.Notice{notice.Info(SuccessMessage)}, h.notices.Drain())
}

func TestSubmit_FailureKeepsFormOpen(t *testing.T) {
	h := newHarness(t)
	h.creator.err = &gateway.Error{Status: 400, Message: "Title too long"}
	h.form.Open(nil)
	require.NoError(t, h.form.SetTitle("Talk"))

	_, err := h.form.Submit(context.Background())

	assert.ErrorIs(t, err, domainerrors.ErrAPI)
	assert.Equal(t, StateOpen, h.form.State())
	assert.Equal(t, "Title too long", h.form.Error())
	assert.Equal(t, "Talk", h.form.Snapshot().Draft.Title)
	assert.Empty(t, h.submitted)
	assert.Empty(t, h.notices.Drain())

	h.creator.err = nil
	_, err = h.form.Submit(context.Background())
	require.NoError(t, err)
	assert.Empty(t, h.form.Error())
}

func TestSubmit_GenericFailureMessage(t *testing.T) {
	h := newHarness(t)
	h.creator.err = errors.New("")
	h.form.Open(nil)
	require.NoError(t, h.form.SetTitle("Talk"))

	_, err := h.form.Submit(context.Background())

	require.Error(t, err)
	assert.Equal(t, FailureMessage, h.form.Error())
}

func TestSubmit_ReentrantSubmitIsRejected(t *testing.T) {
	h := newHarness(t)
	h.creator.started = make(chan struct{})
	h.creator.release = make(chan struct{})
	h.form.Open(nil)
	require.NoError(t, h.form.SetTitle("Talk"))

	done := make(chan error, 1)
	go func() {
		_, err := h.form.Submit(context.Background())
		done <- err
	}()
	<-h.creator.started

	assert.Equal(t, StateSubmitting, h.form.State())
	_, err := h.form.Submit(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrBusy)
	assert.ErrorIs(t, h.form.SetTitle("other"), domainerrors.ErrBusy)

	close(h.creator.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, h.creator.callCount())
}

func TestDismiss_DuringSubmitStillReportsSuccess(t *testing.T) {
	h := newHarness(t)
	h.creator.started = make(chan struct{})
	h.creator.release = make(chan struct{})
	h.form.Open(nil)
	require.NoError(t, h.form.SetTitle("Talk"))

	done := make(chan error, 1)
	go func() {
		_, err := h.form.Submit(context.Background())
		done <- err
	}()
	<-h.creator.started

	h.form.Dismiss()
	h.form.Open(nil)
	require.NoError(t, h.form.SetTitle("Next"))

	close(h.creator.release)
	require.NoError(t, <-done)

	assert.Equal(t, StateOpen, h.form.State())
	assert.Equal(t, "Next", h.form.Snapshot().Draft.Title)
	require.Len(t, h.submitted, 1)
	assert.Equal(t, "Talk", h.submitted[0].Title)
}

func TestDismiss_ResetsWithoutPosting(t *testing.T) {
	h := newHarness(t)
	h.form.Open(nil)
	require.NoError(t, h.form.SetTitle("Talk"))
	require.NoError(t, h.form.SetListMode(true))
	require.NoError(t, h.form.AddListItem())

	h.form.Dismiss()

	v := h.form.Snapshot()
	assert.Equal(t, StateClosed, v.State)
	assert.Empty(t, v.Draft.Title)
	assert.False(t, v.ListMode)
	assert.Empty(t, v.ListItems)
	assert.Equal(t, 0, h.creator.callCount())
}
