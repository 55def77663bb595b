package media

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"testing"

	"estate/internal/domain/entity"
	domainerrors "estate/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakeHost = "https://cdn.example.test/estate/"

// fakeStore records every remote call. Upload derives a deterministic URL
// from the folder and filename so tests can predict final states.
type fakeStore struct {
	mu        sync.Mutex
	uploads   []string
	deletes   []string
	uploadErr map[string]error
	deleteErr map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		uploadErr: make(map[string]error),
		deleteErr: make(map[string]error),
	}
}

func (s *fakeStore) Upload(_ context.Context, _ []byte, folder, filename string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := s.uploadErr[filename]; ok {
		return "", err
	}
	s.uploads = append(s.uploads, filename)

	return fakeHost + folder + "/" + filename, nil
}

func (s *fakeStore) Delete(_ context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deletes = append(s.deletes, ref)
	if err, ok := s.deleteErr[ref]; ok {
		return err
	}

	return nil
}

func (s *fakeStore) RefFromURL(url string) (string, bool) {
	return strings.CutPrefix(url, fakeHost)
}

func (s *fakeStore) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.uploads) + len(s.deletes)
}

func newTestReconciler(store *fakeStore) *Reconciler {
	return NewReconciler(store, slog.New(slog.DiscardHandler))
}

func strPtr(s string) *string { return &s }

func TestSingleNoChangeIsNoOp(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	r := newTestReconciler(store)

	final, deletes, err := r.Single(context.Background(), fakeHost+"avatars/a.jpg", nil, nil, "avatars")

	require.NoError(t, err)
	assert.Equal(t, fakeHost+"avatars/a.jpg", final)
	assert.Zero(t, deletes)
	assert.Zero(t, store.calls())
}

func TestSingleSameProposedURLKeepsAsset(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	r := newTestReconciler(store)
	current := fakeHost + "avatars/a.jpg"

	final, deletes, err := r.Single(context.Background(), current, strPtr(current), nil, "avatars")

	require.NoError(t, err)
	assert.Equal(t, current, final)
	assert.Zero(t, deletes)
	assert.Empty(t, store.deletes)
}

func TestSingleUploadReplacesAndDeletesOld(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	r := newTestReconciler(store)
	current := fakeHost + "avatars/old.jpg"

	final, deletes, err := r.Single(context.Background(), current, nil, &Attachment{Filename: "new.jpg", Data: []byte("x")}, "avatars")

	require.NoError(t, err)
	assert.Equal(t, fakeHost+"avatars/new.jpg", final)
	assert.Equal(t, 1, deletes)
	assert.Equal(t, []string{"avatars/old.jpg"}, store.deletes)
}

func TestSingleExternalURLNeverDeleted(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	r := newTestReconciler(store)
	current := "https://elsewhere.test/pic.jpg"

	final, deletes, err := r.Single(context.Background(), current, strPtr(""), nil, "avatars")

	require.NoError(t, err)
	assert.Empty(t, final)
	assert.Zero(t, deletes)
	assert.Empty(t, store.deletes)
}

func TestSingleDeleteFailureSwallowed(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.deleteErr["avatars/old.jpg"] = errors.New("remote unavailable")
	r := newTestReconciler(store)

	final, deletes, err := r.Single(context.Background(), fakeHost+"avatars/old.jpg", strPtr(""), nil, "avatars")

	require.NoError(t, err)
	assert.Empty(t, final)
	assert.Equal(t, 1, deletes)
}

func TestSingleUploadFailure(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.uploadErr["bad.jpg"] = errors.New("boom")
	r := newTestReconciler(store)

	_, _, err := r.Single(context.Background(), "", nil, &Attachment{Filename: "bad.jpg"}, "avatars")

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrUploadFailed.ErrorCode(), appErr.ErrorCode())
}

func TestListTrimDeletesExactlyRemoved(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	r := newTestReconciler(store)
	a := fakeHost + "gallery/a.jpg"
	b := fakeHost + "gallery/b.jpg"
	c := fakeHost + "gallery/c.jpg"
	proposed := []string{a, c}

	final, deletes, err := r.List(context.Background(), []string{a, b, c}, &proposed, nil, "gallery")

	require.NoError(t, err)
	assert.Equal(t, []string{a, c}, final)
	assert.Equal(t, 1, deletes)
	assert.Equal(t, []string{"gallery/b.jpg"}, store.deletes)
}

func TestListNilProposalWithUploadsAppends(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	r := newTestReconciler(store)
	a := fakeHost + "gallery/a.jpg"

	final, deletes, err := r.List(context.Background(), []string{a}, nil, []Attachment{{Filename: "b.jpg"}}, "gallery")

	require.NoError(t, err)
	assert.Equal(t, []string{a, fakeHost + "gallery/b.jpg"}, final)
	assert.Zero(t, deletes)
	assert.Empty(t, store.deletes)
}

func TestListNoProposalNoUploadsIsNoOp(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	r := newTestReconciler(store)
	current := []string{fakeHost + "gallery/a.jpg"}

	final, deletes, err := r.List(context.Background(), current, nil, nil, "gallery")

	require.NoError(t, err)
	assert.Equal(t, current, final)
	assert.Zero(t, deletes)
	assert.Zero(t, store.calls())
}

func TestListMixedExternalAndManaged(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	r := newTestReconciler(store)
	managed := fakeHost + "gallery/ours.jpg"
	external := "https://elsewhere.test/theirs.jpg"
	proposed := []string{}

	final, deletes, err := r.List(context.Background(), []string{managed, external}, &proposed, nil, "gallery")

	require.NoError(t, err)
	assert.Empty(t, final)
	assert.Equal(t, 1, deletes)
	assert.Equal(t, []string{"gallery/ours.jpg"}, store.deletes)
}

func TestListDuplicateRemovedRefDeletedOnce(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	r := newTestReconciler(store)
	dup := fakeHost + "gallery/dup.jpg"
	proposed := []string{}

	_, deletes, err := r.List(context.Background(), []string{dup, dup}, &proposed, nil, "gallery")

	require.NoError(t, err)
	assert.Equal(t, 1, deletes)
	assert.Equal(t, []string{"gallery/dup.jpg"}, store.deletes)
}

func TestListConcurrentUploadsPreserveOrder(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	r := newTestReconciler(store)
	uploads := []Attachment{{Filename: "1.jpg"}, {Filename: "2.jpg"}, {Filename: "3.jpg"}}
	proposed := []string{}

	final, _, err := r.List(context.Background(), nil, &proposed, uploads, "gallery")

	require.NoError(t, err)
	require.Len(t, final, 3)
	assert.Equal(t, fakeHost+"gallery/1.jpg", final[0])
	assert.Equal(t, fakeHost+"gallery/2.jpg", final[1])
	assert.Equal(t, fakeHost+"gallery/3.jpg", final[2])

	got := append([]string(nil), store.uploads...)
	sort.Strings(got)
	assert.Equal(t, []string{"1.jpg", "2.jpg", "3.jpg"}, got)
}

func TestPortfolioUploadsAppendAsImages(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	r := newTestReconciler(store)
	current := []entity.PortfolioItem{{URL: fakeHost + "portfolio/a.jpg", Kind: entity.PortfolioImage}}
	proposed := []entity.PortfolioItem{}

	final, deletes, err := r.Portfolio(context.Background(), current, &proposed, []Attachment{{Filename: "b.mp4"}}, "portfolio")

	require.NoError(t, err)
	require.Len(t, final, 1)
	assert.Equal(t, entity.PortfolioImage, final[0].Kind)
	assert.Equal(t, fakeHost+"portfolio/b.mp4", final[0].URL)
	assert.Equal(t, 1, deletes)
}

func TestBrochuresNilProposalIsNoOp(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	r := newTestReconciler(store)
	current := []entity.Brochure{{Title: "Tower A", FileURL: fakeHost + "files/a.pdf"}}

	final, deletes, err := r.Brochures(context.Background(), current, nil, []Attachment{{Filename: "ignored.pdf"}}, "files")

	require.NoError(t, err)
	assert.Equal(t, current, final)
	assert.Zero(t, deletes)
	assert.Zero(t, store.calls())
}

func TestBrochuresFileEntriesConsumeUploadsInOrder(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	r := newTestReconciler(store)
	kept := fakeHost + "files/kept.pdf"
	removed := fakeHost + "files/removed.pdf"
	current := []entity.Brochure{
		{Title: "Kept", Language: "en", FileURL: kept},
		{Title: "Removed", Language: "en", FileURL: removed},
	}
	proposed := []BrochureChange{
		{Title: "Kept", Language: "en", FileURL: kept},
		{IsFile: true},
		{Title: "Arabic", Language: "ar", IsFile: true},
	}
	uploads := []Attachment{{Filename: "floorplan.pdf"}, {Filename: "pricing.pdf"}}

	final, deletes, err := r.Brochures(context.Background(), current, &proposed, uploads, "files")

	require.NoError(t, err)
	require.Len(t, final, 3)
	assert.Equal(t, kept, final[0].FileURL)
	assert.Equal(t, "floorplan.pdf", final[1].Title)
	assert.Equal(t, "en", final[1].Language)
	assert.Equal(t, fakeHost+"files/floorplan.pdf", final[1].FileURL)
	assert.Equal(t, "Arabic", final[2].Title)
	assert.Equal(t, "ar", final[2].Language)
	assert.Equal(t, 1, deletes)
	assert.Equal(t, []string{"files/removed.pdf"}, store.deletes)
}

func TestBrochuresMissingUploadEntrySkipped(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	r := newTestReconciler(store)
	proposed := []BrochureChange{{Title: "No file", IsFile: true}}

	final, deletes, err := r.Brochures(context.Background(), nil, &proposed, nil, "files")

	require.NoError(t, err)
	assert.Empty(t, final)
	assert.Zero(t, deletes)
}

func TestPurgeSweepsManagedRefsOnly(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.deleteErr["files/b.pdf"] = errors.New("remote unavailable")
	r := newTestReconciler(store)

	attempts := r.Purge(context.Background(),
		fakeHost+"files/a.pdf",
		fakeHost+"files/b.pdf",
		"https://elsewhere.test/c.pdf",
		"",
	)

	assert.Equal(t, 2, attempts)
	assert.Equal(t, []string{"files/a.pdf", "files/b.pdf"}, store.deletes)
}
