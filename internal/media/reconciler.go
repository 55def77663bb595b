// Package media keeps the media references stored on an entity consistent
// with the assets living on the remote host. Reconciliation computes which
// assets must be uploaded and which must be deleted when an entity's media
// fields change, without ever touching externally hosted URLs.
package media

import (
	"context"
	"log/slog"
	"time"

	"estate/internal/domain/entity"
	domainerrors "estate/internal/domain/errors"
	"estate/internal/domain/service"

	"golang.org/x/sync/errgroup"
)

// Attachment is a raw file buffer accompanying a request.
type Attachment struct {
	Filename string
	Data     []byte
}

// BrochureChange is the client-supplied descriptor for one brochure entry in
// the desired final state. Entries without a FileURL (or flagged IsFile)
// consume the next uploaded attachment in order.
type BrochureChange struct {
	Title      string    `json:"title"`
	Language   string    `json:"language"`
	FileURL    string    `json:"file_url"`
	IsFile     bool      `json:"isFile"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Reconciler moves an entity's media state from current to desired. Uploads
// within one call run concurrently; deletes are sequential and best-effort:
// a failed delete is logged and swallowed, an orphaned remote asset being
// preferable to a stuck write. Uploads that succeeded before a failing one
// are not rolled back.
type Reconciler struct {
	store  service.MediaStore
	logger *slog.Logger
}

// NewReconciler is the constructor for Reconciler.
func NewReconciler(store service.MediaStore, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		store:  store,
		logger: logger,
	}
}

// Single reconciles a single-valued media field (avatar, hero image). A new
// upload replaces the previous reference; otherwise a proposed URL becomes
// the final value. The replaced reference is deleted once if it lives on the
// managed host. With neither proposal nor upload the call is a no-op and
// performs no remote calls.
func (r *Reconciler) Single(ctx context.Context, current string, proposed *string, upload *Attachment, folder string) (string, int, error) {
	if proposed == nil && upload == nil {
		return current, 0, nil
	}

	final := current
	if upload != nil {
		url, err := r.uploadOne(ctx, *upload, folder)
		if err != nil {
			return "", 0, err
		}
		final = url
	} else {
		final = *proposed
	}

	deletes := 0
	if final != current {
		deletes = r.deleteRemoved(ctx, []string{current}, []string{final})
	}

	return final, deletes, nil
}

// List reconciles a list-valued media field (gallery). The proposed list is
// the set of retained references; nil means "keep the current list". Fresh
// uploads are appended after the retained references. Every current
// reference absent from the final list is deleted once if managed.
func (r *Reconciler) List(ctx context.Context, current []string, proposed *[]string, uploads []Attachment, folder string) ([]string, int, error) {
	if proposed == nil && len(uploads) == 0 {
		return current, 0, nil
	}

	retained := current
	if proposed != nil {
		retained = *proposed
	}

	uploaded, err := r.uploadAll(ctx, uploads, folder)
	if err != nil {
		return nil, 0, err
	}

	final := make([]string, 0, len(retained)+len(uploaded))
	final = append(final, retained...)
	final = append(final, uploaded...)

	deletes := r.deleteRemoved(ctx, current, final)

	return final, deletes, nil
}

// Portfolio reconciles a portfolio list, diffing by entry URL. Uploads are
// appended as image entries.
func (r *Reconciler) Portfolio(ctx context.Context, current []entity.PortfolioItem, proposed *[]entity.PortfolioItem, uploads []Attachment, folder string) ([]entity.PortfolioItem, int, error) {
	if proposed == nil && len(uploads) == 0 {
		return current, 0, nil
	}

	retained := current
	if proposed != nil {
		retained = *proposed
	}

	uploaded, err := r.uploadAll(ctx, uploads, folder)
	if err != nil {
		return nil, 0, err
	}

	final := make([]entity.PortfolioItem, 0, len(retained)+len(uploaded))
	final = append(final, retained...)
	for _, url := range uploaded {
		final = append(final, entity.PortfolioItem{URL: url, Kind: entity.PortfolioImage})
	}

	deletes := r.deleteRemoved(ctx, portfolioURLs(current), portfolioURLs(final))

	return final, deletes, nil
}

// Brochures reconciles the brochure list, diffing by file URL. Changes
// without a FileURL consume uploaded attachments in order, defaulting the
// title to the uploaded filename and the language to "en". A nil proposal
// keeps the current list untouched and performs no remote calls.
func (r *Reconciler) Brochures(ctx context.Context, current []entity.Brochure, proposed *[]BrochureChange, uploads []Attachment, folder string) ([]entity.Brochure, int, error) {
	if proposed == nil {
		return current, 0, nil
	}

	uploaded, err := r.uploadAll(ctx, uploads, folder)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	final := make([]entity.Brochure, 0, len(*proposed))
	next := 0
	for _, change := range *proposed {
		if change.IsFile || change.FileURL == "" {
			if next >= len(uploaded) {
				// descriptor expects a file that was not attached;
				// keep it only when it already carries a URL
				if change.FileURL != "" {
					final = append(final, brochureFromChange(change, now))
				}

				continue
			}

			title := change.Title
			if title == "" {
				title = uploads[next].Filename
			}
			language := change.Language
			if language == "" {
				language = "en"
			}
			final = append(final, entity.Brochure{
				Title:      title,
				Language:   language,
				FileURL:    uploaded[next],
				UploadedAt: now,
			})
			next++

			continue
		}

		final = append(final, brochureFromChange(change, now))
	}

	deletes := r.deleteRemoved(ctx, brochureURLs(current), brochureURLs(final))

	return final, deletes, nil
}

// Purge issues a best-effort sequential delete for every managed reference,
// returning the number of delete attempts. Cascade deletes use it to clear
// an entity's media before the database record is removed.
func (r *Reconciler) Purge(ctx context.Context, refs ...string) int {
	return r.deleteRemoved(ctx, refs, nil)
}

func (r *Reconciler) uploadOne(ctx context.Context, att Attachment, folder string) (string, error) {
	url, err := r.store.Upload(ctx, att.Data, folder, att.Filename)
	if err != nil {
		return "", domainerrors.ErrUploadFailed.WrapMessage(err.Error())
	}

	return url, nil
}

// uploadAll uploads every attachment concurrently, preserving input order in
// the result. The first failure aborts the reconciliation; already-completed
// uploads are not rolled back.
func (r *Reconciler) uploadAll(ctx context.Context, uploads []Attachment, folder string) ([]string, error) {
	if len(uploads) == 0 {
		return nil, nil
	}

	refs := make([]string, len(uploads))
	g, gctx := errgroup.WithContext(ctx)
	for i, att := range uploads {
		g.Go(func() error {
			url, err := r.store.Upload(gctx, att.Data, folder, att.Filename)
			if err != nil {
				return domainerrors.ErrUploadFailed.WrapMessage(err.Error())
			}
			refs[i] = url

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return refs, nil
}

// deleteRemoved deletes every reference present in current but absent from
// final, exactly once per distinct reference, skipping empty values and URLs
// the managed host does not own. Returns the number of delete attempts.
func (r *Reconciler) deleteRemoved(ctx context.Context, current, final []string) int {
	keep := make(map[string]struct{}, len(final))
	for _, url := range final {
		keep[url] = struct{}{}
	}

	attempts := 0
	seen := make(map[string]struct{}, len(current))
	for _, url := range current {
		if url == "" {
			continue
		}
		if _, retained := keep[url]; retained {
			continue
		}
		if _, done := seen[url]; done {
			continue
		}
		seen[url] = struct{}{}

		ref, managed := r.store.RefFromURL(url)
		if !managed {
			continue
		}

		attempts++
		if err := r.store.Delete(ctx, ref); err != nil {
			r.logger.Warn("media delete failed", "ref", ref, "error", err)
		}
	}

	return attempts
}

func brochureFromChange(change BrochureChange, now time.Time) entity.Brochure {
	uploadedAt := change.UploadedAt
	if uploadedAt.IsZero() {
		uploadedAt = now
	}

	language := change.Language
	if language == "" {
		language = "en"
	}

	return entity.Brochure{
		Title:      change.Title,
		Language:   language,
		FileURL:    change.FileURL,
		UploadedAt: uploadedAt,
	}
}

func portfolioURLs(items []entity.PortfolioItem) []string {
	urls := make([]string, 0, len(items))
	for _, item := range items {
		urls = append(urls, item.URL)
	}

	return urls
}

func brochureURLs(items []entity.Brochure) []string {
	urls := make([]string, 0, len(items))
	for _, item := range items {
		urls = append(urls, item.FileURL)
	}

	return urls
}
