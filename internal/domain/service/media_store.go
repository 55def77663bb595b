package service

import "context"

// MediaStore is the boundary to the remote asset host. References returned
// by Upload are full public URLs; RefFromURL recovers the delete handle from
// such a URL and rejects URLs the host does not own, so externally supplied
// references are never targeted for deletion.
type MediaStore interface {
	// Upload stores the buffer under the given folder and returns the
	// public URL of the stored asset. An empty buffer is rejected.
	Upload(ctx context.Context, data []byte, folder, filename string) (string, error)
	// Delete removes the asset behind the reference. It is idempotent:
	// deleting a missing asset is not an error.
	Delete(ctx context.Context, ref string) error
	// RefFromURL derives the delete reference from a public URL. The
	// second return value is false for URLs not hosted by this store.
	RefFromURL(url string) (string, bool)
}
