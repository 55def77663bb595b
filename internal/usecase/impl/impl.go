// Package impl provides the concrete implementations of the usecase interfaces.
package impl

import "estate/config"

// Media folders on the asset host, one per media category.
const (
	folderProfiles   = "images/profiles"
	folderProperties = "images/properties"
	folderFiles      = "files"
)

// clampPage normalizes 1-based page numbers and page sizes against the
// configured bounds and returns the SQL offset alongside.
func clampPage(page, limit int, cfg *config.PaginationConfig) (normPage, normLimit, offset int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = cfg.DefaultPageSize
	}
	if limit > cfg.MaxPageSize {
		limit = cfg.MaxPageSize
	}

	return page, limit, (page - 1) * limit
}
