package utils

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePage clamps a page/limit pair to sane bounds. limit is capped at
// MaxPageSize so a single request cannot pull the whole table.
func ParsePage(page, limit, defaultLimit int) (int, int, int) {
	if defaultLimit <= 0 {
		defaultLimit = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	offset := (page - 1) * limit
	return page, limit, offset
}

// ClampLimit bounds a bare ?limit= query (for top/leaderboard style endpoints).
func ClampLimit(limit, fallback int) int {
	if limit < 1 {
		return fallback
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

// PageMeta builds the pagination block for a list response.
func PageMeta(page, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
