package service

import (
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/models"
)

func pageOffset(page, limit int) int {
	return (page - 1) * limit
}

// TotalPages is ceil(total/limit); an empty result has zero pages.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func newPageMeta(total int64, page, limit int) models.PageMeta {
	return models.PageMeta{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: TotalPages(total, limit),
	}
}

func pageDefaults(page, limit int) (int, int) {
	if page == 0 {
		page = models.DefaultPage
	}
	if limit == 0 {
		limit = models.DefaultLimit
	}
	return page, limit
}

func archivedOrDefault(archived *bool) bool {
	if archived == nil {
		return false
	}
	return *archived
}
