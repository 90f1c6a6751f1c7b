package models

import (
	"time"
)

const (
	SortRecentlyAdded   = "recently-added"
	SortRecentlyVisited = "recently-visited"
	SortMostVisited     = "most-visited"

	DefaultPage  = 1
	DefaultLimit = 10

	// MaxPage keeps (page-1)*limit well inside int range.
	MaxPage = 1000000
)

// BookmarkReq is the body of create and update calls. A nil Tags leaves the
// bookmark's tags alone on update; a non-nil empty slice clears them.
type BookmarkReq struct {
	Title       string    `json:"title" validate:"required,max=280"`
	Description *string   `json:"description" validate:"omitempty,max=280"`
	WebsiteURL  string    `json:"websiteURL" validate:"required,url,max=1024"`
	Tags        *[]string `json:"tags"`
}

type BookmarkListReq struct {
	Page     int    `json:"page" validate:"min=1,max=1000000"`
	Limit    int    `json:"limit" validate:"min=1,max=100"`
	Search   string `json:"search"`
	Archived *bool  `json:"archived"`
	SortBy   string `json:"sortBy" validate:"omitempty,oneof=recently-added recently-visited most-visited"`
}

type TagUsageReq struct {
	Page     int   `json:"page" validate:"min=1,max=1000000"`
	Limit    int   `json:"limit" validate:"min=1,max=100"`
	Archived *bool `json:"archived"`
}

type BookmarkResp struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description"`
	WebsiteURL   string     `json:"websiteURL"`
	Archived     bool       `json:"archived"`
	Pinned       bool       `json:"pinned"`
	VisitedAt    *time.Time `json:"visitedAt"`
	VisitedCount int64      `json:"visitedCount"`
	Tags         []TagResp  `json:"tags"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type TagResp struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type TagCountResp struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Count int64  `json:"count"`
}

type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type BookmarkListResp struct {
	Data []BookmarkResp `json:"data"`
	Meta PageMeta       `json:"meta"`
}

type TagCountListResp struct {
	Data []TagCountResp `json:"data"`
	Meta PageMeta       `json:"meta"`
}
