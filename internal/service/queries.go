package service

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/db"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/models"
)

var listOrder = map[string]string{
	models.SortRecentlyAdded:   "pinned DESC, created_at DESC, id DESC",
	models.SortRecentlyVisited: "pinned DESC, visited_at IS NULL, visited_at DESC, created_at DESC, id DESC",
	models.SortMostVisited:     "pinned DESC, visited_count DESC, created_at DESC, id DESC",
}

type tagUsageRow struct {
	ID         string
	Title      string
	UsageCount int64
}

func (s *Bookmarks) List(ctx context.Context, req models.BookmarkListReq) (*models.BookmarkListResp, error) {
	req.Page, req.Limit = pageDefaults(req.Page, req.Limit)
	if err := s.check(req); err != nil {
		return nil, err
	}

	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = models.SortRecentlyAdded
	}

	where, args, err := listFilter(archivedOrDefault(req.Archived), req.Search).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build sql")
	}

	tx := s.db.WithContext(ctx)

	var total int64
	if res := tx.Model(&db.Bookmark{}).Where(where, args...).Count(&total); res.Error != nil {
		return nil, errors.Wrap(res.Error, "count bookmarks")
	}

	bookmarks := make([]db.Bookmark, 0, req.Limit)
	res := tx.Preload("Tags.Tag").
		Where(where, args...).
		Order(listOrder[sortBy]).
		Offset(pageOffset(req.Page, req.Limit)).
		Limit(req.Limit).
		Find(&bookmarks)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "find bookmarks")
	}

	data := make([]models.BookmarkResp, len(bookmarks))
	for i := range bookmarks {
		data[i] = *toBookmarkResp(&bookmarks[i])
	}

	return &models.BookmarkListResp{
		Data: data,
		Meta: newPageMeta(total, req.Page, req.Limit),
	}, nil
}

// TagUsage ranks the tags carried by bookmarks in the given archive state by
// how many of those bookmarks carry them, ties broken by title.
func (s *Bookmarks) TagUsage(ctx context.Context, req models.TagUsageReq) (*models.TagCountListResp, error) {
	req.Page, req.Limit = pageDefaults(req.Page, req.Limit)
	if err := s.check(req); err != nil {
		return nil, err
	}

	archived := archivedOrDefault(req.Archived)
	tx := s.db.WithContext(ctx)

	var matching int64
	if res := tx.Model(&db.Bookmark{}).Where("archived = ?", archived).Count(&matching); res.Error != nil {
		return nil, errors.Wrap(res.Error, "count bookmarks")
	}
	if matching == 0 {
		return &models.TagCountListResp{
			Data: []models.TagCountResp{},
			Meta: newPageMeta(0, req.Page, req.Limit),
		}, nil
	}

	sql, args, err := squirrel.
		Select("COUNT(DISTINCT bt.tag_id)").From("bookmark_tags bt").
		Join("bookmarks b ON b.id = bt.bookmark_id").
		Where(squirrel.Eq{"b.archived": archived}).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build sql")
	}
	var total int64
	if res := tx.Raw(sql, args...).Scan(&total); res.Error != nil {
		return nil, errors.Wrap(res.Error, "count tags")
	}

	sql, args, err = squirrel.
		Select("t.id", "t.title", "COUNT(bt.bookmark_id) AS usage_count").From("bookmark_tags bt").
		Join("bookmarks b ON b.id = bt.bookmark_id").
		Join("tags t ON t.id = bt.tag_id").
		Where(squirrel.Eq{"b.archived": archived}).
		GroupBy("t.id", "t.title").
		OrderBy("usage_count DESC", titleOrder(tx)).
		Limit(uint64(req.Limit)).
		Offset(uint64(pageOffset(req.Page, req.Limit))).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build sql")
	}

	rows := make([]tagUsageRow, 0, req.Limit)
	if res := tx.Raw(sql, args...).Scan(&rows); res.Error != nil {
		return nil, errors.Wrap(res.Error, "scan tag usage")
	}

	data := make([]models.TagCountResp, len(rows))
	for i := range rows {
		data[i] = models.TagCountResp{
			ID:    rows[i].ID,
			Title: rows[i].Title,
			Count: rows[i].UsageCount,
		}
	}

	return &models.TagCountListResp{
		Data: data,
		Meta: newPageMeta(total, req.Page, req.Limit),
	}, nil
}

func listFilter(archived bool, search string) squirrel.Sqlizer {
	filter := squirrel.And{squirrel.Eq{"archived": archived}}
	if term := strings.TrimSpace(search); term != "" {
		filter = append(filter, squirrel.Expr(
			`LOWER(title) LIKE ? ESCAPE '\'`,
			"%"+escapeLike(strings.ToLower(term))+"%",
		))
	}
	return filter
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// titleOrder sorts titles byte-wise. Postgres would otherwise use the
// database locale collation; sqlite's default BINARY collation already is.
func titleOrder(tx *gorm.DB) string {
	if tx.Dialector.Name() == "postgres" {
		return `t.title COLLATE "C" ASC`
	}
	return "t.title ASC"
}
