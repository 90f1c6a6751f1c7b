package service

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/db"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/models"
)

type Bookmarks struct {
	db       *gorm.DB
	logger   *zap.SugaredLogger
	validate *validator.Validate
}

func NewBookmarks(db *gorm.DB, l *zap.SugaredLogger) *Bookmarks {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &Bookmarks{
		db:       db,
		logger:   l,
		validate: v,
	}
}

func (s *Bookmarks) Create(ctx context.Context, req models.BookmarkReq) (*models.BookmarkResp, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}

	model := db.Bookmark{
		Title:       req.Title,
		Description: nullableDescription(req.Description),
		WebsiteURL:  req.WebsiteURL,
	}

	var out db.Bookmark
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if res := tx.Omit(clause.Associations).Create(&model); res.Error != nil {
			return errors.Wrap(res.Error, "insert bookmark")
		}
		if req.Tags != nil {
			if err := attachTags(tx, model.ID, NormalizeTags(*req.Tags)); err != nil {
				return err
			}
		}
		return reload(tx, model.ID, &out)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("bookmark created", "id", out.ID)
	return toBookmarkResp(&out), nil
}

func (s *Bookmarks) Update(ctx context.Context, id string, req models.BookmarkReq) (*models.BookmarkResp, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}

	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	var out db.Bookmark
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(existing).Updates(map[string]interface{}{
			"title":       req.Title,
			"description": nullableDescription(req.Description),
			"website_url": req.WebsiteURL,
		})
		if res.Error != nil {
			return errors.Wrap(res.Error, "update bookmark")
		}
		if req.Tags != nil {
			if res := tx.Where("bookmark_id = ?", id).Delete(&db.BookmarkTag{}); res.Error != nil {
				return errors.Wrap(res.Error, "remove bookmark tags")
			}
			if err := attachTags(tx, id, NormalizeTags(*req.Tags)); err != nil {
				return err
			}
		}
		return reload(tx, id, &out)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("bookmark updated", "id", id)
	return toBookmarkResp(&out), nil
}

func (s *Bookmarks) Archive(ctx context.Context, id string) (*models.BookmarkResp, error) {
	return s.patch(ctx, id, "bookmark archived", map[string]interface{}{"archived": true})
}

func (s *Bookmarks) Unarchive(ctx context.Context, id string) (*models.BookmarkResp, error) {
	return s.patch(ctx, id, "bookmark unarchived", map[string]interface{}{"archived": false})
}

func (s *Bookmarks) Pin(ctx context.Context, id string) (*models.BookmarkResp, error) {
	return s.patch(ctx, id, "bookmark pinned", map[string]interface{}{"pinned": true})
}

func (s *Bookmarks) Unpin(ctx context.Context, id string) (*models.BookmarkResp, error) {
	return s.patch(ctx, id, "bookmark unpinned", map[string]interface{}{"pinned": false})
}

// Visit stamps visited_at with the current time and bumps visited_count by one.
func (s *Bookmarks) Visit(ctx context.Context, id string) (*models.BookmarkResp, error) {
	return s.patch(ctx, id, "bookmark visited", map[string]interface{}{
		"visited_at":    time.Now(),
		"visited_count": gorm.Expr("visited_count + ?", 1),
	})
}

func (s *Bookmarks) Delete(ctx context.Context, id string) error {
	existing, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !existing.Archived {
		return errors.Wrapf(ErrNotArchived, "bookmark %s", id)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// sqlite runs without foreign key enforcement, so links go first
		if res := tx.Where("bookmark_id = ?", id).Delete(&db.BookmarkTag{}); res.Error != nil {
			return errors.Wrap(res.Error, "remove bookmark tags")
		}
		if res := tx.Delete(existing); res.Error != nil {
			return errors.Wrap(res.Error, "delete bookmark")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Infow("bookmark deleted", "id", id)
	return nil
}

func (s *Bookmarks) patch(ctx context.Context, id, event string, fields map[string]interface{}) (*models.BookmarkResp, error) {
	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	tx := s.db.WithContext(ctx)
	if res := tx.Model(existing).Updates(fields); res.Error != nil {
		return nil, errors.Wrap(res.Error, "update bookmark")
	}

	var out db.Bookmark
	if err := reload(tx, id, &out); err != nil {
		return nil, err
	}

	s.logger.Infow(event, "id", id)
	return toBookmarkResp(&out), nil
}

func (s *Bookmarks) find(ctx context.Context, id string) (*db.Bookmark, error) {
	model := db.Bookmark{}
	res := s.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "bookmark %s", id)
		}
		return nil, errors.Wrap(res.Error, "find bookmark")
	}
	return &model, nil
}

func (s *Bookmarks) check(v interface{}) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate")
	}
	details := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		details[i] = describe(fe)
	}
	return &ValidationError{Details: details}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fe.Field() + " must be at most " + fe.Param()
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "url":
		return fe.Field() + " must be a valid URL"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}

// attachTags inserts any missing tags and links all of them to the bookmark.
func attachTags(tx *gorm.DB, bookmarkID string, titles []string) error {
	if len(titles) == 0 {
		return nil
	}

	newTags := make([]db.Tag, len(titles))
	for i := range titles {
		newTags[i] = db.Tag{Title: titles[i]}
	}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&newTags)
	if res.Error != nil {
		return errors.Wrap(res.Error, "upsert tags")
	}

	tags := make([]db.Tag, 0, len(titles))
	if res := tx.Where("title IN ?", titles).Find(&tags); res.Error != nil {
		return errors.Wrap(res.Error, "resolve tags")
	}

	links := make([]db.BookmarkTag, len(tags))
	for i := range tags {
		links[i] = db.BookmarkTag{
			BookmarkID: bookmarkID,
			TagID:      tags[i].ID,
		}
	}
	res = tx.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(&links)
	if res.Error != nil {
		return errors.Wrap(res.Error, "link tags")
	}
	return nil
}

func reload(tx *gorm.DB, id string, out *db.Bookmark) error {
	if res := tx.Preload("Tags.Tag").Where("id = ?", id).First(out); res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return errors.Wrapf(ErrNotFound, "bookmark %s", id)
		}
		return errors.Wrap(res.Error, "reload bookmark")
	}
	return nil
}

func nullableDescription(d *string) *string {
	if d == nil || strings.TrimSpace(*d) == "" {
		return nil
	}
	return d
}

func toBookmarkResp(m *db.Bookmark) *models.BookmarkResp {
	tags := make([]models.TagResp, 0, len(m.Tags))
	for i := range m.Tags {
		t := m.Tags[i].Tag
		tags = append(tags, models.TagResp{
			ID:        t.ID,
			Title:     t.Title,
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		})
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Title < tags[j].Title })

	return &models.BookmarkResp{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		WebsiteURL:   m.WebsiteURL,
		Archived:     m.Archived,
		Pinned:       m.Pinned,
		VisitedAt:    m.VisitedAt,
		VisitedCount: m.VisitedCount,
		Tags:         tags,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
