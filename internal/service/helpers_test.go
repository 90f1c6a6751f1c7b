package service

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/config"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/db"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/models"
)

func newTestService(t *testing.T) (*Bookmarks, *gorm.DB) {
	t.Helper()

	lc := fxtest.NewLifecycle(t)
	cfg := &config.Config{DBDriver: config.DriverSQLite, DBName: ":memory:", LogLevel: "error"}
	gdb, err := db.NewGormClient(lc, cfg, zap.NewNop().Sugar())
	require.NoError(t, err)
	lc.RequireStart()
	t.Cleanup(func() { lc.RequireStop() })

	return NewBookmarks(gdb, zap.NewNop().Sugar()), gdb
}

func mustCreate(t *testing.T, s *Bookmarks, title string, tags ...string) *models.BookmarkResp {
	t.Helper()

	req := models.BookmarkReq{
		Title:      title,
		WebsiteURL: "https://example.com/" + url.PathEscape(title),
	}
	if tags != nil {
		req.Tags = &tags
	}
	b, err := s.Create(context.Background(), req)
	require.NoError(t, err)
	return b
}

func setCreatedAt(t *testing.T, gdb *gorm.DB, id string, at time.Time) {
	t.Helper()
	require.NoError(t, gdb.Model(&db.Bookmark{}).Where("id = ?", id).UpdateColumn("created_at", at).Error)
}

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

func tagTitles(b *models.BookmarkResp) []string {
	titles := make([]string, len(b.Tags))
	for i := range b.Tags {
		titles[i] = b.Tags[i].Title
	}
	return titles
}
