package test_functional

import (
	"context"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/db"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/models"
)

func FlushDB() {
	for _, model := range []interface{}{&db.BookmarkTag{}, &db.Bookmark{}, &db.Tag{}} {
		if err := DBConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			panic(err)
		}
	}
}

func endpoint(path string) string {
	u := AppBaseURL
	u.Path = path
	return u.String()
}

func newRequest(t *testing.T) *resty.Request {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	t.Cleanup(cancel)

	return resty.New().
		R().
		SetHeader("Content-Type", "application/json").
		SetContext(ctx)
}

func createBookmark(t *testing.T, body string) *models.BookmarkResp {
	t.Helper()

	resp, err := newRequest(t).
		SetResult(&models.BookmarkResp{}).
		SetBody(body).
		Post(endpoint("/bookmarks"))
	require.NoError(t, err)
	require.Equal(t, 201, resp.StatusCode(), resp.String())

	got, ok := resp.Result().(*models.BookmarkResp)
	require.True(t, ok)
	return got
}
