package seed

import (
	"bytes"
	"context"
	_ "embed"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/models"
)

//go:embed bookmarks.yaml
var defaultData []byte

type (
	Entry struct {
		Title       string   `yaml:"title"`
		Description string   `yaml:"description"`
		WebsiteURL  string   `yaml:"websiteURL"`
		Tags        []string `yaml:"tags"`
	}

	Creator interface {
		Create(ctx context.Context, req models.BookmarkReq) (*models.BookmarkResp, error)
	}
)

// Default returns the bundled documentation bookmarks.
func Default() ([]Entry, error) {
	return Load(bytes.NewReader(defaultData))
}

// Open reads entries from path, or the bundled set when path is empty.
func Open(path string) ([]Entry, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open seed file")
	}
	defer f.Close()
	return Load(f)
}

func Load(r io.Reader) ([]Entry, error) {
	entries := make([]Entry, 0)
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		return nil, errors.Wrap(err, "decode seed data")
	}
	return entries, nil
}

// Run creates every entry through c and stops at the first failure. It
// returns how many were created.
func Run(ctx context.Context, c Creator, entries []Entry, l *zap.SugaredLogger) (int, error) {
	for i, e := range entries {
		tags := e.Tags
		req := models.BookmarkReq{
			Title:      e.Title,
			WebsiteURL: e.WebsiteURL,
			Tags:       &tags,
		}
		if e.Description != "" {
			description := e.Description
			req.Description = &description
		}

		b, err := c.Create(ctx, req)
		if err != nil {
			return i, errors.Wrapf(err, "seed entry %d (%s)", i, e.Title)
		}
		l.Debugw("seeded bookmark", "id", b.ID, "title", b.Title)
	}
	return len(entries), nil
}
