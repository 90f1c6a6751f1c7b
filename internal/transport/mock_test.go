package transport

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, req models.BookmarkListReq) (*models.BookmarkListResp, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookmarkListResp), args.Error(1)
}

func (m *MockService) TagUsage(ctx context.Context, req models.TagUsageReq) (*models.TagCountListResp, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TagCountListResp), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, req models.BookmarkReq) (*models.BookmarkResp, error) {
	args := m.Called(ctx, req)
	return bookmarkResult(args)
}

func (m *MockService) Update(ctx context.Context, id string, req models.BookmarkReq) (*models.BookmarkResp, error) {
	args := m.Called(ctx, id, req)
	return bookmarkResult(args)
}

func (m *MockService) Archive(ctx context.Context, id string) (*models.BookmarkResp, error) {
	return bookmarkResult(m.Called(ctx, id))
}

func (m *MockService) Unarchive(ctx context.Context, id string) (*models.BookmarkResp, error) {
	return bookmarkResult(m.Called(ctx, id))
}

func (m *MockService) Pin(ctx context.Context, id string) (*models.BookmarkResp, error) {
	return bookmarkResult(m.Called(ctx, id))
}

func (m *MockService) Unpin(ctx context.Context, id string) (*models.BookmarkResp, error) {
	return bookmarkResult(m.Called(ctx, id))
}

func (m *MockService) Visit(ctx context.Context, id string) (*models.BookmarkResp, error) {
	return bookmarkResult(m.Called(ctx, id))
}

func (m *MockService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func bookmarkResult(args mock.Arguments) (*models.BookmarkResp, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookmarkResp), args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
