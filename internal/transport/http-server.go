package transport

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/config"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/models"
)

type (
	BookmarkService interface {
		List(ctx context.Context, req models.BookmarkListReq) (*models.BookmarkListResp, error)
		TagUsage(ctx context.Context, req models.TagUsageReq) (*models.TagCountListResp, error)
		Create(ctx context.Context, req models.BookmarkReq) (*models.BookmarkResp, error)
		Update(ctx context.Context, id string, req models.BookmarkReq) (*models.BookmarkResp, error)
		Archive(ctx context.Context, id string) (*models.BookmarkResp, error)
		Unarchive(ctx context.Context, id string) (*models.BookmarkResp, error)
		Pin(ctx context.Context, id string) (*models.BookmarkResp, error)
		Unpin(ctx context.Context, id string) (*models.BookmarkResp, error)
		Visit(ctx context.Context, id string) (*models.BookmarkResp, error)
		Delete(ctx context.Context, id string) error
	}

	HealthChecker interface {
		Ping(ctx context.Context) error
	}

	HealthStatus struct {
		Status  string `json:"status"`
		Message string `json:"message,omitempty"`
	}

	HealthResp struct {
		Status string                  `json:"status"`
		Info   map[string]HealthStatus `json:"info,omitempty"`
		Error  map[string]HealthStatus `json:"error,omitempty"`
	}

	HTTPServer struct {
		app    *fiber.App
		svc    BookmarkService
		health HealthChecker
		logger *zap.SugaredLogger
		ln     net.Listener
	}
)

func NewHTTPServer(lc fx.Lifecycle, cfg *config.Config, svc BookmarkService, health HealthChecker, logger *zap.SugaredLogger) *HTTPServer {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          newErrorHandler(logger),
	})

	instance := HTTPServer{
		app:    app,
		svc:    svc,
		health: health,
		logger: logger,
	}

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(requestLogger(logger))

	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/health", instance.Health)

	bookmarkG := app.Group("/bookmarks")
	bookmarkG.Get("", instance.BookmarkList)
	bookmarkG.Get("/tag-filters", instance.TagFilters)
	bookmarkG.Post("", instance.BookmarkCreate)
	bookmarkG.Put("/:id", instance.BookmarkUpdate)
	bookmarkG.Patch("/:id/archive", instance.flag(svc.Archive))
	bookmarkG.Patch("/:id/unarchive", instance.flag(svc.Unarchive))
	bookmarkG.Patch("/:id/pin", instance.flag(svc.Pin))
	bookmarkG.Patch("/:id/unpin", instance.flag(svc.Unpin))
	bookmarkG.Patch("/:id/visit", instance.flag(svc.Visit))
	bookmarkG.Delete("/:id", instance.BookmarkDelete)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", cfg.HTTPAddr())
			if err != nil {
				return errors.Wrap(err, "listen http")
			}
			instance.ln = ln
			logger.Infow("Starting HTTP server.", "addr", ln.Addr().String())
			go func() {
				if err := app.Listener(ln); err != nil {
					logger.Errorw("HTTP server stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server.")
			return app.ShutdownWithContext(ctx)
		},
	})

	return &instance
}

func (s *HTTPServer) App() *fiber.App {
	return s.app
}

// Addr is the bound address once the server has started.
func (s *HTTPServer) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

func (s *HTTPServer) Health(c *fiber.Ctx) error {
	if err := s.health.Ping(c.UserContext()); err != nil {
		s.logger.Warnw("health check failed", "error", err)
		return c.Status(http.StatusServiceUnavailable).JSON(HealthResp{
			Status: "error",
			Error:  map[string]HealthStatus{"database": {Status: "down", Message: err.Error()}},
		})
	}
	return c.Status(http.StatusOK).JSON(HealthResp{
		Status: "ok",
		Info:   map[string]HealthStatus{"database": {Status: "up"}},
	})
}

func (s *HTTPServer) BookmarkList(c *fiber.Ctx) error {
	page, limit, err := pageParams(c)
	if err != nil {
		return handleInvalidRequest(c, err.Error())
	}

	resp, err := s.svc.List(c.UserContext(), models.BookmarkListReq{
		Page:     page,
		Limit:    limit,
		Search:   c.Query("search"),
		Archived: archivedParam(c),
		SortBy:   c.Query("sortBy"),
	})
	if err != nil {
		return handleServiceError(c, s.logger, err)
	}
	return c.Status(http.StatusOK).JSON(resp)
}

func (s *HTTPServer) TagFilters(c *fiber.Ctx) error {
	page, limit, err := pageParams(c)
	if err != nil {
		return handleInvalidRequest(c, err.Error())
	}

	resp, err := s.svc.TagUsage(c.UserContext(), models.TagUsageReq{
		Page:     page,
		Limit:    limit,
		Archived: archivedParam(c),
	})
	if err != nil {
		return handleServiceError(c, s.logger, err)
	}
	return c.Status(http.StatusOK).JSON(resp)
}

func (s *HTTPServer) BookmarkCreate(c *fiber.Ctx) error {
	req := models.BookmarkReq{}
	if err := c.BodyParser(&req); err != nil {
		return handleBodyError(c, err)
	}

	resp, err := s.svc.Create(c.UserContext(), req)
	if err != nil {
		return handleServiceError(c, s.logger, err)
	}
	return c.Status(http.StatusCreated).JSON(resp)
}

func (s *HTTPServer) BookmarkUpdate(c *fiber.Ctx) error {
	req := models.BookmarkReq{}
	if err := c.BodyParser(&req); err != nil {
		return handleBodyError(c, err)
	}

	resp, err := s.svc.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return handleServiceError(c, s.logger, err)
	}
	return c.Status(http.StatusOK).JSON(resp)
}

func (s *HTTPServer) BookmarkDelete(c *fiber.Ctx) error {
	if err := s.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return handleServiceError(c, s.logger, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (s *HTTPServer) flag(op func(ctx context.Context, id string) (*models.BookmarkResp, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp, err := op(c.UserContext(), c.Params("id"))
		if err != nil {
			return handleServiceError(c, s.logger, err)
		}
		return c.Status(http.StatusOK).JSON(resp)
	}
}

// pageParams reads page and limit; a missing value stays zero so the service
// applies its default.
func pageParams(c *fiber.Ctx) (int, int, error) {
	page, err := intQuery(c, "page")
	if err != nil {
		return 0, 0, err
	}
	limit, err := intQuery(c, "limit")
	if err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}

func intQuery(c *fiber.Ctx, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("query param '" + name + "' must be an integer")
	}
	return v, nil
}

// archivedParam is nil when the parameter is absent. Only "true" and "1"
// count as true.
func archivedParam(c *fiber.Ctx) *bool {
	raw, ok := c.Queries()["archived"]
	if !ok {
		return nil
	}
	v := strings.TrimSpace(strings.ToLower(raw))
	archived := v == "true" || v == "1"
	return &archived
}
