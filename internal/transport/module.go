package transport

import (
	"go.uber.org/fx"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/db"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/service"
)

var (
	Module = fx.Provide(
		func(s *service.Bookmarks) BookmarkService { return s },
		func(p *db.Pinger) HealthChecker { return p },
		NewHTTPServer,
	)
)
