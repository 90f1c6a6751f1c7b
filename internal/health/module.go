package health

import (
	"go.uber.org/fx"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/db"
)

var (
	Module = fx.Provide(
		func(p *db.Pinger) Pinger { return p },
		NewGRPCServer,
	)
)
