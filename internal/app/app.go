package app

import (
	"go.uber.org/fx"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/config"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/db"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/health"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/logger"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/service"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/transport"
)

// Core is everything needed to talk to the bookmark store.
var Core = fx.Options(
	config.Module,
	logger.Module,
	db.Module,
	service.Module,
)

// Server is the full HTTP and GRPC service.
var Server = fx.Options(
	Core,
	transport.Module,
	health.Module,
	fx.Invoke(func(*transport.HTTPServer, *health.Server) {}),
)
