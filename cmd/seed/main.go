package main

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/app"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/config"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/seed"
	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/service"
)

func main() {
	fx.New(
		app.Core,
		fx.Invoke(run),
	).Run()
}

func run(lc fx.Lifecycle, sh fx.Shutdowner, cfg *config.Config, svc *service.Bookmarks, l *zap.SugaredLogger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			entries, err := seed.Open(cfg.SeedFile)
			if err != nil {
				return err
			}

			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				defer cancel()

				l.Info("Starting seed.")
				n, err := seed.Run(ctx, svc, entries, l)
				if err != nil {
					l.Errorw("seed failed", "created", n, "error", err)
					_ = sh.Shutdown(fx.ExitCode(1))
					return
				}
				l.Infow("Seed completed.", "bookmarks", n)
				_ = sh.Shutdown()
			}()
			return nil
		},
	})
}
