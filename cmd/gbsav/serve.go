package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/samcharles93/gbsav/internal/api"
	"github.com/samcharles93/gbsav/internal/logger"
	"github.com/urfave/cli/v3"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		maxUpload   int64
		rateLimit   float64
		rateBurst   int64
		readTimeout time.Duration
		sessionTTL  time.Duration
		maxSessions int64
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the save editing HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.Int64Flag{
				Name:        "max-upload",
				Usage:       "maximum request body in bytes",
				Value:       api.DefaultMaxUpload,
				Destination: &maxUpload,
			},
			&cli.Float64Flag{
				Name:        "rate",
				Usage:       "mutating requests per second per client (0 disables limiting)",
				Value:       5,
				Destination: &rateLimit,
			},
			&cli.Int64Flag{
				Name:        "burst",
				Usage:       "rate limiter burst size",
				Value:       10,
				Destination: &rateBurst,
			},
			&cli.DurationFlag{
				Name:        "session-ttl",
				Usage:       "drop uploaded saves idle for this long",
				Value:       api.DefaultSessionTTL,
				Destination: &sessionTTL,
			},
			&cli.Int64Flag{
				Name:        "max-sessions",
				Usage:       "maximum uploaded saves held at once",
				Value:       api.DefaultMaxSessions,
				Destination: &maxSessions,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read header timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyServeConfig(cmd, cfg, &addr, &maxUpload, &rateLimit)

			server := api.NewServer(api.NewSessionStore(api.SessionLimits{
				TTL:         sessionTTL,
				MaxSessions: int(maxSessions),
			}), api.Config{
				MaxUploadBytes: maxUpload,
				RatePerSecond:  rateLimit,
				RateBurst:      int(rateBurst),
				Logger:         log,
			})
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)
			log.Info("starting server", "address", addr, "max_upload", maxUpload, "rate", rateLimit, "session_ttl", sessionTTL, "max_sessions", maxSessions)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
