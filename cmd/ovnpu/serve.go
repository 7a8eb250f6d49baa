package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/ovinfer/openvino-purego/internal/server"
	"github.com/ovinfer/openvino-purego/openvino"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		poolSize    int64
		rateLimit   float64
		readTimeout time.Duration
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve a model over HTTP",
		Flags: append(commonRuntimeFlags(),
			modelFlag(),
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.Int64Flag{
				Name:        "pool-size",
				Usage:       "number of concurrent inference requests",
				Value:       4,
				Destination: &poolSize,
			},
			&cli.FloatFlag{
				Name:        "rate-limit",
				Usage:       "max inference requests per second (0 disables)",
				Destination: &rateLimit,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read header timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()
			applyRuntimeConfig(cmd, cfg)
			applyServeConfig(cmd, cfg, &addr, &poolSize, &rateLimit)
			log := newLogger(logLevel, logFormat)
			slog.SetDefault(log)

			engine, err := server.NewPluginEngine(server.PluginEngineConfig{
				LibraryPath: libraryPath,
				Device:      device,
				ModelPath:   modelPath,
				PoolSize:    int(poolSize),
				Properties:  pluginProperties(),
				Hooks:       []openvino.Hook{openvino.NewSlogHook(log)},
			})
			if err != nil {
				return err
			}
			defer engine.Close()

			srv := server.NewServer(engine, server.Config{
				Logger:    log,
				RateLimit: rateLimit,
			})

			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			srv.Register(e)

			log.Info("starting server",
				"address", addr,
				"device", device,
				"model", modelPath)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(s *http.Server) error {
					s.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
