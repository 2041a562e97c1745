package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/davrosz/actionhttp/internal/auth"
	"github.com/davrosz/actionhttp/internal/config"
	"github.com/davrosz/actionhttp/internal/echo"
	"github.com/davrosz/actionhttp/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "path to echod toml config")
	addr := flag.String("addr", "", "listen address override")
	flag.Parse()

	cfg := config.EchoConfig{App: "echod", Addr: ":9400"}
	if *configPath != "" {
		loaded, err := config.LoadEchoConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "echod: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	logger := observability.InitLogger(cfg.App)
	srv := echo.NewServer(cfg.App, cfg.CorsOrigins)
	if cfg.Token != "" {
		srv.WithValidator(auth.StaticToken{Token: cfg.Token})
	}

	logger.Info().Str("addr", cfg.Addr).Msg("echod listening")
	if err := srv.Run(cfg.Addr); err != nil {
		fmt.Fprintf(os.Stderr, "echod: %v\n", err)
		os.Exit(1)
	}
}
