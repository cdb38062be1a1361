package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kibria30/Mini-Gomoku/internal/config"
	"github.com/kibria30/Mini-Gomoku/pkg/api"
)

func main() {
	configPath := flag.String("config", "", "path to yaml config (defaults apply when empty)")
	listen := flag.String("listen", "", "listen address override")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[gomokud] %v", err)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := api.NewServer(cfg)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("[gomokud] %v", err)
	}
}
