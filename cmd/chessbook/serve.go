package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"chessbook/internal/config"
	"chessbook/internal/server"
)

func serveCmd() *cobra.Command {
	var listen string
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the annotation HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(listen, port)
		},
	}
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Address to listen on (overrides config)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (overrides config)")
	return cmd
}

func runServe(listen string, port int) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig("chessbook.yaml")
	if err != nil {
		return err
	}
	if listen != "" {
		cfg.Server.Listen = listen
	}
	if port != 0 {
		cfg.Server.Port = port
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	srv, err := server.New(db, logger, &server.Config{
		Listen:    cfg.Server.Listen,
		Port:      cfg.Server.Port,
		StaticDir: cfg.Server.StaticDir,
	})
	if err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errc:
		return err
	case <-stop:
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
