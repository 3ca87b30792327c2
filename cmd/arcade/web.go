package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/stake-arcade/internal/platform/web"
	"github.com/vovakirdan/stake-arcade/internal/storage"
)

var (
	flagWebAddr string
	flagEnvFile string
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the arcade WebSocket server for browser play",
	Long: `Start an HTTP server that hosts the games over WebSocket.

Endpoints:
  GET /api/games           - Registered games
  GET /api/scores/:game    - Top scores (?limit=N)
  GET /api/stats/:game     - Round statistics
  GET /ws/:game            - Play session

A session receives {"type":"snapshot",...} after every tick and accepts:
  {"type":"start"}  {"type":"stop"}  {"type":"key","key":"ArrowLeft","pressed":true}

Settings are read from the environment (and a .env file) unless the
matching flag is given: ARCADE_WEB_ADDR, ARCADE_WEB_TICK_RATE,
ARCADE_WEB_SEED, ARCADE_DB, GIN_MODE.

Examples:
  arcade web
  arcade web --addr :9000 --fps 30
  arcade web --env-file ./deploy.env`,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
	webCmd.Flags().StringVar(&flagEnvFile, "env-file", ".env", "Optional .env file with server settings")
}

func runWeb(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(os.Stderr, "arcade-web")
	if err != nil {
		return err
	}
	defer closeLog()

	env, err := web.LoadEnv(flagEnvFile)
	if err != nil {
		return err
	}
	gin.SetMode(env.GinMode)

	cfg := web.DefaultConfig()
	cfg.Address = pick(cmd, "addr", flagWebAddr, env.Addr)
	cfg.TickRate = flagFPS
	if !cmd.Flags().Changed("fps") && env.TickRate > 0 {
		cfg.TickRate = env.TickRate
	}
	cfg.Seed = flagSeed
	if !cmd.Flags().Changed("seed") && env.Seed != 0 {
		cfg.Seed = env.Seed
	}
	cfg.Logger = logger

	store, err := storage.Open(pick(cmd, "db", flagDBPath, env.DBPath))
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	server := web.NewServer(cfg, store)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		server.Shutdown()
	}()

	fmt.Printf("Arcade web server on %s (Ctrl+C to stop)\n", cfg.Address)

	return server.ListenAndServe()
}

// pick returns the flag value when it was set explicitly, otherwise the
// environment value when present, otherwise the flag default.
func pick(cmd *cobra.Command, flag, flagValue, envValue string) string {
	if cmd.Flags().Changed(flag) || envValue == "" {
		return flagValue
	}
	return envValue
}
