package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/stake-arcade/internal/core"
	"github.com/vovakirdan/stake-arcade/internal/registry"
	"github.com/vovakirdan/stake-arcade/internal/round"
	"github.com/vovakirdan/stake-arcade/internal/storage"
)

// Config holds configuration for the web server.
type Config struct {
	Address  string // Address to listen on (e.g., ":8080")
	TickRate int    // Frames per second per session
	Seed     int64  // 0 seeds every session from the clock
	ScreenW  int    // Width of the text frame sent with snapshots, 0 disables it
	ScreenH  int
	Logger   *log.Logger
}

// DefaultConfig returns sensible defaults for the web server.
func DefaultConfig() Config {
	return Config{
		Address:  ":8080",
		TickRate: 60,
		ScreenW:  80,
		ScreenH:  24,
	}
}

// Factory creates a game by ID.
type Factory func(id string) (registry.Game, error)

// Server serves the game API and the per-session WebSocket endpoint.
type Server struct {
	config   Config
	store    *storage.Store
	factory  Factory
	logger   *log.Logger
	upgrader websocket.Upgrader

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer creates a web server. store may be nil, in which case best
// scores only live for a session and the scores API reports nothing.
func NewServer(cfg Config, store *storage.Store) *Server {
	defaults := DefaultConfig()
	if cfg.TickRate <= 0 {
		cfg.TickRate = defaults.TickRate
	}
	if cfg.Address == "" {
		cfg.Address = defaults.Address
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		config:  cfg,
		store:   store,
		factory: registry.Create,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetFactory replaces the game factory.
func (s *Server) SetFactory(f Factory) {
	s.factory = f
}

// Handler builds the HTTP routes.
func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	api := router.Group("/api")
	{
		api.GET("/games", s.listGames)
		api.GET("/scores/:game", s.topScores)
		api.GET("/stats", s.allStats)
		api.GET("/stats/:game", s.gameStats)
	}
	router.GET("/ws/:game", s.serveWS)

	return router
}

// ListenAndServe serves until the listener fails or Shutdown is called.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-s.ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		//nolint:errcheck // Shutdown errors surface through ListenAndServe
		srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("web server listening", "addr", s.config.Address)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.wg.Wait()
	return nil
}

// Shutdown closes every live session and stops the listener.
func (s *Server) Shutdown() {
	s.cancel()
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) listGames(c *gin.Context) {
	c.JSON(http.StatusOK, registry.List())
}

func (s *Server) topScores(c *gin.Context) {
	gameID := c.Param("game")
	if !registry.Exists(gameID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown game"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	if s.store == nil {
		c.JSON(http.StatusOK, []storage.ScoreEntry{})
		return
	}
	scores, err := s.store.TopScores(gameID, limit)
	if err != nil {
		s.logger.Error("top scores query failed", "game", gameID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "scores unavailable"})
		return
	}
	if scores == nil {
		scores = []storage.ScoreEntry{}
	}
	c.JSON(http.StatusOK, scores)
}

func (s *Server) gameStats(c *gin.Context) {
	gameID := c.Param("game")
	if !registry.Exists(gameID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown game"})
		return
	}
	if s.store == nil {
		c.JSON(http.StatusOK, storage.GameStats{GameID: gameID})
		return
	}
	stats, err := s.store.GetGameStats(gameID)
	if err != nil {
		s.logger.Error("stats query failed", "game", gameID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats unavailable"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) allStats(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusOK, map[string]*storage.GameStats{})
		return
	}
	stats, err := s.store.GetAllGamesStats()
	if err != nil {
		s.logger.Error("stats query failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats unavailable"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) serveWS(c *gin.Context) {
	gameID := c.Param("game")
	game, err := s.factory(gameID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	sess := s.newSession(conn, game, c.ClientIP())
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		sess.run(s.ctx)
		sess.logger.Info("session closed", "best", sess.runner.Snapshot().HighScore)
	}()
}

func (s *Server) newSession(conn *websocket.Conn, game registry.Game, remote string) *session {
	seed := s.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := s.logger.With("game", game.ID(), "remote", remote)

	sched := &frameScheduler{}
	opts := []round.Option{
		round.WithScheduler(sched),
		round.WithSeed(seed),
		round.WithLogger(logger.With("host", "web")),
	}
	if s.store != nil {
		opts = append(opts, round.WithStore(s.store))
	}

	sess := &session{
		conn:     conn,
		runner:   round.New(game, opts...),
		sched:    sched,
		interval: time.Second / time.Duration(s.config.TickRate),
		logger:   logger,
	}
	if s.config.ScreenW > 0 && s.config.ScreenH > 0 {
		sess.screen = core.NewScreen(s.config.ScreenW, s.config.ScreenH)
	}
	logger.Info("session opened")
	return sess
}
