// Package server wires the cipher handlers into a gin engine and runs it.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"playfair-backend/config"
	"playfair-backend/handlers"
)

const requestIDHeader = "X-Request-ID"

type Server struct {
	cfg    *config.Config
	log    *logrus.Logger
	router *gin.Engine
}

func New(cfg *config.Config, log *logrus.Logger) *Server {
	s := &Server{
		cfg: cfg,
		log: log,
	}
	s.router = s.newRouter()
	return s
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) newRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), requestLogger(s.log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = s.cfg.Server.AllowOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	corsConfig.ExposeHeaders = []string{requestIDHeader, "X-Cipher-Pairs", "X-Cipher-Padding"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	cipherHandler := handlers.NewCipherHandler(s.log, s.cfg.Cipher)

	// API Routes
	api := router.Group("/api/v1")
	{
		api.GET("/health", cipherHandler.HealthCheck)

		cipher := api.Group("/cipher")
		{
			cipher.POST("/encrypt", cipherHandler.EncryptMessage)
			cipher.POST("/decrypt", cipherHandler.DecryptMessage)
			cipher.POST("/square", cipherHandler.KeySquare)
		}
	}

	return router
}

// Run serves on the configured port until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener. The listener is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Infof("Server starting on %s", ln.Addr())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()

		s.log.Info("Server shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(handlers.RequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			handlers.RequestIDKey: c.GetString(handlers.RequestIDKey),
			"method":              c.Request.Method,
			"path":                c.Request.URL.Path,
			"status":              c.Writer.Status(),
			"latency":             time.Since(start).String(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Error("request failed")
			return
		}
		entry.Info("request served")
	}
}
