package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/zenscore/internal/logging"
	sc "github.com/dmitrijs2005/zenscore/internal/server/config"
	"github.com/dmitrijs2005/zenscore/internal/server/predictor"
	"github.com/dmitrijs2005/zenscore/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	address     string
	tlsCertFile string
	tlsKeyFile  string
	logger      logging.Logger
	users       *services.UserService
	handler     *Handler
}

func NewServer(cfg *sc.Config, l logging.Logger, us *services.UserService, p predictor.Predictor) *Server {
	logger := l.With("module", "http_server")
	return &Server{
		address:     cfg.EndpointAddr,
		tlsCertFile: cfg.TLSCertFile,
		tlsKeyFile:  cfg.TLSKeyFile,
		logger:      logger,
		users:       us,
		handler:     NewHandler(us, p, logger),
	}
}

// Router assembles the route tree. Registration and lookup are public;
// token issuance and scoring sit behind the auth gate.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(s.logger))

	r.Post("/api/users", s.handler.RegisterUser)
	r.Get("/api/users/{id}", s.handler.GetUser)

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(s.users, s.logger))
		r.Get("/api/token", s.handler.GetToken)
		r.Post("/FindZen", s.handler.Predict)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully. TLS is used
// when both a certificate and a key file are configured.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	var err error
	if s.tlsCertFile != "" && s.tlsKeyFile != "" {
		s.logger.Info(ctx, "Starting HTTPS server", "address", s.address)
		err = srv.ListenAndServeTLS(s.tlsCertFile, s.tlsKeyFile)
	} else {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		err = srv.ListenAndServe()
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
