// Package server is an HTTP REST server that runs sim sessions. A client
// creates a session, gets a token for it, and then sends console lines to it
// one at a time.
//
// Routes, all under /api/v1:
//
//	GET    /info                    - version info on the server and scopecmd.
//	GET    /commands                - the catalog of accepted commands.
//	POST   /sessions                - start a session, optionally from a scenario.
//	GET    /sessions/{id}           - get the session state (token required).
//	DELETE /sessions/{id}           - end the session (token required).
//	POST   /sessions/{id}/commands  - run a console line (token required).
//	GET    /sessions/{id}/commands  - get the lines run so far (token required).
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tracon/scopecmd/internal/log"
	"github.com/tracon/scopecmd/server/api"
	"github.com/tracon/scopecmd/server/dao"
	"github.com/tracon/scopecmd/server/middle"
	"github.com/tracon/scopecmd/server/scopes"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout is how long in-flight requests are given to finish once the
// server is asked to stop.
const ShutdownTimeout = 10 * time.Second

// Server is an HTTP REST server that provides sim sessions. The zero-value of
// a Server should not be used directly; call New() to get one ready for use.
type Server struct {
	router chi.Router
	db     dao.Store
	cfg    Config
	log    *log.Logger
}

// New creates a new Server from cfg. Unset values in cfg are given their
// defaults. The database is connected to immediately.
func New(cfg Config, logger *log.Logger) (*Server, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	db, err := cfg.DB.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect DB: %w", err)
	}

	a := api.API{
		Backend:     scopes.New(db, logger),
		UnauthDelay: cfg.UnauthDelay(),
		Secret:      cfg.TokenSecret,
		Log:         logger,
	}
	reqAuth := middle.RequireAuth(db.Sessions(), cfg.TokenSecret, cfg.UnauthDelay())

	return &Server{
		router: newRouter(a, reqAuth),
		db:     db,
		cfg:    cfg,
		log:    logger,
	}, nil
}

// ServeHTTP routes req to the API.
func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.router.ServeHTTP(w, req)
}

// ServeUntil listens on the configured address and serves requests until ctx
// is done, then shuts down gracefully. The returned error is nil if the server
// stopped because ctx was done.
func (s *Server) ServeUntil(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:              s.cfg.ListenAddress,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("listening", "address", s.cfg.ListenAddress)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		s.log.Info("shutting down")

		shutCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutCtx)
	})

	return g.Wait()
}

// Close releases the database.
func (s *Server) Close() error {
	return s.db.Close()
}
