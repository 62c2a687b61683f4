package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vidzel/vidzel/pkg/authenticator"
	"github.com/vidzel/vidzel/pkg/authenticator/authn"
	"github.com/vidzel/vidzel/pkg/blob"
	"github.com/vidzel/vidzel/pkg/config"
	"github.com/vidzel/vidzel/pkg/metrics"
	"github.com/vidzel/vidzel/pkg/server/middleware"
	"github.com/vidzel/vidzel/pkg/server/store"
	gormstore "github.com/vidzel/vidzel/pkg/server/store/gorm"
	"github.com/vidzel/vidzel/pkg/token"
)

// Stores groups every persistence interface the endpoints use
type Stores struct {
	Accounts      store.AccountsStore
	Profiles      store.ProfilesStore
	Projects      store.ProjectsStore
	Workspaces    store.WorkspacesStore
	Applications  store.ApplicationsStore
	Invitations   store.InvitationsStore
	Tasks         store.TasksStore
	Resources     store.ResourcesStore
	Messages      store.MessagesStore
	Submissions   store.SubmissionsStore
	Notifications store.NotificationsStore
	Health        store.HealthStore
}

// NewGormStores builds the PostgreSQL backed stores
func NewGormStores(db *gorm.DB) Stores {
	return Stores{
		Accounts:      gormstore.NewAccountsStore(db),
		Profiles:      gormstore.NewProfilesStore(db),
		Projects:      gormstore.NewProjectsStore(db),
		Workspaces:    gormstore.NewWorkspacesStore(db),
		Applications:  gormstore.NewApplicationsStore(db),
		Invitations:   gormstore.NewInvitationsStore(db),
		Tasks:         gormstore.NewTasksStore(db),
		Resources:     gormstore.NewResourcesStore(db),
		Messages:      gormstore.NewMessagesStore(db),
		Submissions:   gormstore.NewSubmissionsStore(db),
		Notifications: gormstore.NewNotificationsStore(db),
		Health:        gormstore.NewHealthStore(db),
	}
}

// Options configures NewServer. Zero values fall back to defaults.
type Options struct {
	Config  *config.VidzelConfig
	Stores  Stores
	Blob    blob.Store
	Signer  *token.Signer
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Version string
	Host    string
	Port    string
}

type Server struct {
	Config         *config.VidzelConfig
	Stores         Stores
	Blob           blob.Store
	Signer         *token.Signer
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	Authenticators *authenticator.Registry
	AuthMiddleware *middleware.Authenticator
	AuthLimiter    *middleware.RateLimiter
	Router         *mux.Router
	Version        string
	srv            *http.Server
	done           chan struct{}
	closeOnce      sync.Once
	closeErr       error
}

func NewServer(opts Options) *Server {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Get()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	registry := authenticator.NewRegistry()
	if opts.Stores.Accounts != nil {
		registry.Register(authn.NewPasswordAuthenticator(opts.Stores.Accounts, store.ErrAccountNotFound))
		_ = registry.Enable("authn")
	}

	router := mux.NewRouter().UseEncodedPath()
	router.Use(middleware.Instrument(m))

	s := &Server{
		Config:         cfg,
		Stores:         opts.Stores,
		Blob:           opts.Blob,
		Signer:         opts.Signer,
		Logger:         logger,
		Metrics:        m,
		Authenticators: registry,
		AuthMiddleware: middleware.NewAuthenticator(opts.Signer, cfg.IsTrustedProxy),
		AuthLimiter:    middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst, cfg.IsTrustedProxy, logger),
		Router:         router,
		Version:        opts.Version,
		done:           make(chan struct{}),
	}

	s.srv = &http.Server{
		Handler:      handlers.LoggingHandler(os.Stdout, s.Handler()),
		Addr:         opts.Host + ":" + opts.Port,
		WriteTimeout: 30 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	return s
}

// Handler is the router wrapped in the outer middleware: request ids, panic
// recovery and CORS. The access log is added by NewServer.
func (s *Server) Handler() http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins(s.Config.CORSAllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", middleware.RequestIDHeader}),
		handlers.ExposedHeaders([]string{middleware.RequestIDHeader}),
	)
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(zap.NewStdLog(s.Logger)),
		handlers.PrintRecoveryStack(true),
	)
	return middleware.RequestID(recovery(cors(s.Router)))
}

// Start serves until Shutdown is called. If the listener fails, the server
// is closed before the error is returned.
func (s *Server) Start() error {
	s.Logger.Info("starting server", zap.String("addr", s.srv.Addr))
	go s.sweepLimiter()
	err := s.srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		_ = s.Close()
	}
	return err
}

// Shutdown drains in-flight requests and closes the server
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.srv.Shutdown(ctx)
	if cerr := s.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// Close stops the limiter sweep and closes the blob store. Safe to call
// more than once.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		if s.Blob != nil {
			s.closeErr = s.Blob.Close()
		}
	})
	return s.closeErr
}

func (s *Server) sweepLimiter() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			s.AuthLimiter.Sweep(now)
		case <-s.done:
			return
		}
	}
}
