package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Simplici0/goldcalc/internal/config"
	"github.com/Simplici0/goldcalc/internal/db"
	"github.com/Simplici0/goldcalc/internal/logger"
	"github.com/Simplici0/goldcalc/internal/metrics"
	"github.com/Simplici0/goldcalc/internal/migrations"
	"github.com/Simplici0/goldcalc/internal/money"
	"github.com/Simplici0/goldcalc/internal/pricing"
	"github.com/Simplici0/goldcalc/internal/rates"
	"github.com/Simplici0/goldcalc/internal/seed"
	"github.com/Simplici0/goldcalc/web"
)

type server struct {
	auth  *authService
	rates *rates.Store
	log   *slog.Logger
}

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
}

type loginViewData struct {
	baseViewData
}

func main() {
	cfg := config.Load()

	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	if err := checkAuthConfig(cfg.AdminEmail, cfg.SessionSecret); err != nil {
		return err
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats, err := seed.Run(ctx, database, seed.Config{AdminEmail: cfg.AdminEmail, AdminPassword: cfg.AdminPassword})
	if err != nil {
		return err
	}
	log.Info("seed applied", "inserts", stats.Inserts)

	srv := newServer(database, cfg.SessionSecret, log)
	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.routes(cfg.MetricsEnabled),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("graceful shutdown complete")
	return nil
}

func newServer(database *sql.DB, sessionSecret string, log *slog.Logger) *server {
	return &server{
		auth:  newAuthService(database, sessionSecret),
		rates: rates.NewStore(database),
		log:   log,
	}
}

func (s *server) routes(exposeMetrics bool) http.Handler {
	r := chi.NewRouter()
	r.Use(withRequestID)
	r.Use(s.withLogging)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	if static, err := staticHandler(web.FS, "static"); err != nil {
		s.log.Error("mount static assets", "err", err)
	} else {
		r.Handle("/static/*", http.StripPrefix("/static/", static))
	}

	r.Get("/healthz", s.handleHealth)
	if exposeMetrics {
		r.Handle("/metrics", metrics.Handler())
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/sell", http.StatusSeeOther)
	})
	r.Get("/sell", s.handleSellForm)
	r.Post("/sell", s.handleSellSubmit)
	r.Post("/sell/estimate.xlsx", s.handleSellEstimate)
	r.Get("/buy", s.handleBuyForm)
	r.Post("/buy", s.handleBuySubmit)
	r.Post("/buy/estimate.xlsx", s.handleBuyEstimate)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/grades", s.handleAPIGrades)
		r.Post("/sell", s.handleAPISell)
		r.Post("/buy", s.handleAPIBuy)
	})

	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLoginSubmit)
	r.Post("/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/admin/rates", s.handleAdminRatesForm)
		r.Post("/admin/rates", s.handleAdminRatesSubmit)
	})

	return r
}

func staticHandler(fsys fs.FS, dir string) (http.Handler, error) {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("open static dir %q: %w", dir, err)
	}
	return http.FileServer(http.FS(sub)), nil
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok","service":"goldcalc"}`))
}

func (s *server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if isAuthenticated(r, s.auth) {
		http.Redirect(w, r, "/admin/rates", http.StatusSeeOther)
		return
	}
	s.renderTemplate(w, "login.html", loginViewData{})
}

func (s *server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.auth.enabled() {
		http.Error(w, "admin login is not configured", http.StatusServiceUnavailable)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	valid, err := s.auth.validateCredentials(r.Context(), email, password)
	if err != nil {
		s.log.Error("validate credentials", "err", err)
		http.Error(w, "authentication error", http.StatusInternalServerError)
		return
	}
	if !valid {
		s.renderTemplateStatus(w, http.StatusUnauthorized, "login.html", loginViewData{baseViewData: baseViewData{ErrorMessage: "Invalid credentials. Please try again."}})
		return
	}

	s.auth.setSessionCookie(w, email)
	http.Redirect(w, r, "/admin/rates", http.StatusSeeOther)
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

var templateFuncs = template.FuncMap{
	"inr": money.FormatINR,
}

func (s *server) renderTemplate(w http.ResponseWriter, page string, data any) {
	s.renderTemplateStatus(w, http.StatusOK, page, data)
}

// renderTemplateStatus renders into a buffer first so a template error can
// still be reported as a 500.
func (s *server) renderTemplateStatus(w http.ResponseWriter, status int, page string, data any) {
	templates, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(
		web.FS,
		"templates/layout.html",
		"templates/"+page,
	)
	if err != nil {
		s.log.Error("parse template", "page", page, "err", err)
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		s.log.Error("render template", "page", page, "err", err)
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.auth.enabled() {
			http.Error(w, "admin login is not configured", http.StatusServiceUnavailable)
			return
		}
		if !isAuthenticated(r, s.auth) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isAuthenticated(r *http.Request, auth *authService) bool {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return false
	}

	_, ok := auth.verifySessionValue(cookie.Value)
	return ok
}

func taxPercent() string {
	return strconv.FormatFloat(pricing.TaxRate*100, 'f', -1, 64)
}
