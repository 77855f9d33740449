package handlers

import (
	"encoding/json"
	"net/http"

	"thumbsmith/internal/infra"
	"thumbsmith/internal/session"
)

// App is the handler container: configuration, logging, and the per-session
// pipeline store. There is no further state; nothing outlives the process.
type App struct {
	Config   *infra.Config
	Logger   infra.Logger
	Sessions *session.Store
}

func NewApp(cfg *infra.Config, logger infra.Logger, sessions *session.Store) *App {
	return &App{Config: cfg, Logger: logger, Sessions: sessions}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]string{"error": code, "message": message})
}
