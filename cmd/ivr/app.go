package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"bitbucket.org/sotavant/clinic-ivr/internal/dialogue"
	"bitbucket.org/sotavant/clinic-ivr/internal/logger"
	"bitbucket.org/sotavant/clinic-ivr/internal/registry"
)

type app struct {
	dialogue *dialogue.Handler
}

func newApp(v registry.Validator, cfg dialogue.Config) *app {
	return &app{dialogue: dialogue.New(v, cfg)}
}

func (a *app) router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logger.RequestLogger)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	a.dialogue.Routes(r)

	return r
}
