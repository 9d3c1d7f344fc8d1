package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/matt-g-everett/ledtween/stream"
)

// StatusSource reports the tweens currently scheduled.
type StatusSource interface {
	Status() []stream.TweenStatus
	Pause()
	Resume()
}

// Api serves the client pages and a JSON view of the running tweens.
type Api struct {
	source    StatusSource
	staticDir string
	log       zerolog.Logger
}

// NewApi creates an instance of an Api.
func NewApi(source StatusSource, staticDir string, logger zerolog.Logger) *Api {
	a := new(Api)
	a.source = source
	a.staticDir = staticDir
	a.log = logger
	return a
}

// Handler routes /tweens, /pause, /resume and the static client.
func (a *Api) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/tweens", a.handleTweens)
	mux.HandleFunc("/pause", a.handleControl(a.source.Pause))
	mux.HandleFunc("/resume", a.handleControl(a.source.Resume))
	mux.Handle("/", http.FileServer(http.Dir(a.staticDir)))
	return mux
}

func (a *Api) handleTweens(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.source.Status()); err != nil {
		a.log.Debug().Err(err).Msg("write status")
	}
}

func (a *Api) handleControl(action func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		action()
		w.WriteHeader(http.StatusNoContent)
	}
}

// Serve listens on addr until ctx is done.
func (a *Api) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: a.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	a.log.Info().Str("addr", addr).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
