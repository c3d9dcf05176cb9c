package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gorlowski/gosuscript/engine"
)

const requestIDHeader = "X-Request-ID"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for script evaluation",
	Long: `Start an HTTP server that evaluates scripts.

Endpoints:
  POST /eval      Evaluate {"script":"..."}, returns value, error and kind
  GET  /engine    Engine metadata
  GET  /health    Health check
  GET  /metrics   Prometheus metrics (path configurable)

Every request is evaluated in a fresh environment.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("listen", "", "Listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}

type evalRequest struct {
	Script string `json:"script"`
}

type evalResponse struct {
	Value      any    `json:"value"`
	Error      string `json:"error,omitempty"`
	Kind       string `json:"kind"`
	DurationMs int64  `json:"duration_ms"`
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("listen"); v != "" {
		a.cfg.Server.ListenAddress = v
	}

	srv := &http.Server{
		Addr:         a.cfg.Server.ListenAddress,
		Handler:      newServer(a),
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "address", srv.Addr, "engine", a.factory.EngineName())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newServer builds the HTTP handler for a.
func newServer(a *app) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/eval", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, a.cfg.Server.MaxScriptBytes)
		var req evalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "script too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Script == "" {
			http.Error(w, "script required", http.StatusBadRequest)
			return
		}

		start := time.Now()
		value, err := a.factory.NewEngine().Eval(r.Context(), req.Script, nil)
		resp := evalResponse{
			Value:      value,
			Kind:       engine.OutcomeOf(err),
			DurationMs: time.Since(start).Milliseconds(),
		}
		status := http.StatusOK
		if err != nil {
			resp.Error = err.Error()
			if errors.Is(err, engine.ErrBootstrap) {
				status = http.StatusInternalServerError
			}
		}

		if _, err := json.Marshal(resp.Value); err != nil {
			resp.Value = fmt.Sprint(resp.Value)
		}
		writeJSON(w, status, resp)
	})

	mux.HandleFunc("/engine", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, a.factory.Descriptor())
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if a.cfg.Metrics.Enabled {
		mux.Handle(a.cfg.Metrics.Path, a.metrics.Handler())
	}

	return withRequestID(a.logger, mux)
}

// withRequestID tags each request with an X-Request-ID, reusing the
// caller's when present.
func withRequestID(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
