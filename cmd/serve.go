package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/swissgeo/internal/query"
	"github.com/sells-group/swissgeo/internal/report"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve read-only query endpoints over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}

		m, err := loadModel(ctx, "serve")
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           newRouter(query.New(m), cfg.Server.AllowedOrigins),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// newRouter mounts the query endpoints. The service is shared by all
// requests without locking; the model behind it is immutable.
func newRouter(svc *query.Service, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, report.Summarize(svc))
		})

		r.Get("/cantons", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, report.Cantons(svc.Model().Cantons()))
		})

		r.Get("/cantons/{code}/districts", func(w http.ResponseWriter, r *http.Request) {
			code := chi.URLParam(r, "code")
			if _, ok := svc.Model().Canton(code); !ok {
				writeError(w, eris.Wrapf(query.ErrNotFound, "canton %q", code))
				return
			}
			writeJSON(w, http.StatusOK, report.Districts(svc.DistrictsInCanton(code)))
		})

		r.Get("/cantons/{code}/communities", func(w http.ResponseWriter, r *http.Request) {
			code := chi.URLParam(r, "code")
			if _, ok := svc.Model().Canton(code); !ok {
				writeError(w, eris.Wrapf(query.ErrNotFound, "canton %q", code))
				return
			}
			writeJSON(w, http.StatusOK, report.Communities(svc.PoliticalCommunitiesInCanton(code)))
		})

		r.Get("/districts/{number}/communities", func(w http.ResponseWriter, r *http.Request) {
			number := chi.URLParam(r, "number")
			if _, ok := svc.Model().District(number); !ok {
				writeError(w, eris.Wrapf(query.ErrNotFound, "district %q", number))
				return
			}
			writeJSON(w, http.StatusOK, report.Communities(svc.PoliticalCommunitiesInDistrict(number)))
		})

		r.Get("/zip/{zip}/districts", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, svc.DistrictNamesForZipCode(chi.URLParam(r, "zip")))
		})

		r.Get("/postal/{name}/last-update", func(w http.ResponseWriter, r *http.Request) {
			name := chi.URLParam(r, "name")
			t, err := svc.LastUpdateByPostalCommunityName(name)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{
				"name":        name,
				"last_update": t.Format(report.DateLayout),
			})
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, query.ErrNotFound) {
		status = http.StatusNotFound
	} else {
		zap.L().Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
