package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func setupLogging(debugging bool) context.Context {
	// alter the caller() return to only include the last directory
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		parts := strings.Split(file, "/")
		if len(parts) > 1 {
			return strings.Join(parts[len(parts)-2:], "/") + ":" + strconv.Itoa(line)
		}
		return file + ":" + strconv.Itoa(line)
	}
	pgmPath := strings.Split(os.Args[0], `/`)
	logTag := "bankanalysis"
	if len(pgmPath) > 1 {
		logTag = pgmPath[len(pgmPath)-1]
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if debugging {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	logger := log.With().Str("@tag", logTag).Caller().Logger()
	ctx := logger.WithContext(context.Background())

	return ctx
}

// startServer serves the generated dashboard so it can be previewed before
// publishing the output directory as a static site.
func startServer(deps *Dependencies) error {
	router := mux.NewRouter()
	router.HandleFunc("/ping", pingHandler()).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.PathPrefix("/").Handler(http.FileServer(http.Dir(deps.config.OutputDir)))

	server := &http.Server{
		Handler:      withLogging(router),
		Addr:         deps.config.ServerAddr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	deps.logger.Info().Str("addr", deps.config.ServerAddr).Str("dir", deps.config.OutputDir).Msg("serving dashboard")
	return server.ListenAndServe()
}

func pingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"response":"pong"}`))
	}
}
