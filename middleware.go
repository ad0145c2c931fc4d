package main

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Logging middleware ---------------------------------------------------------

type Logger struct {
	handler http.Handler
}

func (l *Logger) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	t := time.Now()
	l.handler.ServeHTTP(w, r)
	log.Info().
		Stringer("url", r.URL).
		Int64("response_time", time.Since(t).Nanoseconds()).
		Msg("")
}
func withLogging(h http.Handler) *Logger {
	return &Logger{h}
}
