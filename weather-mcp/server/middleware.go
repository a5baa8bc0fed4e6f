package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

func toJson[Res any](handler func(*http.Request) (Res, error)) func(http.ResponseWriter, *http.Request) {

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		responseObject, err := handler(r)
		if err != nil {
			errorMessage, err := json.Marshal(map[string]string{"error": err.Error()})
			if err != nil {
				http.Error(w, "Internal Error: could not marshal error message", http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusInternalServerError)
			w.Write(errorMessage)
			return
		}

		responseJson, err := json.Marshal(responseObject)
		if err != nil {
			http.Error(w, "Internal Error: could not marshal output data", http.StatusInternalServerError)
			return
		}
		w.Write(responseJson)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps streamed MCP responses working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func logRequests(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("mcp http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
