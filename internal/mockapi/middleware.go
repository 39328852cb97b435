package mockapi

import (
	"net/http"
	"time"
)

// statusClientClosedRequest is logged for requests abandoned by the client
// before a response was written.
const statusClientClosedRequest = 499

type recordingWriter struct {
	inner      http.ResponseWriter
	statusCode int
}

func (r *recordingWriter) Header() http.Header {
	return r.inner.Header()
}

func (r *recordingWriter) Write(bytes []byte) (int, error) {
	if r.statusCode == 0 {
		r.statusCode = http.StatusOK
	}
	return r.inner.Write(bytes)
}

func (r *recordingWriter) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.inner.WriteHeader(statusCode)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &recordingWriter{inner: w}
		next.ServeHTTP(rw, r)

		status := rw.statusCode
		if status == 0 {
			status = http.StatusOK
		}
		ev := s.log.Info()
		if status >= http.StatusInternalServerError || status == statusClientClosedRequest {
			ev = s.log.Warn()
		}
		ev.Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// simulate applies the configured latency and random failures.
func (s *Server) simulate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.Latency > 0 {
			timer := time.NewTimer(s.opts.Latency)
			select {
			case <-timer.C:
			case <-r.Context().Done():
				timer.Stop()
				w.WriteHeader(statusClientClosedRequest)
				return
			}
		}
		if s.opts.FailRate > 0 && s.opts.Float64() < s.opts.FailRate {
			http.Error(w, "simulated failure", http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r)
	})
}
