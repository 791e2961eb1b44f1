package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymapi/internal/telemetry/metrics"
	"github.com/2beens/gymapi/pkg"
)

// PanicRecovery answers a panicking handler with a JSON 500 and logs the stack tagged with
// the matched route, so the sentry hook groups panics per endpoint.
// http.ErrAbortHandler is re-raised, net/http uses it to drop the connection silently.
func PanicRecovery(metricsManager *metrics.Manager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				log.WithFields(log.Fields{
					"route":  recoveryRouteName(req),
					"method": req.Method,
					"path":   req.URL.Path,
				}).Errorf("panic: %v\n%s", rec, debug.Stack())
				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				pkg.WriteMessage(w, "internal server error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, req)
		})
	}
}

func recoveryRouteName(req *http.Request) string {
	if route := mux.CurrentRoute(req); route != nil && route.GetName() != "" {
		return route.GetName()
	}
	return "unmatched"
}
