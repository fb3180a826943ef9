package http

import (
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-api-dispatch/models"
)

const (
	apiPath     = "/api"
	pingPath    = "/ping"
	metricsPath = "/metrics"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat(pingPath))

	if h.collector != nil {
		router.Use(h.collector.Middleware(metricsPath))
		router.Method(http.MethodGet, metricsPath, h.collector.Handler())
	}

	router.Group(func(r chi.Router) {
		r.Use(withGZip)
		if h.requestTimeout > 0 {
			r.Use(middleware.Timeout(h.requestTimeout))
		}
		if h.hasher != nil {
			r.Use(h.withHashing)
		}

		r.Get(apiPath, h.get)
		r.Post(apiPath, h.post)
	})

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.checkHTTPMethod(router))

	return router
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.writeResponse(w, r, models.NotFound)
}

// checkHTTPMethod answers a known path requested with an unsupported verb.
// The Allow header lists the verbs the route does handle.
func (h *Handler) checkHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, route := range router.Routes() {
			if route.Pattern != r.URL.Path {
				continue
			}

			allowed := make([]string, 0, len(route.Handlers))
			for method := range route.Handlers {
				allowed = append(allowed, method)
			}
			slices.Sort(allowed)
			w.Header().Set("Allow", strings.Join(allowed, ", "))
			break
		}

		h.writeResponse(w, r, models.MethodNotAllowed)
	}
}
