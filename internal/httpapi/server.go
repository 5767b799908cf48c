package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lorad/internal/manager"
	"lorad/pkg/lora"
	"lorad/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Load(ctx context.Context, req *lora.Request) (manager.LoadResult, error)
	Unload(id int64) error
	ListAdapters() []types.AdapterStatus
	Status() types.StatusResponse
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Post("/adapters", func(w http.ResponseWriter, r *http.Request) { handleLoad(svc, w, r) })

	r.Get("/adapters", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		resp := types.AdaptersResponse{Adapters: svc.ListAdapters()}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Delete("/adapters/{id}", func(w http.ResponseWriter, r *http.Request) { handleUnload(svc, w, r) })

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(svc.Status()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("closed"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// handleLoad godoc
// @Summary      Load a LoRA adapter
// @Description  Validates the request record and makes the adapter available. Exactly one source route must be given: a path, or source_config together with source_tensors.
// @Accept       json
// @Produce      json
// @Param        request body types.LoadAdapterRequest true "adapter load request"
// @Success      200 {object} types.LoadAdapterResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      429 {object} types.ErrorResponse
// @Failure      503 {object} types.ErrorResponse
// @Router       /adapters [post]
func handleLoad(svc Service, w http.ResponseWriter, r *http.Request) {
	// Content-Type check
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}
	// Limit body size (configurable; generous default since tensors ride in the body)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var payload types.LoadAdapterRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		// If exceeded size, MaxBytesReader may cause an error; still return 400 to avoid size leak details
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Build the validated record. Every construction failure is the caller's
	// input problem: bad request, never a crash.
	req, err := lora.New(lora.Spec{
		Name:           payload.Name,
		ID:             payload.ID,
		Path:           payload.Path,
		BaseModelName:  payload.BaseModelName,
		ExternalConfig: payload.ExternalConfig,
		ForceReload:    payload.ForceReload,
		SourceConfig:   payload.SourceConfig,
		SourceTensors:  payload.SourceTensors,
	})
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	lvl := requestLogLevel(r)
	if lvl >= LevelInfo {
		if zlog != nil {
			z := zlog.Info().Str("path", r.URL.Path).Str("adapter", req.DisplayName()).Int64("id", req.AdapterID())
			if rid := middleware.GetReqID(r.Context()); rid != "" {
				z = z.Str("request_id", rid)
			}
			z.Msg("load start")
		} else {
			log.Printf("load start adapter=%s id=%d", req.DisplayName(), req.AdapterID())
		}
	}

	// Join server base context with request context so shutdown cancels work too.
	joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()
	res, err := svc.Load(joinedCtx, req)
	if err != nil {
		// If context was canceled (client disconnect), just return.
		if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
			return
		}
		status := statusForError(err)
		if status == http.StatusTooManyRequests {
			IncrementBackpressure("load_queue_full")
		}
		writeJSONError(w, status, err.Error())
		logLoadEnd(r, lvl, status, start, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(types.LoadAdapterResponse{
		ID:      req.AdapterID(),
		Name:    req.DisplayName(),
		OpID:    res.OpID,
		Outcome: string(res.Outcome),
	})
	logLoadEnd(r, lvl, http.StatusOK, start, nil)
}

// handleUnload godoc
// @Summary      Unload a LoRA adapter
// @Produce      json
// @Param        id path int true "numeric adapter id"
// @Success      204
// @Failure      400 {object} types.ErrorResponse
// @Failure      404 {object} types.ErrorResponse
// @Router       /adapters/{id} [delete]
func handleUnload(svc Service, w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "adapter id must be an integer")
		return
	}
	if err := svc.Unload(id); err != nil {
		writeJSONError(w, statusForError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// statusForError maps well-known manager and record errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case lora.IsValidationError(err):
		return http.StatusBadRequest
	case manager.IsAdapterNotFound(err):
		return http.StatusNotFound
	case manager.IsTooBusy(err):
		return http.StatusTooManyRequests
	case manager.IsDependencyUnavailable(err):
		return http.StatusServiceUnavailable
	}
	if he, ok := err.(HTTPError); ok {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}

func logLoadEnd(r *http.Request, lvl LogLevel, status int, start time.Time, err error) {
	if lvl < LevelInfo {
		return
	}
	if zlog != nil {
		z := zlog.Info().Int("status", status).Dur("dur", time.Since(start))
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		if err != nil {
			z = z.Err(err)
		}
		z.Msg("load end")
		return
	}
	if err != nil {
		log.Printf("load end status=%d dur=%s err=%v", status, time.Since(start), err)
	} else {
		log.Printf("load end status=%d dur=%s", status, time.Since(start))
	}
}
