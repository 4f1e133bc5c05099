package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	appwizard "github.com/bryanwahyu/stratiq/internal/application/wizard"
	domai "github.com/bryanwahyu/stratiq/internal/domain/ai"
	"github.com/bryanwahyu/stratiq/internal/domain/analysis"
	domain "github.com/bryanwahyu/stratiq/internal/domain/wizard"
	"github.com/bryanwahyu/stratiq/internal/middleware"
)

// Options configures the ambient middleware of the router.
type Options struct {
	Log         *zap.Logger
	Version     string
	CORSOrigins []string
	RateLimiter *middleware.RateLimiter // nil disables rate limiting
	Checks      map[string]middleware.HealthChecker
}

type Router struct {
	svc *appwizard.Service
	log *zap.Logger
}

// errBadRequest marks malformed request bodies or params.
var errBadRequest = errors.New("bad request")

func NewRouter(svc *appwizard.Service, opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	r := &Router{svc: svc, log: log}
	mux := chi.NewRouter()

	mux.Use(chimw.RequestID)
	mux.Use(chimw.Recoverer)
	if len(opts.CORSOrigins) > 0 {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			ExposedHeaders:   []string{"Content-Disposition", "X-Export-Location"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}
	mux.Use(middleware.Logging(log))
	mux.Use(middleware.MetricsMiddleware)
	if opts.RateLimiter != nil {
		mux.Use(middleware.RateLimit(opts.RateLimiter))
	}

	mux.Get("/health", middleware.VersionedHealthHandler(opts.Version, opts.Checks))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1/sessions", func(rt chi.Router) {
		rt.Post("/", r.wrap(r.handleStart))
		rt.Route("/{id}", func(rt chi.Router) {
			rt.Get("/", r.wrap(r.handleGet))
			rt.Put("/inputs", r.wrap(r.handleInputs))
			rt.Post("/continue", r.wrap(r.handleEvent(domain.Continue{})))
			rt.Put("/frameworks", r.wrap(r.handleFrameworks))
			rt.Post("/generate", r.wrap(r.handleGenerate))
			rt.Put("/results/swot", r.wrap(r.handleSWOT))
			rt.Put("/results/ansoff", r.wrap(r.handleAnsoff))
			rt.Post("/recommendations", r.wrap(r.handleRecommendation))
			rt.Post("/back", r.wrap(r.handleEvent(domain.Back{})))
			rt.Post("/next", r.wrap(r.handleEvent(domain.Next{})))
			rt.Get("/export", r.wrap(r.handleExport))
			rt.Get("/history", r.wrap(r.handleHistory))
		})
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		status, code := classify(err)
		if status >= http.StatusInternalServerError {
			r.log.Error("request failed", zap.String("path", req.URL.Path), zap.Error(err))
		}
		middleware.WriteError(w, status, code, message(err))
	}
}

// classify maps service errors to an HTTP status and error code.
func classify(err error) (int, string) {
	var ve *domain.ValidationError
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "not_found"
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity, "validation"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, "invalid_transition"
	case errors.Is(err, analysis.ErrUnsupportedFormat):
		return http.StatusBadRequest, "unsupported_format"
	case errors.Is(err, domai.ErrQuotaExceeded):
		return http.StatusTooManyRequests, "quota_exceeded"
	case errors.Is(err, analysis.ErrGeneration):
		return http.StatusBadGateway, "generation_failed"
	}
	return http.StatusInternalServerError, "internal"
}

func message(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}

// sessionID reads {id} and rejects ids that cannot exist.
func sessionID(req *http.Request) (string, error) {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateSessionID(id); err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return id, nil
}

func decode(req *http.Request, v any) error {
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// dispatch runs ev and renders the resulting session.
func (r *Router) dispatch(w http.ResponseWriter, req *http.Request, ev domain.Event) error {
	id, err := sessionID(req)
	if err != nil {
		return err
	}
	sess, err := r.svc.Dispatch(req.Context(), id, ev)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, newSessionView(sess))
}

// POST /v1/sessions
// Body (optional): {"offline_mode": true}
func (r *Router) handleStart(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Offline bool `json:"offline_mode"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	sess, err := r.svc.Start(req.Context(), body.Offline)
	if err != nil {
		return err
	}
	middleware.IncrementSessions()
	w.Header().Set("Location", "/v1/sessions/"+sess.ID)
	return writeJSON(w, http.StatusCreated, newSessionView(sess))
}

// GET /v1/sessions/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	id, err := sessionID(req)
	if err != nil {
		return err
	}
	sess, err := r.svc.Get(req.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, newSessionView(sess))
}

func (r *Router) handleEvent(ev domain.Event) handlerFunc {
	return func(w http.ResponseWriter, req *http.Request) error {
		return r.dispatch(w, req, ev)
	}
}

// PUT /v1/sessions/{id}/inputs
// Body: {"company","scope","product","geo","notes","offline_mode"}; a missing
// offline_mode keeps the current value.
func (r *Router) handleInputs(w http.ResponseWriter, req *http.Request) error {
	id, err := sessionID(req)
	if err != nil {
		return err
	}
	var body struct {
		Company string `json:"company"`
		Scope   string `json:"scope"`
		Product string `json:"product"`
		Geo     string `json:"geo"`
		Notes   string `json:"notes"`
		Offline *bool  `json:"offline_mode"`
	}
	if err := decode(req, &body); err != nil {
		return err
	}
	offline := false
	if body.Offline != nil {
		offline = *body.Offline
	} else {
		cur, err := r.svc.Get(req.Context(), id)
		if err != nil {
			return err
		}
		offline = cur.Offline
	}
	return r.dispatch(w, req, domain.EditInputs{
		Company: middleware.SanitizeString(body.Company),
		Scope:   middleware.SanitizeString(body.Scope),
		Product: middleware.SanitizeString(body.Product),
		Geo:     middleware.SanitizeString(body.Geo),
		Notes:   middleware.SanitizeText(body.Notes),
		Offline: offline,
	})
}

// PUT /v1/sessions/{id}/frameworks
// Body: {"frameworks": ["SWOT", "Ansoff"]}
func (r *Router) handleFrameworks(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Frameworks []string `json:"frameworks"`
	}
	if err := decode(req, &body); err != nil {
		return err
	}
	return r.dispatch(w, req, domain.SelectFrameworks{Names: body.Frameworks})
}

// POST /v1/sessions/{id}/generate
func (r *Router) handleGenerate(w http.ResponseWriter, req *http.Request) error {
	middleware.IncrementGenerations()
	err := r.dispatch(w, req, domain.Generate{})
	if errors.Is(err, analysis.ErrGeneration) {
		middleware.IncrementGenerationsFailed()
	}
	return err
}

// PUT /v1/sessions/{id}/results/swot
// Body: {"S": "line\nline", "W": "...", "O": "...", "T": "..."}
func (r *Router) handleSWOT(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		S string `json:"S"`
		W string `json:"W"`
		O string `json:"O"`
		T string `json:"T"`
	}
	if err := decode(req, &body); err != nil {
		return err
	}
	return r.dispatch(w, req, domain.SaveSWOT{
		S: middleware.SanitizeText(body.S),
		W: middleware.SanitizeText(body.W),
		O: middleware.SanitizeText(body.O),
		T: middleware.SanitizeText(body.T),
	})
}

// PUT /v1/sessions/{id}/results/ansoff
func (r *Router) handleAnsoff(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		MarketPenetration  string `json:"market_penetration"`
		MarketDevelopment  string `json:"market_development"`
		ProductDevelopment string `json:"product_development"`
		Diversification    string `json:"diversification"`
	}
	if err := decode(req, &body); err != nil {
		return err
	}
	return r.dispatch(w, req, domain.SaveAnsoff{
		MarketPenetration:  middleware.SanitizeText(body.MarketPenetration),
		MarketDevelopment:  middleware.SanitizeText(body.MarketDevelopment),
		ProductDevelopment: middleware.SanitizeText(body.ProductDevelopment),
		Diversification:    middleware.SanitizeText(body.Diversification),
	})
}

// POST /v1/sessions/{id}/recommendations
// Body: {"title", "impact", "effort", "rationale"}
func (r *Router) handleRecommendation(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Title     string `json:"title"`
		Impact    int    `json:"impact"`
		Effort    int    `json:"effort"`
		Rationale string `json:"rationale"`
	}
	if err := decode(req, &body); err != nil {
		return err
	}
	return r.dispatch(w, req, domain.AddRecommendation{
		Title:     middleware.SanitizeString(body.Title),
		Impact:    body.Impact,
		Effort:    body.Effort,
		Rationale: middleware.SanitizeText(body.Rationale),
	})
}

// GET /v1/sessions/{id}/export?format=json|deck|html
// Without format the last chosen export type is used.
func (r *Router) handleExport(w http.ResponseWriter, req *http.Request) error {
	id, err := sessionID(req)
	if err != nil {
		return err
	}
	raw := req.URL.Query().Get("format")
	var format analysis.ExportFormat
	if raw == "" {
		sess, err := r.svc.Get(req.Context(), id)
		if err != nil {
			return err
		}
		format = sess.Record.Export.Type
	} else if format, err = analysis.ParseExportFormat(raw); err != nil {
		return err
	}

	file, sess, err := r.svc.Export(req.Context(), id, format)
	if err != nil {
		return err
	}
	middleware.IncrementExports()

	w.Header().Set("Content-Type", file.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.Header().Set("X-Export-Location", sess.Record.Export.Path)
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(file.Data)
	return err
}

// GET /v1/sessions/{id}/history?limit=20
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	id, err := sessionID(req)
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	list, err := r.svc.ListHistory(req.Context(), id, middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"entries": list})
}
