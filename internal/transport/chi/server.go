package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/passpredict/internal/domain"
	"github.com/kailas-cloud/passpredict/internal/domain/features"
	logpkg "github.com/kailas-cloud/passpredict/internal/logger"
	healthuc "github.com/kailas-cloud/passpredict/internal/usecase/health"
	predictionuc "github.com/kailas-cloud/passpredict/internal/usecase/prediction"
)

const (
	defaultMaxBodyBytes = 1 << 20
	maxFormMemory       = 1 << 20

	msgNotJSON       = "Request body must be JSON"
	msgInvalidInput  = "Invalid input"
	msgInternalError = "internal error"
)

// errNotJSON signals a body that is not a single JSON object.
var errNotJSON = errors.New("request body is not a JSON object")

// errorHandler tries to handle an error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the prediction API and the HTML form.
type Server struct {
	predictions   *predictionuc.Service
	health        *healthuc.Service
	pages         *template.Template
	metrics       http.Handler
	logger        *zap.Logger
	maxBodyBytes  int64
	errorHandlers []errorHandler
}

// NewServer creates an HTTP server.
func NewServer(
	predictions *predictionuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		predictions:  predictions,
		health:       health,
		pages:        pageTemplates,
		metrics:      promhttp.Handler(),
		logger:       logger,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	s.errorHandlers = []errorHandler{
		missingFieldHandler,
		sentinelHandler(errNotJSON, http.StatusBadRequest, msgNotJSON),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, msgInvalidInput),
	}
	return s
}

// WithMaxBodyBytes caps request bodies for both prediction endpoints.
func (s *Server) WithMaxBodyBytes(n int64) *Server {
	if n > 0 {
		s.maxBodyBytes = n
	}
	return s
}

// Routes mounts all endpoints on r.
func (s *Server) Routes(r gochi.Router) {
	r.Get("/", s.Index)
	r.Get("/form", s.Index)
	r.Post("/predict", s.Predict)
	r.Get("/predict/schema", s.PredictSchema)
	r.Post("/predict-form", s.PredictForm)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Index handles GET / and GET /form.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, page{})
}

// Predict handles POST /predict.
func (s *Server) Predict(w http.ResponseWriter, r *http.Request) {
	payload, err := s.decodeObject(w, r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	label, err := s.predictions.PredictPayload(r.Context(), payload)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, PredictResponse{Result: label.Int()})
}

// PredictForm handles POST /predict-form. It always answers 200 with a rendered page.
func (s *Server) PredictForm(w http.ResponseWriter, r *http.Request) {
	p := page{Result: domain.OutcomeInvalid}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := parseForm(r); err != nil {
		logpkg.FromContext(r.Context()).Debug("form rejected", zap.Error(err))
		s.renderPage(w, r, p)
		return
	}

	label, err := s.predictions.PredictPayload(r.Context(), features.FormPayload(r.PostForm))
	if err != nil {
		logpkg.FromContext(r.Context()).Debug("form rejected", zap.Error(err))
	} else {
		p.Result = label.Outcome()
	}

	s.renderPage(w, r, p)
}

// PredictSchema handles GET /predict/schema.
func (s *Server) PredictSchema(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, predictRequestSchema)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	s.metrics.ServeHTTP(w, r)
}

// decodeObject reads exactly one JSON object from the body. Numbers stay json.Number
// so the validator sees the literal text.
func (s *Server) decodeObject(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %w", errNotJSON, err)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: null body", errNotJSON)
	}
	// Anything after the object, even a stray bracket, is rejected.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data", errNotJSON)
	}
	return payload, nil
}

// parseForm accepts urlencoded and multipart bodies.
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxFormMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return fmt.Errorf("parse form: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// missingFieldHandler reports the absent field by name.
func missingFieldHandler(w http.ResponseWriter, err error) bool {
	var mfe *domain.MissingFieldError
	if !errors.As(err, &mfe) {
		return false
	}
	writeError(w, http.StatusBadRequest, mfe.Error())
	return true
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, msg string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	logpkg.FromContext(r.Context()).Debug("request rejected", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, msgInternalError)
}
