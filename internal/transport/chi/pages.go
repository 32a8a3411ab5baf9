package chi

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/passpredict/internal/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// page is the data rendered into index.html.
type page struct {
	Result string
}

// renderPage executes into a buffer first so a template failure never leaks a half-written page.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, p page) {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, "index.html", p); err != nil {
		logpkg.FromContext(r.Context()).Error("render page", zap.Error(err))
		http.Error(w, msgInternalError, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
