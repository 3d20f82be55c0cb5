package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"txdash/internal/charts"
)

//go:embed templates/*.html static/css/*.css
var embeddedFiles embed.FS

var funcMap = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"addf": func(a, b float64) float64 { return a + b },
	"sub":  func(a, b float64) float64 { return a - b },
	"mid": func(a, b float64) float64 { return (a + b) / 2 },
	// coord prints an SVG coordinate.
	"coord": func(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) },
	"fmtnum": charts.FormatNumber,
	"upper":  strings.ToUpper,
}

func parseTemplates() (*template.Template, error) {
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return templates, nil
}

// renderTemplate executes a template into a buffer first, so a failing
// template never leaves a half-written page.
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		s.logger.Error("[Server] Template error for %s: %v", templateName, err)
		c.AbortWithStatusJSON(500, gin.H{"error": "Template rendering failed", "details": err.Error()})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(status)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		s.logger.Warn("[Server] Error writing template response: %v", err)
	}
}
