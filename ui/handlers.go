package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"txdash/domain/dataset"
	"txdash/domain/page"
	"txdash/domain/section"
	"txdash/internal/errors"
	"txdash/ports"
	"txdash/ui/middleware"
)

// pageData is what page.html and error.html render
type pageData struct {
	Title    string
	Sections []ports.SectionSummary
	Current  string
	Page     *page.Page
	Footer   template.HTML

	Status  int
	Message string
}

func (s *Server) newPageData(current string) pageData {
	return pageData{
		Title:    s.title,
		Sections: s.reader.Sections(),
		Current:  current,
		Footer:   s.footer,
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Redirect(http.StatusFound, "/sections/"+section.Default().Slug())
}

func (s *Server) handleHealth(c *gin.Context) {
	count := 0
	for _, summary := range s.reader.Sections() {
		count += len(summary.Datasets)
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "datasets": count})
}

func (s *Server) handleSection(c *gin.Context) {
	sec, err := section.Parse(c.Param("slug"))
	if err != nil {
		s.renderError(c, err)
		return
	}

	p, err := s.reader.RenderSection(c.Request.Context(), sec)
	if err != nil {
		s.renderError(c, err)
		return
	}

	data := s.newPageData(sec.Slug())
	data.Page = p
	s.renderTemplate(c, http.StatusOK, "page.html", data)
}

func (s *Server) handleExport(c *gin.Context) {
	name, ok := dataset.ParseName(c.Param("name"))
	if !ok {
		s.renderError(c, errors.NotFound(fmt.Sprintf("dataset %q", c.Param("name"))))
		return
	}

	table, err := s.reader.Dataset(c.Request.Context(), name)
	if err != nil {
		s.renderError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := s.exporter.Write(&buf, table); err != nil {
		s.renderError(c, errors.Wrap(err, "failed to export dataset"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.exporter.FileName(table)))
	c.Data(http.StatusOK, s.exporter.ContentType(), buf.Bytes())
}

func (s *Server) handleNotFound(c *gin.Context) {
	s.renderError(c, errors.NotFound(fmt.Sprintf("page %s", c.Request.URL.Path)))
}

// renderError maps err to a status and shows the error page
func (s *Server) renderError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("[Server] %s %s (request %s): %v",
			c.Request.Method, c.Request.URL.Path, middleware.GetRequestID(c), err)
	}

	data := s.newPageData("")
	data.Status = status
	data.Message = err.Error()
	s.renderTemplate(c, status, "error.html", data)
}

// StatusFor maps an application error code to an HTTP status
func StatusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
