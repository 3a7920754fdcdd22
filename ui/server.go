// Package ui serves an HTML report for one analysis: a rendered summary, the
// result table as JSON, and the Excel report artifact as a download.
package ui

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"driftlens/domain/dataset"
	"driftlens/domain/drift"
	"driftlens/internal/analysis"
	"driftlens/ports"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<title>Drift Analysis</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 0.3rem 0.8rem; }
</style>
</head>
<body>
{{ .Summary }}
<p><a href="/report.xlsx">Download Excel report</a> &middot; <a href="/api/results">Result table JSON</a></p>
</body>
</html>`

// Server renders the analysis report over HTTP
type Server struct {
	router   *gin.Engine
	engine   *analysis.Engine
	reporter ports.Reporter
	page     *template.Template

	table  drift.Table
	fields []dataset.FieldDescriptor
}

// NewServer creates the report server. The engine is analyzed once at
// startup; the engine being immutable, re-running it would produce the same
// table.
func NewServer(engine *analysis.Engine, reporter ports.Reporter) (*Server, error) {
	page, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	s := &Server{
		router:   gin.Default(),
		engine:   engine,
		reporter: reporter,
		page:     page,
	}

	s.router.GET("/", s.handleIndex)
	s.router.GET("/report.xlsx", s.handleReport)
	s.router.GET("/api/results", s.handleResults)
	s.router.GET("/api/profiles", s.handleProfiles)

	return s, nil
}

// Start analyzes the datasets and serves the report
func (s *Server) Start(addr string) error {
	table, err := s.engine.Analyze(context.Background())
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	s.table = table
	s.fields = s.engine.Descriptors()

	log.Printf("[UI] serving report for %d fields on %s", len(s.fields), addr)
	return s.router.Run(addr)
}

func (s *Server) handleIndex(c *gin.Context) {
	summaryHTML := renderMarkdown(analysis.MarkdownSummary(s.table))

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, gin.H{"Summary": template.HTML(summaryHTML)}); err != nil {
		c.String(http.StatusInternalServerError, "failed to render page: %v", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleResults(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"rows":        s.table.Rows,
		"fingerprint": s.table.Fingerprint().String(),
	})
}

func (s *Server) handleProfiles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"profiles": s.engine.Profiles()})
}

func (s *Server) handleReport(c *gin.Context) {
	path := filepath.Join(os.TempDir(), "driftlens-report.xlsx")
	if err := s.reporter.Render(s.table, s.fields, path); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.FileAttachment(path, "report.xlsx")
}

// renderMarkdown converts a markdown summary into HTML
func renderMarkdown(md string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(md))
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return string(markdown.Render(doc, renderer))
}
