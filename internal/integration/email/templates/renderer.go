// Package templates renders the operator email bodies.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

//go:embed *.html *.txt
var templateFS embed.FS

// Message is a rendered email body in both formats.
type Message struct {
	HTML string
	Text string
}

// Renderer executes the embedded templates. Each template name has an .html
// and a .txt variant; both must exist.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

var funcs = map[string]interface{}{
	"plural": func(n int, one, many string) string {
		if n == 1 {
			return one
		}
		return many
	},
	"upper": strings.ToUpper,
}

func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.New("").Funcs(funcs).ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}
	text, err := texttemplate.New("").Funcs(funcs).ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("parse text templates: %w", err)
	}
	return &Renderer{html: html, text: text}, nil
}

// Has reports whether name has both variants.
func (r *Renderer) Has(name string) bool {
	return r.html.Lookup(name+".html") != nil && r.text.Lookup(name+".txt") != nil
}

// Render executes both variants of name with data.
func (r *Renderer) Render(name string, data interface{}) (Message, error) {
	var html, text bytes.Buffer
	if err := r.html.ExecuteTemplate(&html, name+".html", data); err != nil {
		return Message{}, fmt.Errorf("render %s.html: %w", name, err)
	}
	if err := r.text.ExecuteTemplate(&text, name+".txt", data); err != nil {
		return Message{}, fmt.Errorf("render %s.txt: %w", name, err)
	}
	return Message{HTML: html.String(), Text: text.String()}, nil
}

// JobReport is the view model of the job_report template.
type JobReport struct {
	Job        string
	RunID      string
	StartedAt  string
	FinishedAt string
	Processed  int
	Succeeded  int
	Skipped    int
	Failed     int
	Failures   []string
}

// Omitted is how many failures the run had beyond the listed ones.
func (d JobReport) Omitted() int {
	if n := d.Failed - len(d.Failures); n > 0 {
		return n
	}
	return 0
}

// JobReportFromPayload reads a queued payload. Numbers arrive as float64
// after a JSON round trip and as int when the payload never left memory.
func JobReportFromPayload(p map[string]interface{}) JobReport {
	return JobReport{
		Job:        str(p["job"]),
		RunID:      str(p["run_id"]),
		StartedAt:  str(p["started_at"]),
		FinishedAt: str(p["finished_at"]),
		Processed:  num(p["processed"]),
		Succeeded:  num(p["succeeded"]),
		Skipped:    num(p["skipped"]),
		Failed:     num(p["failed"]),
		Failures:   strs(p["failures"]),
	}
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}

func num(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func strs(v interface{}) []string {
	switch l := v.(type) {
	case []string:
		return l
	case []interface{}:
		out := make([]string, 0, len(l))
		for _, item := range l {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
