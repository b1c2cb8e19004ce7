package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/spigell/interview-prep/internal/interview"
)

//go:embed templates/report.html
var templates embed.FS

var htmlReport = template.Must(template.New("report.html").Funcs(template.FuncMap{
	"lines":         lines,
	"title":         Title,
	"questionLabel": QuestionLabel,
	"scoreLabel":    ScoreLabel,
	"date":          func(r *interview.Report) string { return r.CreatedAt.Local().Format(timeLayout) },
	"score":         func(f float64) string { return fmt.Sprintf("%.1f/%d", f, interview.MaxScore) },
}).ParseFS(templates, "templates/report.html"))

type htmlItem struct {
	Question   interview.Question
	Answer     interview.Answer
	Evaluation interview.Evaluation
	Evaluated  bool
}

type htmlData struct {
	Report *interview.Report
	Items  []htmlItem
}

// RenderHTML writes a self-contained HTML document. Newlines in free text are kept as <br>.
func RenderHTML(w io.Writer, r *interview.Report) error {
	data := htmlData{Report: r, Items: make([]htmlItem, 0, len(r.Questions))}
	for _, q := range r.Questions {
		ev, ok := r.Evaluations[q.Index]
		data.Items = append(data.Items, htmlItem{
			Question:   q,
			Answer:     r.Answers[q.Index],
			Evaluation: ev,
			Evaluated:  ok,
		})
	}

	if err := htmlReport.Execute(w, data); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	return nil
}

// lines escapes s and turns every newline into a <br> element.
func lines(s string) template.HTML {
	escaped := template.HTMLEscapeString(strings.TrimSpace(s))
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>\n"))
}
