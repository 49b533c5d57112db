// Package report renders the summary of a publish run.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/ibeckermayer/syndicate/internal/adapter"
	"github.com/ibeckermayer/syndicate/internal/runner"
)

// Builder creates run reports from publish outcomes
type Builder struct {
	template *template.Template
}

// New creates a new report builder
func New() (*Builder, error) {
	tmpl, err := template.New("report").Parse(defaultTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &Builder{template: tmpl}, nil
}

// Report is a compiled report ready for sending
type Report struct {
	Subject   string
	HTMLBody  string
	PlainBody string
	CreatedAt time.Time
}

// Data is the template data structure
type Data struct {
	Title     string
	Date      string
	RequestID string
	Sites     []SiteData
	Stats     StatsData
}

// SiteData is one website row in the report
type SiteData struct {
	Site          string
	Success       bool
	PostURL       string
	ScreenshotURL string
	Error         string
	Kind          string
	Duration      string
	Logs          []adapter.Entry
}

// StatsData contains run statistics
type StatsData struct {
	Total     int
	Published int
	Failed    int
}

// Build creates a report for one run of content
func (b *Builder) Build(requestID string, content adapter.Content, outcomes []runner.Outcome) (*Report, error) {
	if len(outcomes) == 0 {
		return nil, fmt.Errorf("no outcomes to report")
	}

	ok, failed := runner.Counts(outcomes)
	now := time.Now()
	data := Data{
		Title:     fmt.Sprintf("Syndication report: %s", titleOf(content)),
		Date:      now.Format("Monday, January 2 15:04"),
		RequestID: requestID,
		Sites:     make([]SiteData, len(outcomes)),
		Stats:     StatsData{Total: len(outcomes), Published: ok, Failed: failed},
	}

	for i, o := range outcomes {
		s := o.Result.Summary()
		data.Sites[i] = SiteData{
			Site:          o.Site,
			Success:       s.Success,
			PostURL:       s.PostURL,
			ScreenshotURL: s.ScreenshotURL,
			Error:         s.Error,
			Kind:          string(s.Kind),
			Duration:      o.Duration.Round(time.Second).String(),
			Logs:          o.Logs,
		}
	}

	var htmlBuf bytes.Buffer
	if err := b.template.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}

	return &Report{
		Subject:   fmt.Sprintf("Syndication: %d/%d published - %s", ok, len(outcomes), truncate(titleOf(content), 60)),
		HTMLBody:  htmlBuf.String(),
		PlainBody: buildPlainText(data),
		CreatedAt: now,
	}, nil
}

func titleOf(c adapter.Content) string {
	if c.Title != "" {
		return c.Title
	}
	if c.URL != "" {
		return c.URL
	}
	return "untitled"
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func buildPlainText(data Data) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("%s\n%s\n", data.Title, data.Date))
	buf.WriteString(fmt.Sprintf("Published %d of %d (request %s)\n\n", data.Stats.Published, data.Stats.Total, data.RequestID))

	for i, s := range data.Sites {
		if s.Success {
			buf.WriteString(fmt.Sprintf("%d. %s: OK %s\n", i+1, s.Site, s.PostURL))
			if s.ScreenshotURL != "" {
				buf.WriteString(fmt.Sprintf("   screenshot: %s\n", s.ScreenshotURL))
			}
		} else {
			buf.WriteString(fmt.Sprintf("%d. %s: FAILED [%s] %s\n", i+1, s.Site, s.Kind, s.Error))
		}
	}

	return buf.String()
}

const defaultTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Title}}</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 700px; margin: 0 auto; padding: 20px; background: #f5f5f5; }
        .container { background: white; border-radius: 8px; padding: 20px; }
        h1 { color: #0a66c2; margin-bottom: 5px; font-size: 20px; }
        .date { color: #666; margin-bottom: 20px; }
        .site { border-bottom: 1px solid #eee; padding: 12px 0; }
        .site:last-child { border-bottom: none; }
        .name { font-weight: bold; color: #333; }
        .ok { color: #1a7f37; }
        .failed { color: #cf222e; }
        .kind { background: #ffebe9; color: #cf222e; padding: 2px 8px; border-radius: 12px; font-size: 12px; }
        .logs { color: #666; font-size: 12px; margin: 6px 0 0 0; padding-left: 18px; }
        .link { color: #0a66c2; text-decoration: none; }
        .footer { margin-top: 20px; padding-top: 15px; border-top: 1px solid #eee; color: #999; font-size: 12px; text-align: center; }
    </style>
</head>
<body>
    <div class="container">
        <h1>{{.Title}}</h1>
        <div class="date">{{.Date}} · {{.Stats.Published}} of {{.Stats.Total}} published</div>

        {{range .Sites}}
        <div class="site">
            <div class="name">{{.Site}} <span class="{{if .Success}}ok{{else}}failed{{end}}">{{if .Success}}published{{else}}failed{{end}}</span> · {{.Duration}}</div>
            {{if .Success}}
            <a href="{{.PostURL}}" class="link">{{.PostURL}}</a>
            {{if .ScreenshotURL}} · <a href="{{.ScreenshotURL}}" class="link">screenshot</a>{{end}}
            {{else}}
            <div><span class="kind">{{.Kind}}</span> {{.Error}}</div>
            {{end}}
            {{if .Logs}}<ul class="logs">{{range .Logs}}<li>[{{.Level}}] {{.Message}}</li>{{end}}</ul>{{end}}
        </div>
        {{end}}

        <div class="footer">
            Request {{.RequestID}} · Generated by syndicate
        </div>
    </div>
</body>
</html>`
