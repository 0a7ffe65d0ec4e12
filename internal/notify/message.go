package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"github.com/nao1215/imgsentry/internal/model"
	"github.com/nao1215/markdown"
)

// buildAlertSubject builds the subject line for an alert message.
// It names the site and the number of pages covered so the recipient can
// triage from the inbox list alone.
func buildAlertSubject(baseURL string, report *model.ScanReport) string {
	return fmt.Sprintf("Website alert: issues found on %s (%d pages checked)",
		baseURL, report.PagesChecked)
}

// buildErrorSubject builds the subject line for an execution-failure message.
func buildErrorSubject(baseURL string) string {
	return fmt.Sprintf("Website monitor error: %s", baseURL)
}

// buildAlertText renders the plain-text alert body as Markdown.
// Markdown reads well in text-only mail clients and pastes cleanly into
// issue trackers.
func buildAlertText(baseURL, targetIP string, report *model.ScanReport) (string, error) {
	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)

	md.H1("Website Monitoring Alert")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Website", baseURL},
			{"Monitored IP", targetIP},
			{"Pages checked", strconv.Itoa(report.PagesChecked)},
			{"Pages failed", strconv.Itoa(report.PagesFailed)},
			{"Images on monitored IP", strconv.Itoa(report.TotalIPImages)},
			{"Broken images", strconv.Itoa(report.TotalBrokenImages)},
		},
	})
	md.PlainText("")

	if report.TotalIPImages > 0 {
		md.H2("Images on the monitored IP")
		md.PlainText("")
		for _, page := range report.PerPage {
			if len(page.IPImages) == 0 {
				continue
			}
			md.PlainTextf("Page: %s", page.URL)
			md.PlainText("")
			md.BulletList(page.IPImages...)
			md.PlainText("")
		}
	}

	if report.TotalBrokenImages > 0 {
		md.H2("Broken images")
		md.PlainText("")
		for _, page := range report.PerPage {
			if len(page.BrokenImages) == 0 {
				continue
			}
			md.PlainTextf("Page: %s", page.URL)
			md.PlainText("")
			md.BulletList(page.BrokenImages...)
			md.PlainText("")
		}
	}

	if report.PagesFailed > 0 {
		md.H2("Pages that could not be scanned")
		md.PlainText("")
		failed := make([]string, 0, report.PagesFailed)
		for _, page := range report.FailedPages() {
			failed = append(failed, fmt.Sprintf("%s: %s", page.URL, page.Error))
		}
		md.BulletList(failed...)
		md.PlainText("")
	}

	md.PlainText("Please check the website and fix the reported image references.")
	md.PlainText("")
	md.PlainText("This is an automated alert from the imgsentry monitoring job.")

	if err := md.Build(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// alertHTMLTemplate renders the HTML alert body.
// Kept deliberately simple: inline styles only, no external resources,
// so the message renders in any mail client.
var alertHTMLTemplate = template.Must(template.New("alert").Parse(`<html>
<body>
  <h2 style="color: #d9534f;">Website Monitoring Alert</h2>
  <p><strong>Website:</strong> {{.BaseURL}}</p>
  <p><strong>Monitored IP:</strong> {{.TargetIP}}</p>
  <p>
    Pages checked: {{.Report.PagesChecked}},
    failed: {{.Report.PagesFailed}},
    images on monitored IP: {{.Report.TotalIPImages}},
    broken images: {{.Report.TotalBrokenImages}}.
  </p>

  {{if gt .Report.TotalIPImages 0}}
  <h3>Images on the monitored IP</h3>
  {{range .Report.PerPage}}{{if .IPImages}}
  <p>Page: <code>{{.URL}}</code></p>
  <ul>
    {{range .IPImages}}<li><code>{{.}}</code></li>{{end}}
  </ul>
  {{end}}{{end}}
  {{end}}

  {{if gt .Report.TotalBrokenImages 0}}
  <h3>Broken images</h3>
  {{range .Report.PerPage}}{{if .BrokenImages}}
  <p>Page: <code>{{.URL}}</code></p>
  <ul>
    {{range .BrokenImages}}<li><code>{{.}}</code></li>{{end}}
  </ul>
  {{end}}{{end}}
  {{end}}

  {{if gt .Report.PagesFailed 0}}
  <h3>Pages that could not be scanned</h3>
  <ul>
    {{range .Report.PerPage}}{{if .Error}}<li><code>{{.URL}}</code>: {{.Error}}</li>{{end}}{{end}}
  </ul>
  {{end}}

  <p>Please check the website and fix the reported image references.</p>
  <hr>
  <p style="font-size: 12px; color: #666;">
    This is an automated alert from the imgsentry monitoring job.
  </p>
</body>
</html>
`))

// buildAlertHTML renders the HTML alert body.
func buildAlertHTML(baseURL, targetIP string, report *model.ScanReport) (string, error) {
	var buf bytes.Buffer
	err := alertHTMLTemplate.Execute(&buf, struct {
		BaseURL  string
		TargetIP string
		Report   *model.ScanReport
	}{
		BaseURL:  baseURL,
		TargetIP: targetIP,
		Report:   report,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// buildErrorText renders the plain-text body for an execution failure.
func buildErrorText(baseURL, message string) (string, error) {
	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)

	md.H1("Website Monitoring Error")
	md.PlainText("")
	md.PlainTextf("Website: %s", baseURL)
	md.PlainText("")
	md.PlainText("The monitoring job encountered an error:")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightNone, message)
	md.PlainText("")
	md.PlainText("Please check the execution logs for more details.")
	md.PlainText("")
	md.PlainText("This is an automated alert from the imgsentry monitoring job.")

	if err := md.Build(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
