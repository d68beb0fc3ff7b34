package notify

import (
	"bytes"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
)

// Signature closes every message
const Signature = "ZenAI Project Manager"

const (
	overdueColor  = "#d32f2f"
	overdueTint   = "#ffebee"
	reminderColor = "#ff9800"
	reminderTint  = "#fff3e0"
	digestSubject = "Daily Project Report - ZenAI"
)

// alertView is the data every alert template is executed with
type alertView struct {
	Heading   string
	Intro     string
	Closing   string
	Color     string
	Tint      string
	Assignee  string
	Title     string
	URL       string
	DueDate   string
	Priority  string
	Days      int
	Overdue   bool
	Signature string
}

const alertText = `Hi {{ .Assignee | default "there" }},

{{ .Intro }}

Task: {{ .Title }}
{{- if .Overdue }}
Days Overdue: {{ .Days }}
{{- else if eq .Days 0 }}
Due: today
{{- else }}
Due in: {{ .Days }} {{ if eq .Days 1 }}day{{ else }}days{{ end }}
{{- end }}
{{- if .DueDate }}
Due Date: {{ .DueDate }}
{{- end }}
{{- if .Priority }}
Priority: {{ .Priority }}
{{- end }}
{{- if .URL }}
Task URL: {{ .URL }}
{{- end }}

{{ .Closing }}

Best regards,
{{ .Signature }}
`

const alertHTML = `<html>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <div style="background-color: {{ .Color | safeCSS }}; color: white; padding: 20px; text-align: center;">
        <h1 style="margin: 0;">{{ .Heading }}</h1>
    </div>
    <div style="padding: 20px; background-color: #f5f5f5;">
        <p>Hi <strong>{{ .Assignee | default "there" }}</strong>,</p>
        <p>{{ .Intro }}</p>
        <div style="background-color: {{ .Tint | safeCSS }}; padding: 20px; border-left: 5px solid {{ .Color | safeCSS }}; margin: 20px 0;">
            <p style="margin: 5px 0;"><strong>Task:</strong> {{ .Title }}</p>
            {{- if .Overdue }}
            <p style="margin: 5px 0;"><strong>Days Overdue:</strong> {{ .Days }}</p>
            {{- else if eq .Days 0 }}
            <p style="margin: 5px 0;"><strong>Due:</strong> today</p>
            {{- else }}
            <p style="margin: 5px 0;"><strong>Due in:</strong> {{ .Days }} {{ if eq .Days 1 }}day{{ else }}days{{ end }}</p>
            {{- end }}
            {{- if .Priority }}
            <p style="margin: 5px 0;"><strong>Priority:</strong> {{ .Priority }}</p>
            {{- end }}
        </div>
        {{- if .URL }}
        <p style="text-align: center;">
            <a href="{{ .URL }}" style="background-color: {{ .Color | safeCSS }}; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">View Task in Notion</a>
        </p>
        {{- end }}
        <p>{{ .Closing }}</p>
        <hr style="border: none; border-top: 1px solid #ddd; margin: 20px 0;">
        <p style="color: #666; font-size: 12px;">
            Best regards,<br>
            <strong>{{ .Signature }}</strong>
        </p>
    </div>
</body>
</html>
`

const digestHTML = `<html>
<body style="font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
    <div style="background-color: white; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1);">
        {{ .Body }}
        <hr style="border: none; border-top: 1px solid #ddd; margin: 20px 0;">
        <p style="color: #666; font-size: 12px;">{{ .Signature }}</p>
    </div>
</body>
</html>
`

// renderer holds the parsed templates and the markdown converter
type renderer struct {
	alertText  *texttemplate.Template
	alertHTML  *htmltemplate.Template
	digestHTML *htmltemplate.Template
	markdown   goldmark.Markdown
}

func newRenderer() *renderer {
	htmlFuncs := sprig.HtmlFuncMap()
	htmlFuncs["safeCSS"] = func(s string) htmltemplate.CSS { return htmltemplate.CSS(s) }

	return &renderer{
		alertText:  texttemplate.Must(texttemplate.New("alert.txt").Option("missingkey=error").Funcs(sprig.TxtFuncMap()).Parse(alertText)),
		alertHTML:  htmltemplate.Must(htmltemplate.New("alert.html").Option("missingkey=error").Funcs(htmlFuncs).Parse(alertHTML)),
		digestHTML: htmltemplate.Must(htmltemplate.New("digest.html").Option("missingkey=error").Funcs(htmlFuncs).Parse(digestHTML)),
		markdown:   goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough)),
	}
}

func (r *renderer) render(n entities.Notification) (entities.Message, error) {
	switch n.Kind {
	case entities.NotificationOverdueAlert, entities.NotificationAtRiskReminder:
		return r.renderAlert(n)
	case entities.NotificationDailyDigest:
		return r.renderDigest(n)
	}
	return entities.Message{}, &UnknownKindError{Kind: n.Kind}
}

func (r *renderer) renderAlert(n entities.Notification) (entities.Message, error) {
	if n.Task == nil {
		return entities.Message{}, &MissingTaskError{Kind: n.Kind}
	}
	t := n.Task
	v := alertView{
		Assignee:  greeting(t.AssigneeName),
		Title:     t.Title,
		URL:       t.URL,
		Priority:  t.Priority,
		Signature: Signature,
	}
	if t.DueDate != nil {
		v.DueDate = *t.DueDate
	}

	var subject string
	if n.Kind == entities.NotificationOverdueAlert {
		v.Overdue = true
		v.Heading = "Overdue Task Alert"
		v.Intro = "This is a reminder that your task is now overdue:"
		v.Closing = "Please update the task status or reach out if you need help!"
		v.Color, v.Tint = overdueColor, overdueTint
		if t.DaysOverdue != nil {
			v.Days = *t.DaysOverdue
		}
		subject = "Overdue Task Alert: " + t.Title
	} else {
		v.Heading = "Deadline Reminder"
		v.Intro = "Friendly reminder that your task is coming up soon:"
		v.Closing = "Keep up the great work!"
		v.Color, v.Tint = reminderColor, reminderTint
		if t.DaysUntilDue != nil {
			v.Days = *t.DaysUntilDue
		}
		subject = "Deadline Reminder: " + t.Title
	}

	var text, html bytes.Buffer
	if err := r.alertText.Execute(&text, v); err != nil {
		return entities.Message{}, err
	}
	if err := r.alertHTML.Execute(&html, v); err != nil {
		return entities.Message{}, err
	}
	return entities.Message{Subject: subject, HTMLBody: html.String(), TextBody: text.String()}, nil
}

func (r *renderer) renderDigest(n entities.Notification) (entities.Message, error) {
	var body bytes.Buffer
	if err := r.markdown.Convert([]byte(n.DigestBody), &body); err != nil {
		return entities.Message{}, err
	}

	var html bytes.Buffer
	err := r.digestHTML.Execute(&html, map[string]interface{}{
		// goldmark drops raw HTML from the markdown unless WithUnsafe is set
		"Body":      htmltemplate.HTML(body.String()),
		"Signature": Signature,
	})
	if err != nil {
		return entities.Message{}, err
	}

	subject := digestSubject
	if n.Date != "" {
		subject += " (" + n.Date + ")"
	}
	return entities.Message{Subject: subject, HTMLBody: html.String(), TextBody: n.DigestBody}, nil
}

func greeting(name string) string {
	if strings.TrimSpace(name) == "" || strings.EqualFold(name, "unassigned") {
		return ""
	}
	return name
}
