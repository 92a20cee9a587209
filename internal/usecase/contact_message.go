package usecase

import (
	"bytes"
	"fmt"
	"html"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"dental-smile-backend/internal/domain"
)

// Fallback literals rendered for optional fields left empty.
const (
	FallbackEmail   = "Not specified"
	FallbackService = "Not selected"
	FallbackMessage = "Not specified"
)

// SubmittedAtLayout renders timestamps the way the clinic staff reads them.
const SubmittedAtLayout = "02.01.2006, 15:04:05"

const emailBodyTemplate = `<h2>🦷 New request from the {{.Site}} website</h2>
<hr>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Service:</strong> {{.Service}}</p>
<p><strong>Message:</strong></p>
<p>{{.Message}}</p>
<hr>
<p><small>Sent: {{.SubmittedAt}}</small></p>
`

const chatTemplate = `<b>🦷 New request from the {{esc .Site}} website!</b>

<b>Name:</b> {{esc .Name}}
<b>Phone:</b> {{esc .Phone}}
<b>Email:</b> {{esc .Email}}
<b>Service:</b> {{esc .Service}}
<b>Message:</b> {{esc .Message}}

<i>📅 {{.SubmittedAt}}</i>`

var (
	emailTmpl = htmltemplate.Must(htmltemplate.New("email").Parse(emailBodyTemplate))
	chatTmpl  = texttemplate.Must(texttemplate.New("chat").Funcs(texttemplate.FuncMap{
		"esc": html.EscapeString,
	}).Parse(chatTemplate))
)

// messageView is a submission with fallbacks applied.
type messageView struct {
	Site        string
	Name        string
	Phone       string
	Email       string
	Service     string
	Message     string
	SubmittedAt string
}

func newMessageView(site string, req *domain.ContactRequest, submittedAt time.Time) messageView {
	return messageView{
		Site:        site,
		Name:        strings.TrimSpace(req.Name),
		Phone:       strings.TrimSpace(req.Phone),
		Email:       orFallback(req.Email, FallbackEmail),
		Service:     orFallback(req.Service, FallbackService),
		Message:     orFallback(req.Message, FallbackMessage),
		SubmittedAt: submittedAt.Format(SubmittedAtLayout),
	}
}

func orFallback(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

// renderEmail builds the HTML email for a submission. Values are escaped by
// html/template.
func renderEmail(v messageView) (domain.EmailMessage, error) {
	var body bytes.Buffer
	if err := emailTmpl.Execute(&body, v); err != nil {
		return domain.EmailMessage{}, fmt.Errorf("failed to execute email template: %w", err)
	}

	// Subject is a header: collapse any line breaks a caller smuggled in.
	subject := strings.Join(strings.Fields(fmt.Sprintf("🦷 New request: %s - %s", v.Name, v.Phone)), " ")

	return domain.EmailMessage{
		Subject:  subject,
		HTMLBody: body.String(),
	}, nil
}

// renderChat builds the Telegram HTML message for a submission.
func renderChat(v messageView) (string, error) {
	var text bytes.Buffer
	if err := chatTmpl.Execute(&text, v); err != nil {
		return "", fmt.Errorf("failed to execute chat template: %w", err)
	}
	return text.String(), nil
}
