package notifier

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	texttemplate "text/template"

	gopkgmail "gopkg.in/gomail.v2"
)

//go:embed templates/*.html templates/*.txt
var templatesFS embed.FS

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// EmailSender envía los correos del Libro de Reclamaciones por SMTP con
// alternativa texto plano.
type EmailSender struct {
	cfg  SMTPConfig
	html *template.Template
	text *texttemplate.Template
}

func NewEmailSender(cfg SMTPConfig) (*EmailSender, error) {
	html, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}
	text, err := texttemplate.ParseFS(templatesFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("parse text templates: %w", err)
	}
	return &EmailSender{cfg: cfg, html: html, text: text}, nil
}

type mailData struct {
	Nombre string
	Cuerpo string
	Meta   map[string]string
}

func (s *EmailSender) Send(ctx context.Context, to, nombre, asunto, cuerpo string, meta map[string]string) error {
	data := mailData{Nombre: nombre, Cuerpo: cuerpo, Meta: meta}

	var htmlBuf bytes.Buffer
	if err := s.html.ExecuteTemplate(&htmlBuf, "respuesta.html", data); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	var textBuf bytes.Buffer
	if err := s.text.ExecuteTemplate(&textBuf, "respuesta.txt", data); err != nil {
		return fmt.Errorf("render plain: %w", err)
	}

	m := gopkgmail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetAddressHeader("To", to, nombre)
	m.SetHeader("Subject", asunto)
	m.SetBody("text/plain", textBuf.String())
	m.AddAlternative("text/html", htmlBuf.String())

	d := gopkgmail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	d.SSL = s.cfg.Port == 465

	done := make(chan error, 1)
	go func() { done <- d.DialAndSend(m) }()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
