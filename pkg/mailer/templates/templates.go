package templates

import (
	"bytes"
	"embed"
	"strings"
	texttpl "text/template"
	"time"

	htmpl "html/template"
)

//go:embed *.tmpl
var FS embed.FS

// Template names.
const (
	ConfirmRegistration = "confirm_registration"
	ResetPassword       = "reset_password"
)

// EmailData carries the fields the two templates render.
type EmailData struct {
	Name        string `json:"Name"`
	Email       string `json:"Email"`
	CompanyName string `json:"CompanyName"`
	LogoURL     string `json:"LogoURL"`
	SupportURL  string `json:"SupportURL"`

	// Action link (confirmation or reset) already carrying the token.
	ActionURL string `json:"ActionURL"`

	ExpiresAt time.Time `json:"ExpiresAt"`
	IP        string    `json:"IP"`
	Location  string    `json:"Location"`
	UserAgent string    `json:"UserAgent"`
}

func baseFuncs() map[string]any {
	return map[string]any{
		"now":        func() time.Time { return time.Now().UTC() },
		"formatTime": func(t time.Time, layout string) string { return t.Format(layout) },
		"upper":      strings.ToUpper,
	}
}

var (
	htmlFuncMap = htmpl.FuncMap(baseFuncs())
	textFuncMap = texttpl.FuncMap(baseFuncs())
)

// Subject returns the mail subject for a template name.
func Subject(name string) string {
	switch name {
	case ConfirmRegistration:
		return "Confirm your email address"
	case ResetPassword:
		return "Reset your password"
	}
	return "Notification"
}

// Render renders the HTML and plain-text bodies for the named template.
func Render(name string, data any) (html, text string, err error) {
	html, err = renderFile(name+".html.tmpl", true, data)
	if err != nil {
		return "", "", err
	}
	text, err = renderFile(name+".txt.tmpl", false, data)
	if err != nil {
		return "", "", err
	}
	return html, text, nil
}

func renderFile(filename string, isHTML bool, data any) (string, error) {
	var buf bytes.Buffer
	if isHTML {
		t, err := htmpl.New(filename).Funcs(htmlFuncMap).ParseFS(FS, filename)
		if err != nil {
			return "", err
		}
		if err := t.Execute(&buf, data); err != nil {
			return "", err
		}
	} else {
		t, err := texttpl.New(filename).Funcs(textFuncMap).ParseFS(FS, filename)
		if err != nil {
			return "", err
		}
		if err := t.Execute(&buf, data); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
