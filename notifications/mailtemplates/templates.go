package mailtemplates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"strings"
	texttemplate "text/template"

	"github.com/opencamp-hq/backend/notifications"
)

//go:embed assets
var assets embed.FS

// availableTemplates maps every template key to its raw HTML content. The key
// is the filename without the extension.
var availableTemplates map[TemplateKey]string

// TemplateKey identifies an email template.
type TemplateKey string

// MailTemplate struct represents an email template. It includes the template
// key and the notification placeholder to be sent. The placeholder carries
// the subject and the plain body template used as a fallback for email
// clients that do not support HTML.
type MailTemplate struct {
	Key         TemplateKey
	Placeholder notifications.Notification
}

// Load reads the embedded email templates and makes them available to
// ExecTemplate.
func Load() error {
	htmlFiles := make(map[TemplateKey]string)
	if err := fs.WalkDir(assets, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		// only process regular files with a ".html" extension
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			return nil
		}
		content, err := assets.ReadFile(path)
		if err != nil {
			return err
		}
		key := strings.TrimSuffix(entry.Name(), ".html")
		htmlFiles[TemplateKey(key)] = string(content)
		return nil
	}); err != nil {
		return err
	}
	availableTemplates = htmlFiles
	return nil
}

// Available returns the loaded template keys.
func Available() map[TemplateKey]string {
	return availableTemplates
}

// ExecTemplate checks that the template exists in the available mail
// templates and executes it with the data provided. The subject and the plain
// body placeholders are executed as text templates with the same data. It
// returns a notification with the subject, body and plain body filled in.
func (mt MailTemplate) ExecTemplate(data any) (*notifications.Notification, error) {
	content, ok := availableTemplates[mt.Key]
	if !ok {
		return nil, fmt.Errorf("template not found")
	}
	n := &notifications.Notification{}
	// inflate the HTML template with the data
	tmpl, err := htmltemplate.New(string(mt.Key)).Parse(content)
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, data); err != nil {
		return nil, err
	}
	n.Body = buf.String()
	// subject and plain body are plain text templates
	subject, err := execTextTemplate(mt.Placeholder.Subject, data)
	if err != nil {
		return nil, err
	}
	n.Subject = subject
	plain, err := execTextTemplate(mt.Placeholder.PlainBody, data)
	if err != nil {
		return nil, err
	}
	n.PlainBody = plain
	return n, nil
}

func execTextTemplate(raw string, data any) (string, error) {
	if raw == "" {
		return "", nil
	}
	tmpl, err := texttemplate.New("text").Parse(raw)
	if err != nil {
		return "", err
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
