package mailer

import (
	"encoding/json"

	"github.com/oksasatya/go-exercise-tracker/pkg/mailer/templates"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (with Data) or Subject with Text/HTML must be set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "welcome", "achievement_unlocked"
	Data     map[string]any `json:"data,omitempty"`
}

// NewTemplateJob builds a job rendered by the worker from one of the embedded templates.
func NewTemplateJob(to, template string, data templates.Data) EmailJob {
	return EmailJob{To: to, Template: template, Data: toMap(data)}
}

func toMap(d templates.Data) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}
