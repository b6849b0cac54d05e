package mailer

import "github.com/CamiloTello002/Talent-Trade/pkg/mailer/templates"

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Template names one of the templates package templates; the worker renders
// subject/text/html from Data.
type EmailJob struct {
	To       string              `json:"to"`
	Template string              `json:"template"`
	Data     templates.EmailData `json:"data"`
}
