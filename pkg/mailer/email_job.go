package mailer

// Template names understood by the notification worker.
const (
	TemplateWelcome              = "welcome"
	TemplateAccountStatusChanged = "account_status_changed"
	TemplateAppointmentBooked    = "appointment_booked"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending
// email. Text/HTML may be set directly, or Template+Data used to render
// one of the known clinic notifications in the worker.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}
