package mailer

import (
	"fmt"
	"strings"
)

// SubjectFor returns the subject line for a templated job. Jobs with an
// explicit Subject keep it.
func SubjectFor(job *EmailJob, clinicName string) string {
	if job.Subject != "" {
		return job.Subject
	}
	switch strings.ToLower(job.Template) {
	case TemplateWelcome:
		return fmt.Sprintf("Welcome to %s", clinicName)
	case TemplateAccountStatusChanged:
		return fmt.Sprintf("Your %s account status changed", clinicName)
	case TemplateAppointmentBooked:
		return "Your appointment is booked"
	default:
		return "Notification"
	}
}

// RenderText renders the plain-text body for a templated job. Jobs with
// an explicit Text body keep it.
func RenderText(job *EmailJob, clinicName string) string {
	if job.Text != "" {
		return job.Text
	}
	name := str(job.Data, "Name")
	switch strings.ToLower(job.Template) {
	case TemplateWelcome:
		return fmt.Sprintf(
			"Hi %s,\n\nYour %s account has been created with the role %s.\nYou can now sign in and access your dashboard.\n\n%s",
			name, clinicName, str(job.Data, "Role"), clinicName)
	case TemplateAccountStatusChanged:
		return fmt.Sprintf(
			"Hi %s,\n\nThe status of your account is now: %s.\nIf you believe this is a mistake, contact the clinic administration.\n\n%s",
			name, str(job.Data, "Status"), clinicName)
	case TemplateAppointmentBooked:
		return fmt.Sprintf(
			"Hi %s,\n\nAn appointment with %s has been booked for %s.\n\n%s",
			name, str(job.Data, "DoctorName"), str(job.Data, "ScheduledAt"), clinicName)
	default:
		return "You have a new notification from " + clinicName + "."
	}
}

func str(data map[string]any, key string) string {
	if data == nil {
		return ""
	}
	if v, ok := data[key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}
