package service

import (
	"fmt"
	"strings"

	"workhub"
	"workhub/internal/api/models"

	"github.com/rs/zerolog"
	gomail "github.com/wneessen/go-mail"
)

type EmailMessage struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
	IsHTML  bool     `json:"isHtml"`
}

type MailService struct {
	logger zerolog.Logger
}

func NewMailService() *MailService {
	return &MailService{logger: workhub.Logger}
}

// SendInternal sends an email using application-level SMTP config from .env.
// It uses SMTP_FROM as the sender address (falls back to SMTP_USERNAME).
func (slf *MailService) SendInternal(msg EmailMessage) error {
	cfg := workhub.GetConfig().SmtpConfig
	if cfg.Host == "" || cfg.Username == "" {
		return fmt.Errorf("internal SMTP not configured (SMTP_HOST / SMTP_USERNAME missing)")
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	m := gomail.NewMsg()
	if err := m.FromFormat(cfg.FromName, from); err != nil {
		return fmt.Errorf("failed to set from: %w", err)
	}
	if err := m.To(msg.To...); err != nil {
		return fmt.Errorf("failed to set to: %w", err)
	}

	m.Subject(msg.Subject)
	if msg.IsHTML {
		m.SetBodyString(gomail.TypeTextHTML, msg.Body)
	} else {
		m.SetBodyString(gomail.TypeTextPlain, msg.Body)
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Password != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}
	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	slf.logger.Info().Strs("to", msg.To).Str("subject", msg.Subject).Msg("Internal email sent")
	return nil
}

// IsInternalSmtpConfigured returns true when the app-level SMTP settings are filled in
func (slf *MailService) IsInternalSmtpConfigured() bool {
	cfg := workhub.GetConfig().SmtpConfig
	return cfg.Host != "" && cfg.Username != ""
}

// SendIncidentAlert notifies every team manager about a newly reported
// incident. Delivery is best-effort; the incident itself is already stored.
func (slf *MailService) SendIncidentAlert(incident models.Incident, reporter models.User, managers []models.User) error {
	to := make([]string, 0, len(managers))
	for _, manager := range managers {
		if manager.Email != "" {
			to = append(to, manager.Email)
		}
	}
	if len(to) == 0 {
		return fmt.Errorf("no manager with an email address on team %d", incident.TeamID)
	}

	return slf.SendInternal(EmailMessage{
		To:      to,
		Subject: fmt.Sprintf("[%s] Incident reported by %s", strings.ToUpper(incident.Severity), reporter.FullName),
		Body:    IncidentAlertBody(incident, reporter),
		IsHTML:  true,
	})
}

// SendWorkerRegistration mails a newly invited worker their temporary
// password. The account carries force_reset until the first password change.
func (slf *MailService) SendWorkerRegistration(worker models.User, tempPassword string) error {
	return slf.SendInternal(EmailMessage{
		To:      []string{worker.Email},
		Subject: "Your WorkHub account",
		Body:    RegistrationBody(worker, tempPassword),
		IsHTML:  true,
	})
}

func IncidentAlertBody(incident models.Incident, reporter models.User) string {
	var b strings.Builder
	b.WriteString("<h2>Incident report</h2>")
	b.WriteString(fmt.Sprintf("<p><b>Severity:</b> %s</p>", incident.Severity))
	b.WriteString(fmt.Sprintf("<p><b>Reported by:</b> %s (%s)</p>", reporter.FullName, reporter.Email))
	b.WriteString(fmt.Sprintf("<p>%s</p>", incident.Description))
	if incident.ImageURL != "" {
		b.WriteString(fmt.Sprintf(`<p><a href="%s">Attached photo</a></p>`, incident.ImageURL))
	}
	b.WriteString(fmt.Sprintf("<p><i>Reported at %s</i></p>", incident.CreatedAt.Format("2006-01-02 15:04")))
	return b.String()
}

func RegistrationBody(worker models.User, tempPassword string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<h2>Welcome, %s</h2>", worker.FullName))
	b.WriteString("<p>A WorkHub account has been created for you by your manager.</p>")
	b.WriteString(fmt.Sprintf("<p><b>Login:</b> %s<br><b>Temporary password:</b> %s</p>", worker.Email, tempPassword))
	b.WriteString("<p>You will be asked to choose a new password on first login.</p>")
	return b.String()
}
