package collaborator

import (
	"context"
	"errors"
	"log/slog"

	"github.com/valyala/fasttemplate"
)

const welcomeSubject = "Welcome to TechStep - Your SOC Analyst Journey Begins!"

const welcomeBody = `Hi {{name}},

Welcome to TechStep Foundation! Your enrollment in {{course}} has been confirmed.

Course Access: {{portal}}

Your journey to becoming a cybersecurity professional starts now!

Best regards,
The TechStep Team
`

var ErrMissingRecipient = errors.New("e-mail do destinatário ausente")

// Message é o e-mail já renderizado.
type Message struct {
	To      string
	Subject string
	Body    string
}

// LogNotifier renderiza o e-mail de boas-vindas e registra o envio em log.
// Um provedor de e-mail real entra aqui implementando Notifier.
type LogNotifier struct {
	portalURL string
	tmpl      *fasttemplate.Template
	courses   map[string]string
}

func NewLogNotifier(portalURL string) *LogNotifier {
	return &LogNotifier{
		portalURL: portalURL,
		tmpl:      fasttemplate.New(welcomeBody, "{{", "}}"),
		courses: map[string]string{
			"soc-analyst-foundations": "SOC Analyst Foundations",
		},
	}
}

// Render monta a mensagem sem enviar.
func (n *LogNotifier) Render(msg WelcomeEmail) (Message, error) {
	if msg.Email == "" {
		return Message{}, ErrMissingRecipient
	}

	course, ok := n.courses[msg.CourseID]
	if !ok {
		course = msg.CourseID
	}
	name := msg.Name
	if name == "" {
		name = "there"
	}

	body := n.tmpl.ExecuteString(map[string]interface{}{
		"name":   name,
		"course": course,
		"portal": n.portalURL,
	})
	return Message{To: msg.Email, Subject: welcomeSubject, Body: body}, nil
}

func (n *LogNotifier) SendWelcome(_ context.Context, msg WelcomeEmail) error {
	m, err := n.Render(msg)
	if err != nil {
		return err
	}
	slog.Info("E-mail de boas-vindas enviado", "to", m.To, "subject", m.Subject, "course_id", msg.CourseID)
	return nil
}
