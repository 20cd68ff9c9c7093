// Package notify emails the shop when a DIY order or feedback arrives.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"

	"github.com/phenrril/bfguitars/internal/config"
	"github.com/phenrril/bfguitars/internal/domain"
)

type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type Mailer struct {
	from   string
	to     string
	client sender
}

func NewMailer(cfg config.SMTP) (*Mailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.User),
			mail.WithPassword(cfg.Password),
		)
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	from := cfg.From
	if from == "" {
		from = cfg.To
	}
	return &Mailer{from: from, to: cfg.To, client: client}, nil
}

func (m *Mailer) DIYOrderReceived(ctx context.Context, o domain.DIYOrder) error {
	msg, err := m.message("New DIY guitar request", diyBody(o))
	if err != nil {
		return err
	}
	log.Ctx(ctx).Info().Str("type", o.Type).Msg("mailing diy order")
	return m.client.DialAndSendWithContext(ctx, msg)
}

func (m *Mailer) FeedbackReceived(ctx context.Context, f domain.Feedback) error {
	msg, err := m.message("New feedback from "+f.Name, f.Name+" wrote:\n\n"+f.Feedback+"\n")
	if err != nil {
		return err
	}
	return m.client.DialAndSendWithContext(ctx, msg)
}

func (m *Mailer) message(subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(m.to); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}

func diyBody(o domain.DIYOrder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Type: %s\n", o.Type)
	fmt.Fprintf(&b, "Neck: %s\n", o.NeckMaterial)
	fmt.Fprintf(&b, "Body: %s\n", o.BodyMaterial)
	fmt.Fprintf(&b, "Color: %s\n", o.Color)
	if o.Engraved() && o.EngravingText != nil {
		fmt.Fprintf(&b, "Engraving: %q\n", *o.EngravingText)
	} else {
		b.WriteString("Engraving: none\n")
	}
	return b.String()
}
