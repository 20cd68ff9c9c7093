package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"

	"github.com/phenrril/bfguitars/internal/domain"
)

type captureSender struct {
	sent []*mail.Msg
	err  error
}

func (c *captureSender) DialAndSendWithContext(_ context.Context, msgs ...*mail.Msg) error {
	c.sent = append(c.sent, msgs...)
	return c.err
}

func render(t *testing.T, msg *mail.Msg) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestMailer_DIYOrder(t *testing.T) {
	c := &captureSender{}
	m := &Mailer{from: "shop@example.com", to: "builds@example.com", client: c}
	text := "Ana"

	require.NoError(t, m.DIYOrderReceived(context.Background(), domain.DIYOrder{
		Type: "bass", NeckMaterial: "maple", BodyMaterial: "ash", Color: "blue", Engraving: 1, EngravingText: &text,
	}))

	require.Len(t, c.sent, 1)
	out := render(t, c.sent[0])
	assert.Contains(t, out, "Subject: New DIY guitar request")
	assert.Contains(t, out, "builds@example.com")
	assert.Contains(t, out, `Engraving: "Ana"`)
}

func TestMailer_FeedbackSendError(t *testing.T) {
	c := &captureSender{err: errors.New("smtp down")}
	m := &Mailer{from: "shop@example.com", to: "builds@example.com", client: c}

	err := m.FeedbackReceived(context.Background(), domain.Feedback{Name: "Lee", Feedback: "Nice"})
	assert.EqualError(t, err, "smtp down")
}

func TestMailer_BadAddress(t *testing.T) {
	m := &Mailer{from: "not an address", to: "x@example.com", client: &captureSender{}}
	err := m.FeedbackReceived(context.Background(), domain.Feedback{Name: "Lee", Feedback: "Nice"})
	assert.Error(t, err)
}

func TestDIYBody_NoEngraving(t *testing.T) {
	assert.Contains(t, diyBody(domain.DIYOrder{Type: "acoustic"}), "Engraving: none")
}
