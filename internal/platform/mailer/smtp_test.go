package mailer

import (
	"bytes"
	"context"
	"testing"

	"estatehub/contexts/engagement/notification-service/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("noreply@estatehub.test", ports.Email{
		To:      "admin@estatehub.test",
		Subject: "Property awaiting approval",
		Body:    `A new property "Lakeview Cottage" requires your approval.`,
	})

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "From: noreply@estatehub.test")
	assert.Contains(t, out, "To: admin@estatehub.test")
	assert.Contains(t, out, "Subject: Property awaiting approval")
	assert.Contains(t, out, "Lakeview Cottage")
}

func TestNewSMTPValidates(t *testing.T) {
	_, err := NewSMTP("", 465, "", "", "noreply@estatehub.test", nil)
	assert.Error(t, err)
	_, err = NewSMTP("smtp.example.com", 465, "", "", "", nil)
	assert.Error(t, err)

	s, err := NewSMTP("smtp.example.com", 465, "user", "pass", "noreply@estatehub.test", nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Send(ctx, ports.Email{To: "a@b.c"}), context.Canceled)
}

func TestLogMailerNeverFails(t *testing.T) {
	assert.NoError(t, Log{}.Send(context.Background(), ports.Email{To: "a@b.c", Subject: "s"}))
}
