package email

import (
	"bytes"
	"strings"
	"testing"

	"github.com/crackit360/crackit360-api/internal/config"
)

func TestNewMailEncodesHeaders(t *testing.T) {
	m, err := newMail("noreply@crackit360.example", Message{
		To:      "asha@example.com",
		Subject: "Vérifiez votre e-mail",
		HTML:    "<p>hi</p>",
	})
	if err != nil {
		t.Fatalf("newMail: %v", err)
	}

	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "Vérifiez") {
		t.Errorf("non-ASCII subject written raw:\n%s", out)
	}
	if !strings.Contains(strings.ToLower(out), "subject: =?utf-8?") {
		t.Errorf("subject is not RFC 2047 encoded:\n%s", out)
	}
	if !strings.Contains(out, "text/html") {
		t.Errorf("missing html content type:\n%s", out)
	}
}

func TestNewMailRejectsBadRecipient(t *testing.T) {
	if _, err := newMail("noreply@crackit360.example", Message{To: "not an address"}); err == nil {
		t.Fatal("expected an error for a malformed recipient")
	}
}

func TestNewSender(t *testing.T) {
	if _, ok := NewSender(config.SMTPSettings{}).(LogSender); !ok {
		t.Errorf("disabled SMTP should log instead of sending")
	}
	if _, ok := NewSender(config.SMTPSettings{Enabled: true, Server: "smtp.example", Port: 587}).(*SMTPSender); !ok {
		t.Errorf("enabled SMTP should return an SMTPSender")
	}
}
