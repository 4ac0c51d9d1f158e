// Package relay implements the mail relay service: a small HTTP API that
// accepts rendered messages from the portal and submits them to an outbound
// mail transport, either a transactional-mail HTTP provider or plain SMTP.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/smtp"
	"strconv"
	"strings"
)

// Sender submits one rendered message to an outbound mail transport.
type Sender interface {
	Send(ctx context.Context, toEmail, subject, htmlContent string) error
}

// APISender submits messages through a Brevo-compatible transactional-mail
// HTTP API, authenticated with an api-key header.
type APISender struct {
	url         string
	apiKey      string
	senderEmail string
	senderName  string
	client      *http.Client
}

func NewAPISender(url, apiKey, senderEmail, senderName string) *APISender {
	return &APISender{
		url:         url,
		apiKey:      apiKey,
		senderEmail: senderEmail,
		senderName:  senderName,
		client:      &http.Client{},
	}
}

type apiParty struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type apiRequest struct {
	Sender      apiParty   `json:"sender"`
	To          []apiParty `json:"to"`
	Subject     string     `json:"subject"`
	HTMLContent string     `json:"htmlContent"`
}

func (s *APISender) Send(ctx context.Context, toEmail, subject, htmlContent string) error {
	body, err := json.Marshal(apiRequest{
		Sender:      apiParty{Email: s.senderEmail, Name: s.senderName},
		To:          []apiParty{{Email: toEmail}},
		Subject:     subject,
		HTMLContent: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("marshal provider request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build provider request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("provider request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("email provider error: %d", resp.StatusCode)
	}
	return nil
}

// SMTPSender submits messages over plain SMTP with optional AUTH PLAIN.
// With SendGrid the username is the literal "apikey" and the password is the
// API key itself.
type SMTPSender struct {
	host        string
	port        int
	user        string
	password    string
	senderEmail string
	senderName  string

	// sendMail is a test seam around smtp.SendMail.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(host string, port int, user, password, senderEmail, senderName string) *SMTPSender {
	return &SMTPSender{
		host:        host,
		port:        port,
		user:        user,
		password:    password,
		senderEmail: senderEmail,
		senderName:  senderName,
		sendMail:    smtp.SendMail,
	}
}

func (s *SMTPSender) Send(_ context.Context, toEmail, subject, htmlContent string) error {
	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", headerSafe(s.senderName), s.senderEmail)
	fmt.Fprintf(&msg, "To: %s\r\n", toEmail)
	fmt.Fprintf(&msg, "Subject: %s\r\n", headerSafe(subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlContent)

	var auth smtp.Auth
	if s.user != "" {
		auth = smtp.PlainAuth("", s.user, s.password, s.host)
	}

	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	if err := s.sendMail(addr, auth, s.senderEmail, []string{toEmail}, msg.Bytes()); err != nil {
		return fmt.Errorf("smtp submit: %w", err)
	}
	return nil
}

// headerSafe strips CR/LF so user-provided values cannot inject headers.
func headerSafe(v string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(v)
}
