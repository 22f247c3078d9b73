package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

var contactTemplate = template.Must(template.New("contact").Parse(`<h2>New contact form submission</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Message:</strong></p>
<p style="white-space: pre-wrap">{{.Message}}</p>
<p style="color:#888">Received {{.ReceivedAt}}</p>`))

type ContactMessage struct {
	Name    string
	Email   string
	Message string
}

// EmailService forwards contact form submissions to the site owner through Resend.
type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	to       string
	logger   *zap.Logger
}

// DefaultSendTimeout bounds a single Resend API call.
const DefaultSendTimeout = 10 * time.Second

type emailOptions struct {
	timeout time.Duration
	baseURL string
}

type EmailOption func(*emailOptions)

func WithSendTimeout(d time.Duration) EmailOption {
	return func(o *emailOptions) {
		o.timeout = d
	}
}

// WithBaseURL points the client at another Resend API base.
func WithBaseURL(u string) EmailOption {
	return func(o *emailOptions) {
		o.baseURL = u
	}
}

func NewEmailService(apiKey, from, fromName, to string, logger *zap.Logger, opts ...EmailOption) (*EmailService, error) {
	o := emailOptions{timeout: DefaultSendTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	client := resend.NewCustomClient(&http.Client{Timeout: o.timeout}, apiKey)
	if o.baseURL != "" {
		u, err := url.Parse(o.baseURL)
		if err != nil {
			return nil, fmt.Errorf("parse resend base url: %w", err)
		}
		client.BaseURL = u
	}

	return &EmailService{
		client:   client,
		from:     from,
		fromName: fromName,
		to:       to,
		logger:   logger.Named("email"),
	}, nil
}

// NotifyContact returns as soon as ctx is done; an abandoned send is still bounded by the client timeout.
func (s *EmailService) NotifyContact(ctx context.Context, msg ContactMessage) error {
	html, err := renderContact(msg, time.Now())
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{s.to},
		Subject: fmt.Sprintf("New contact from %s", msg.Name),
		Html:    html,
	}

	type sendResult struct {
		id  string
		err error
	}
	done := make(chan sendResult, 1)
	go func() {
		resp, err := s.client.Emails.Send(params)
		if err != nil {
			done <- sendResult{err: err}
			return
		}
		done <- sendResult{id: resp.Id}
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("send contact notification: %w", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return fmt.Errorf("send contact notification: %w", res.err)
		}
		s.logger.Info("contact notification sent", zap.String("id", res.id), zap.String("to", s.to))
		return nil
	}
}

func renderContact(msg ContactMessage, receivedAt time.Time) (string, error) {
	var body bytes.Buffer
	err := contactTemplate.Execute(&body, struct {
		ContactMessage
		ReceivedAt string
	}{msg, receivedAt.UTC().Format(time.RFC1123)})
	if err != nil {
		return "", fmt.Errorf("render contact template: %w", err)
	}
	return body.String(), nil
}
