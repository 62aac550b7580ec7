package email

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/resend/resend-go/v2"

	"github.com/spendsync/backend/internal/application/adapter"
	domainerror "github.com/spendsync/backend/internal/domain/error"
)

// ResendClient sends operator mail through the Resend API.
type ResendClient struct {
	client *resend.Client
	from   string
}

func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		client: resend.NewClient(apiKey),
		from:   fmt.Sprintf("%s <%s>", fromName, fromEmail),
	}
}

func (c *ResendClient) Send(ctx context.Context, email adapter.OutboundEmail) (string, error) {
	req := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{email.To},
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	}
	if email.Reference != "" {
		req.Headers = map[string]string{"X-Entity-Ref-ID": email.Reference}
	}

	resp, err := c.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return "", classifySendError(err)
	}
	return resp.Id, nil
}

// Resend reports API failures as plain errors carrying the HTTP status and
// message text, so classification matches on the text.
var rejectionMarkers = []string{
	"401", "403", "422",
	"unauthorized", "forbidden", "validation", "invalid", "bad request",
}

func classifySendError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domainerror.NewEmailError(domainerror.ErrCodeDeliveryFailed, "resend", err)
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range rejectionMarkers {
		if strings.Contains(msg, marker) {
			return domainerror.NewEmailError(domainerror.ErrCodeDeliveryRejected, "resend",
				fmt.Errorf("%w: %v", domainerror.ErrDeliveryRejected, err))
		}
	}
	return domainerror.NewEmailError(domainerror.ErrCodeDeliveryFailed, "resend",
		fmt.Errorf("%w: %v", domainerror.ErrDeliveryUnavailable, err))
}

// MockEmailSender records outgoing mail instead of sending it.
type MockEmailSender struct {
	mu      sync.Mutex
	sent    []adapter.OutboundEmail
	failErr error
}

func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

func (m *MockEmailSender) Send(_ context.Context, email adapter.OutboundEmail) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		return "", classifySendError(m.failErr)
	}
	m.sent = append(m.sent, email)
	return fmt.Sprintf("mock-%d", len(m.sent)), nil
}

// SetFailure makes every following Send fail with err, classified the way
// a Resend error with the same text would be.
func (m *MockEmailSender) SetFailure(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}

func (m *MockEmailSender) ClearFailure() {
	m.SetFailure(nil)
}

// Sent returns a copy of the recorded emails.
func (m *MockEmailSender) Sent() []adapter.OutboundEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]adapter.OutboundEmail(nil), m.sent...)
}

var (
	_ adapter.EmailSender = (*ResendClient)(nil)
	_ adapter.EmailSender = (*MockEmailSender)(nil)
)
