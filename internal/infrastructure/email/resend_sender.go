// Package email sends member-facing transactional mail through Resend.
package email

import (
	"context"
	"fmt"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"

	"github.com/flightdesk/flightdesk-api/internal/application/ports"
	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
)

var _ ports.Notifier = (*ResendNotifier)(nil)

// ResendNotifier implements ports.Notifier over the Resend API.
type ResendNotifier struct {
	client *resend.Client
	from   string
}

// NewResendNotifier builds the notifier. from must be a verified sender
// address, e.g. "Flight Desk <billing@example.org>".
func NewResendNotifier(apiKey, from string) *ResendNotifier {
	return &ResendNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// InvoiceIssued mails the member that an invoice is awaiting payment.
func (n *ResendNotifier) InvoiceIssued(ctx context.Context, to, name string, inv *entity.Invoice) error {
	subject := fmt.Sprintf("Invoice %s", inv.Number)
	html := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Invoice <strong>%s</strong> for $%s has been issued and is due on %s.</p>
<p>You can view and download it from the member dashboard.</p>`,
		name, inv.Number, inv.TotalAmount.StringFixed(2), inv.DueDate.Format("2 January 2006"),
	)
	return n.send(ctx, to, subject, html)
}

// MembershipExpiring mails the member a renewal reminder.
func (n *ResendNotifier) MembershipExpiring(ctx context.Context, to, name string, expiry time.Time, daysLeft int) error {
	subject := "Your membership is expiring soon"
	html := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Your membership expires on <strong>%s</strong> (%d days from now).</p>
<p>Renew from the member dashboard to keep flying without interruption.</p>`,
		name, expiry.Format("2 January 2006"), daysLeft,
	)
	return n.send(ctx, to, subject, html)
}

// AuthorizationDecided mails the student the outcome of their flight
// authorization.
func (n *ResendNotifier) AuthorizationDecided(ctx context.Context, to, name string, auth *entity.FlightAuthorization) error {
	var subject, body string
	switch auth.Status {
	case entity.AuthorizationStatusApproved:
		subject = "Flight authorization approved"
		body = "<p>Your flight authorization has been <strong>approved</strong>. You are cleared to check out for your booking.</p>"
	case entity.AuthorizationStatusRejected:
		subject = "Flight authorization rejected"
		body = fmt.Sprintf(
			"<p>Your flight authorization was <strong>rejected</strong>.</p><p>Instructor's reason: %s</p><p>You can correct the form and resubmit.</p>",
			auth.RejectReason,
		)
	default:
		return nil
	}
	html := fmt.Sprintf("<p>Hi %s,</p>%s", name, body)
	return n.send(ctx, to, subject, html)
}

func (n *ResendNotifier) send(ctx context.Context, to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}
	sent, err := n.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	log.Debug().Str("message_id", sent.Id).Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}
