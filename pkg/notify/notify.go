package notify

import (
	"errors"
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Notifier delivers payout notices to asset owners after a settlement
// commits. Delivery is best-effort and never affects the settlement itself.
type Notifier interface {
	SendPayoutNotice(toEmail, assetTitle string, credits, unitPrice, forwarded int64) error
}

type sendgridNotifier struct {
	client      *sendgrid.Client
	senderEmail string
	senderName  string
}

func NewSendgridNotifier() Notifier {
	return &sendgridNotifier{
		client:      sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY")),
		senderEmail: os.Getenv("SENDGRID_SENDER_EMAIL"),
		senderName:  os.Getenv("SENDGRID_SENDER_NAME"),
	}
}

func (n *sendgridNotifier) SendPayoutNotice(toEmail, assetTitle string, credits, unitPrice, forwarded int64) error {
	from := mail.NewEmail(n.senderName, n.senderEmail)
	to := mail.NewEmail("", toEmail)

	subject := fmt.Sprintf("Access rights sold: %s", assetTitle)
	plain := fmt.Sprintf("%d access credit(s) for %q were purchased at unit price %d. %d was forwarded to your account.", credits, assetTitle, unitPrice, forwarded)
	html := fmt.Sprintf("<p>%d access credit(s) for <strong>%s</strong> were purchased at unit price %d.</p><p>%d was forwarded to your account.</p>", credits, assetTitle, unitPrice, forwarded)

	message := mail.NewSingleEmail(from, subject, to, plain, html)
	resp, err := n.client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return errors.New("failed to send payout notice")
	}
	return nil
}
