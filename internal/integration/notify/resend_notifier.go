// Package notify implements the alert notifier adapter with Resend.
package notify

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/pocketledger/backend/internal/application/adapter"
)

// resendNotifier implements the adapter.AlertNotifier interface.
type resendNotifier struct {
	client    *resend.Client
	fromName  string
	fromEmail string
}

// NewResendNotifier creates a Resend-backed alert notifier.
func NewResendNotifier(apiKey, fromName, fromEmail string) adapter.AlertNotifier {
	return &resendNotifier{
		client:    resend.NewClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// NotifyBudgetExceeded sends a budget overrun email.
func (n *resendNotifier) NotifyBudgetExceeded(ctx context.Context, alert adapter.BudgetAlert) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", n.fromName, n.fromEmail),
		To:      []string{alert.UserEmail},
		Subject: fmt.Sprintf("Budget exceeded: %s", alert.CategoryName),
		Html: fmt.Sprintf(
			"<p>Your %s budget for <strong>%s</strong> has been exceeded.</p>"+
				"<p>Spent: %s of %s.</p>",
			alert.Period, alert.CategoryName, alert.Spent.StringFixed(2), alert.Limit.StringFixed(2),
		),
	}
	if _, err := n.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send budget alert: %w", err)
	}
	return nil
}
