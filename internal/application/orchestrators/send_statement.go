package orchestrators

import (
	"context"
	"log/slog"

	"physionomie/internal/adapters/email"
	"physionomie/internal/application/reports"
	"physionomie/internal/domain/stats"
)

// SendStatementInput identifies the therapist and day to report on.
type SendStatementInput struct {
	TherapistID string
	Date        string
}

// SendStatementDeps holds dependencies for SendStatement. From and ReplyTo
// may be empty; the sender then falls back to its own defaults.
type SendStatementDeps struct {
	Roster  RosterStoreForSeed
	Ledger  LedgerStoreForActivity
	Sender  email.Sender
	From    string
	ReplyTo string
}

// ExecuteSendStatement emails the therapist their bonus statement for the
// given day, with lifetime totals attached.
// POST: Returns the provider message id on success
func ExecuteSendStatement(ctx context.Context, input SendStatementInput, deps SendStatementDeps) (string, error) {
	roster, _, err := deps.Roster.Load(ctx)
	if err != nil {
		return "", err
	}

	idx := -1
	for i := range roster {
		if roster[i].ID == input.TherapistID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", ErrTherapistNotFound
	}
	tp := roster[idx]

	ledger, _, err := deps.Ledger.Load(ctx)
	if err != nil {
		return "", err
	}
	daily := stats.Daily(ledger.For(input.Date, tp.ID))
	lifetime := stats.Lifetime(ledger, tp.ID)

	statement, err := reports.BuildStatement(tp, input.Date, daily, lifetime)
	if err != nil {
		return "", err
	}

	result, err := deps.Sender.Send(ctx, email.SendRequest{
		To:      []string{tp.Email},
		From:    deps.From,
		ReplyTo: deps.ReplyTo,
		Subject: statement.Subject,
		HTML:    statement.HTML,
	})
	if err != nil {
		return "", err
	}

	slog.Info("statement_sent", "therapist_id", tp.ID, "date", input.Date, "message_id", result.MessageID)
	return result.MessageID, nil
}
