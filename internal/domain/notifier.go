package domain

import "context"

type ApplicationNotice struct {
	ApplicationID  string
	CandidateName  string
	CandidateEmail string
	JobTitle       string
}

// Notifier delivers application e-mails. Delivery is best-effort: callers log
// failures and carry on.
type Notifier interface {
	NotifyApplicationReceived(ctx context.Context, notice ApplicationNotice) error
}
