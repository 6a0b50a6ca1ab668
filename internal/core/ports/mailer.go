package ports

import "context"

// Mailer dispatches outbound messages. Implementations must never log or
// otherwise expose the code beyond the recipient's mailbox.
type Mailer interface {
	SendVerificationCode(ctx context.Context, to, code string) error
}
