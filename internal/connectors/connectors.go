package connectors

import "packlens/internal"

// MailConnector pulls raw messages from a buyer-facing mailbox.
type MailConnector interface {
	FetchInbox(label string, max int) ([]internal.FetchedMailMessage, error)
}
