package recipient

import "context"

type Repository interface {
	ListRecipients(ctx context.Context) ([]Recipient, error)
	GetRecipientByID(ctx context.Context, id int64) (*Recipient, error)
	// CreateRecipient returns ErrUnknownHospital when the hospital reference is dangling.
	CreateRecipient(ctx context.Context, recipient *Recipient) error
}
