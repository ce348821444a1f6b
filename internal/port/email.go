package port

import (
	"context"

	"github.com/google/uuid"
)

// EmailSender abstracts outbound notification email.
type EmailSender interface {
	// SendProposalReadyEmail notifies the client contact that their
	// proposal finished generating and can be viewed.
	SendProposalReadyEmail(ctx context.Context, toEmail, toName string, proposalID uuid.UUID) error
}
