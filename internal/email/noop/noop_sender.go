package noop

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"brushquote/internal/port"
)

type noopSender struct {
	frontendURL string
}

// NewNoopSender creates a no-op EmailSender that logs proposal URLs to stdout.
func NewNoopSender(frontendURL string) port.EmailSender {
	return &noopSender{frontendURL: frontendURL}
}

func (s *noopSender) SendProposalReadyEmail(_ context.Context, toEmail, toName string, proposalID uuid.UUID) error {
	proposalURL := fmt.Sprintf("%s/proposals/%s", s.frontendURL, proposalID)
	log.Printf("[NOOP EMAIL] Proposal ready for %s (%s): %s", toName, toEmail, proposalURL)
	return nil
}
