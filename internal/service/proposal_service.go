package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"brushquote/internal/domain"
	"brushquote/internal/export"
	"brushquote/internal/form"
	"brushquote/internal/generator"
	"brushquote/internal/port"
)

// ProposalService defines the proposal draft contract: status observation,
// line-item export, and the worker-side generation step.
type ProposalService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error)
	List(ctx context.Context, offset, limit int) ([]domain.Proposal, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExportCSV(ctx context.Context, id uuid.UUID, w io.Writer) (string, error)
	ExportXLSX(ctx context.Context, id uuid.UUID, w io.Writer) (string, error)
	// GenerateProposal runs one generation attempt for a claimed draft.
	// The draft must already be in processing status with GenerateAttempts
	// incremented. Called by the queue worker.
	GenerateProposal(ctx context.Context, p *domain.Proposal, maxAttempts int)
}

type proposalService struct {
	proposalRepo port.ProposalRepository
	gen          port.ProposalGenerator
	email        port.EmailSender
}

// NewProposalService creates a new ProposalService implementation.
func NewProposalService(proposalRepo port.ProposalRepository, gen port.ProposalGenerator, email port.EmailSender) ProposalService {
	return &proposalService{
		proposalRepo: proposalRepo,
		gen:          gen,
		email:        email,
	}
}

func (s *proposalService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	return s.proposalRepo.GetByID(ctx, id)
}

func (s *proposalService) List(ctx context.Context, offset, limit int) ([]domain.Proposal, int, error) {
	return s.proposalRepo.List(ctx, offset, limit)
}

func (s *proposalService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.proposalRepo.Delete(ctx, id)
}

func (s *proposalService) exportEntries(ctx context.Context, id uuid.UUID) (*domain.Proposal, []export.Entry, error) {
	p, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if p.GenerationStatus != domain.GenerationStatusCompleted {
		return nil, nil, domain.ErrProposalNotCompleted
	}
	entries, err := export.CollectLineItems(p)
	if err != nil {
		return nil, nil, err
	}
	return p, entries, nil
}

func (s *proposalService) ExportCSV(ctx context.Context, id uuid.UUID, w io.Writer) (string, error) {
	p, entries, err := s.exportEntries(ctx, id)
	if err != nil {
		return "", err
	}

	if _, err := w.Write(export.BOM); err != nil {
		return "", fmt.Errorf("proposalService.ExportCSV: writing BOM: %w", err)
	}
	cw := export.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return "", fmt.Errorf("proposalService.ExportCSV: writing header: %w", err)
	}
	if err := cw.WriteEntries(entries); err != nil {
		return "", fmt.Errorf("proposalService.ExportCSV: writing rows: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("proposalService.ExportCSV: flushing: %w", err)
	}
	return export.BuildFilename(p.ClientName, "csv"), nil
}

func (s *proposalService) ExportXLSX(ctx context.Context, id uuid.UUID, w io.Writer) (string, error) {
	p, entries, err := s.exportEntries(ctx, id)
	if err != nil {
		return "", err
	}
	if err := export.WriteXLSX(w, entries); err != nil {
		return "", err
	}
	return export.BuildFilename(p.ClientName, "xlsx"), nil
}

// GenerateProposal builds the drafting input from the proposal's schema
// and value snapshot, calls the generator, and records the outcome. Rate
// limits requeue the draft under the attempt cap; anything else, or an
// exhausted cap, marks it failed.
func (s *proposalService) GenerateProposal(ctx context.Context, p *domain.Proposal, maxAttempts int) {
	input, err := buildGenerateInput(p)
	if err != nil {
		s.failGeneration(ctx, p, fmt.Sprintf("preparing input: %v", err))
		return
	}

	output, err := s.gen.Generate(ctx, *input)
	if err != nil {
		s.handleGenerateError(ctx, p, err, maxAttempts)
		return
	}

	now := time.Now().UTC()
	p.GeneratedContent = output.Content
	p.GeneratorModel = output.ModelUsed
	p.GeneratorPrompt = output.PromptUsed
	p.GenerationStatus = domain.GenerationStatusCompleted
	p.GenerationError = ""
	p.GeneratedAt = &now

	if err := s.proposalRepo.UpdateGeneration(ctx, p); err != nil {
		log.Printf("proposalService.GenerateProposal: failed to save results for %s: %v", p.ID, err)
		return
	}

	log.Printf("proposalService.GenerateProposal: proposal %s generated (model %s, attempt %d)",
		p.ID, p.GeneratorModel, p.GenerateAttempts)

	if s.email != nil && p.ClientEmail != "" {
		if err := s.email.SendProposalReadyEmail(ctx, p.ClientEmail, p.ClientName, p.ID); err != nil {
			log.Printf("proposalService.GenerateProposal: notification for %s failed: %v", p.ID, err)
		}
	}
}

// buildGenerateInput rehydrates the schema snapshot and keys each value by
// its field's template-variable name, normalized per field type.
func buildGenerateInput(p *domain.Proposal) (*port.GenerateInput, error) {
	fields, err := domain.ParseFieldConfigs(p.FieldSchema)
	if err != nil {
		return nil, err
	}

	var byID map[string]any
	if len(p.FieldValues) > 0 {
		if err := json.Unmarshal(p.FieldValues, &byID); err != nil {
			return nil, fmt.Errorf("decoding field values: %w", err)
		}
	}

	values := make(map[string]any, len(fields))
	for i := range fields {
		f := fields[i]
		raw, ok := byID[f.ID]
		if !ok {
			continue
		}
		values[f.TemplateName()] = form.NormalizeValue(f, raw)
	}

	return &port.GenerateInput{Values: values, Fields: fields}, nil
}

// handleGenerateError requeues a rate-limited draft under the attempt cap,
// otherwise fails it permanently.
func (s *proposalService) handleGenerateError(ctx context.Context, p *domain.Proposal, genErr error, maxAttempts int) {
	var rlErr *generator.RateLimitError
	if errors.As(genErr, &rlErr) && p.GenerateAttempts < maxAttempts {
		p.GenerationStatus = domain.GenerationStatusPending
		p.GenerationError = fmt.Sprintf("rate limited by %s, queued for retry", rlErr.Provider)
		if err := s.proposalRepo.UpdateGeneration(ctx, p); err != nil {
			log.Printf("proposalService.handleGenerateError: failed to requeue proposal %s: %v", p.ID, err)
		} else {
			log.Printf("proposalService.handleGenerateError: proposal %s requeued (attempt %d/%d)",
				p.ID, p.GenerateAttempts, maxAttempts)
		}
		return
	}
	s.failGeneration(ctx, p, fmt.Sprintf("generating proposal: %v", genErr))
}

func (s *proposalService) failGeneration(ctx context.Context, p *domain.Proposal, errMsg string) {
	log.Printf("proposalService.failGeneration: proposal %s failed: %s", p.ID, errMsg)
	p.GenerationStatus = domain.GenerationStatusFailed
	p.GenerationError = errMsg
	if err := s.proposalRepo.UpdateGeneration(ctx, p); err != nil {
		log.Printf("proposalService.failGeneration: failed to update status for %s: %v", p.ID, err)
	}
}
