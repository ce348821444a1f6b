package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"brushquote/internal/domain"
	"brushquote/internal/port"
)

// CreateTemplateInput is the DTO for creating a proposal template.
type CreateTemplateInput struct {
	Name        string
	Description string
	Fields      json.RawMessage
	IsActive    bool
}

// UpdateTemplateInput is the DTO for updating a proposal template.
type UpdateTemplateInput struct {
	ID          uuid.UUID
	Name        string
	Description string
	Fields      json.RawMessage
	IsActive    bool
}

// TemplateService defines the proposal template management contract.
type TemplateService interface {
	Create(ctx context.Context, input *CreateTemplateInput) (*domain.ProposalTemplate, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ProposalTemplate, error)
	List(ctx context.Context, offset, limit int) ([]domain.ProposalTemplate, int, error)
	Update(ctx context.Context, input *UpdateTemplateInput) (*domain.ProposalTemplate, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type templateService struct {
	templateRepo port.ProposalTemplateRepository
}

// NewTemplateService creates a new TemplateService implementation.
func NewTemplateService(templateRepo port.ProposalTemplateRepository) TemplateService {
	return &templateService{templateRepo: templateRepo}
}

// validateFields checks that the raw payload decodes as a non-empty
// FieldConfig list. Unsupported field types are allowed through; they
// degrade at render time instead of blocking template authors.
func validateFields(raw json.RawMessage) error {
	fields, err := domain.ParseFieldConfigs(raw)
	if err != nil {
		log.Printf("templateService: rejecting fields payload: %v", err)
		return domain.ErrInvalidTemplateFields
	}
	if len(fields) == 0 {
		return domain.ErrInvalidTemplateFields
	}
	seen := make(map[string]bool, len(fields))
	for i := range fields {
		f := &fields[i]
		if f.ID == "" || seen[f.ID] {
			return domain.ErrInvalidTemplateFields
		}
		seen[f.ID] = true
	}
	return nil
}

func (s *templateService) Create(ctx context.Context, input *CreateTemplateInput) (*domain.ProposalTemplate, error) {
	if err := validateFields(input.Fields); err != nil {
		return nil, err
	}

	tpl := &domain.ProposalTemplate{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Fields:      input.Fields,
		IsActive:    input.IsActive,
	}

	if err := s.templateRepo.Create(ctx, tpl); err != nil {
		return nil, fmt.Errorf("creating template: %w", err)
	}
	log.Printf("templateService.Create: created template %s (%s)", tpl.ID, tpl.Name)
	return tpl, nil
}

func (s *templateService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProposalTemplate, error) {
	return s.templateRepo.GetByID(ctx, id)
}

func (s *templateService) List(ctx context.Context, offset, limit int) ([]domain.ProposalTemplate, int, error) {
	return s.templateRepo.List(ctx, offset, limit)
}

func (s *templateService) Update(ctx context.Context, input *UpdateTemplateInput) (*domain.ProposalTemplate, error) {
	tpl, err := s.templateRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err := validateFields(input.Fields); err != nil {
		return nil, err
	}

	tpl.Name = input.Name
	tpl.Description = input.Description
	tpl.Fields = input.Fields
	tpl.IsActive = input.IsActive

	if err := s.templateRepo.Update(ctx, tpl); err != nil {
		return nil, fmt.Errorf("updating template: %w", err)
	}
	return tpl, nil
}

func (s *templateService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.templateRepo.Delete(ctx, id)
}
