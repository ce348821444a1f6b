package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"brushquote/internal/domain"
	"brushquote/internal/port"
)

type proposalRepo struct {
	db *sqlx.DB
}

// NewProposalRepo creates a new PostgreSQL-backed ProposalRepository.
func NewProposalRepo(db *sqlx.DB) port.ProposalRepository {
	return &proposalRepo{db: db}
}

func (r *proposalRepo) Create(ctx context.Context, p *domain.Proposal) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `INSERT INTO proposals (
		id, template_id, client_name, client_email,
		field_values, field_schema,
		generation_status, generation_error, generated_content,
		generator_model, generator_prompt, generate_attempts, generated_at,
		created_at, updated_at
	) VALUES (
		$1, $2, $3, $4,
		$5, $6,
		$7, $8, $9,
		$10, $11, $12, $13,
		$14, $15
	)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.TemplateID, p.ClientName, p.ClientEmail,
		p.FieldValues, p.FieldSchema,
		p.GenerationStatus, p.GenerationError, p.GeneratedContent,
		p.GeneratorModel, p.GeneratorPrompt, p.GenerateAttempts, p.GeneratedAt,
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("proposalRepo.Create: %w", err)
	}
	return nil
}

func (r *proposalRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	var p domain.Proposal
	err := r.db.GetContext(ctx, &p,
		"SELECT * FROM proposals WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProposalNotFound
		}
		return nil, fmt.Errorf("proposalRepo.GetByID: %w", err)
	}
	return &p, nil
}

func (r *proposalRepo) List(ctx context.Context, offset, limit int) ([]domain.Proposal, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM proposals")
	if err != nil {
		return nil, 0, fmt.Errorf("proposalRepo.List count: %w", err)
	}

	var ps []domain.Proposal
	err = r.db.SelectContext(ctx, &ps,
		`SELECT * FROM proposals
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("proposalRepo.List: %w", err)
	}
	return ps, total, nil
}

// ClaimQueued uses FOR UPDATE SKIP LOCKED so concurrent workers never
// claim the same draft twice.
func (r *proposalRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.Proposal, error) {
	var ps []domain.Proposal
	err := r.db.SelectContext(ctx, &ps,
		`UPDATE proposals SET generation_status = $1, updated_at = $2
		 WHERE id IN (
			SELECT id FROM proposals
			WHERE generation_status = $3
			ORDER BY created_at
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		 )
		 RETURNING *`,
		domain.GenerationStatusProcessing, time.Now().UTC(), domain.GenerationStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("proposalRepo.ClaimQueued: %w", err)
	}
	return ps, nil
}

func (r *proposalRepo) UpdateGeneration(ctx context.Context, p *domain.Proposal) error {
	p.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE proposals SET
			generation_status = $1, generation_error = $2, generated_content = $3,
			generator_model = $4, generator_prompt = $5, generate_attempts = $6,
			generated_at = $7, updated_at = $8
		 WHERE id = $9`,
		p.GenerationStatus, p.GenerationError, p.GeneratedContent,
		p.GeneratorModel, p.GeneratorPrompt, p.GenerateAttempts,
		p.GeneratedAt, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("proposalRepo.UpdateGeneration: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrProposalNotFound
	}
	return nil
}

func (r *proposalRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM proposals WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("proposalRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrProposalNotFound
	}
	return nil
}
