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

type templateRepo struct {
	db *sqlx.DB
}

// NewTemplateRepo creates a new PostgreSQL-backed ProposalTemplateRepository.
func NewTemplateRepo(db *sqlx.DB) port.ProposalTemplateRepository {
	return &templateRepo{db: db}
}

func (r *templateRepo) Create(ctx context.Context, tpl *domain.ProposalTemplate) error {
	now := time.Now().UTC()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now

	query := `INSERT INTO proposal_templates (
		id, name, description, fields, is_active, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		tpl.ID, tpl.Name, tpl.Description, tpl.Fields, tpl.IsActive,
		tpl.CreatedAt, tpl.UpdatedAt)
	if err != nil {
		return fmt.Errorf("templateRepo.Create: %w", err)
	}
	return nil
}

func (r *templateRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProposalTemplate, error) {
	var tpl domain.ProposalTemplate
	err := r.db.GetContext(ctx, &tpl,
		"SELECT * FROM proposal_templates WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("templateRepo.GetByID: %w", err)
	}
	return &tpl, nil
}

func (r *templateRepo) List(ctx context.Context, offset, limit int) ([]domain.ProposalTemplate, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM proposal_templates")
	if err != nil {
		return nil, 0, fmt.Errorf("templateRepo.List count: %w", err)
	}

	var tpls []domain.ProposalTemplate
	err = r.db.SelectContext(ctx, &tpls,
		`SELECT * FROM proposal_templates
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("templateRepo.List: %w", err)
	}
	return tpls, total, nil
}

func (r *templateRepo) Update(ctx context.Context, tpl *domain.ProposalTemplate) error {
	tpl.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE proposal_templates SET
			name = $1, description = $2, fields = $3, is_active = $4, updated_at = $5
		 WHERE id = $6`,
		tpl.Name, tpl.Description, tpl.Fields, tpl.IsActive, tpl.UpdatedAt, tpl.ID)
	if err != nil {
		return fmt.Errorf("templateRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}

func (r *templateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM proposal_templates WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("templateRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}
