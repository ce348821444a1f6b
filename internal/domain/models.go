package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ProposalTemplate holds an ordered FieldConfig list describing one
// proposal intake form. Fields are persisted as JSONB.
type ProposalTemplate struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Fields      json.RawMessage `db:"fields" json:"fields"`
	IsActive    bool            `db:"is_active" json:"is_active"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// Proposal is the persisted draft record created at submission, before
// generation starts. The status page observes it by id until the worker
// moves it to a terminal status.
type Proposal struct {
	ID               uuid.UUID        `db:"id" json:"id"`
	TemplateID       uuid.UUID        `db:"template_id" json:"template_id"`
	ClientName       string           `db:"client_name" json:"client_name"`
	ClientEmail      string           `db:"client_email" json:"client_email"`
	FieldValues      json.RawMessage  `db:"field_values" json:"field_values"`
	FieldSchema      json.RawMessage  `db:"field_schema" json:"field_schema"`
	GenerationStatus GenerationStatus `db:"generation_status" json:"generation_status"`
	GenerationError  string           `db:"generation_error" json:"generation_error"`
	GeneratedContent json.RawMessage  `db:"generated_content" json:"generated_content"`
	GeneratorModel   string           `db:"generator_model" json:"generator_model"`
	GeneratorPrompt  string           `db:"generator_prompt" json:"generator_prompt"`
	GenerateAttempts int              `db:"generate_attempts" json:"generate_attempts"`
	GeneratedAt      *time.Time       `db:"generated_at" json:"generated_at"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updated_at"`
}

// Upload stores metadata about a file attached through a file-upload field
// (site photos, paint schedules, floor plans).
type Upload struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	FileName     string     `db:"file_name" json:"file_name"`
	OriginalName string     `db:"original_name" json:"original_name"`
	FileType     FileType   `db:"file_type" json:"file_type"`
	FileSize     int64      `db:"file_size" json:"file_size"`
	S3Bucket     string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string     `db:"s3_key" json:"s3_key"`
	ContentType  string     `db:"content_type" json:"content_type"`
	Status       FileStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
