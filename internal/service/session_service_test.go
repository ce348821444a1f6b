package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"brushquote/internal/domain"
	"brushquote/internal/form"
	"brushquote/internal/service"
	"brushquote/mocks"
)

const sessionTestDebounce = 5 * time.Millisecond

func sessionTemplate() *domain.ProposalTemplate {
	return &domain.ProposalTemplate{
		ID:       uuid.New(),
		Name:     "Interior Repaint",
		IsActive: true,
		Fields: json.RawMessage(`[
			{"id":"client_name","name":"client_name","label":"Client Name","type":"text","required":true,"section_id":"client-info","order":1},
			{"id":"client_email","name":"client_email","label":"Client Email","type":"text","section_id":"client-info","order":2},
			{"id":"rooms","label":"Rooms","type":"matrix-selector","required":true,"section_id":"surfaces","order":3,"options":{"kind":"matrix-config","matrix":{"rows":[{"id":"living-room","label":"Living Room"},{"id":"kitchen","label":"Kitchen"}],"columns":[{"id":"walls","label":"Walls","type":"checkbox"},{"id":"coats","label":"Coats","type":"number"}],"quantity_column_id":"coats"}}},
			{"id":"tax_rate","label":"Tax Rate","type":"tax-calculator","complexity":"advanced","section_id":"options","order":4}
		]`),
	}
}

func newSessionService(t *testing.T, tpl *domain.ProposalTemplate) (service.SessionService, *mocks.MockProposalRepo, uuid.UUID) {
	t.Helper()
	templateRepo := new(mocks.MockTemplateRepo)
	templateRepo.On("GetByID", mock.Anything, tpl.ID).Return(tpl, nil)
	proposalRepo := new(mocks.MockProposalRepo)

	svc := service.NewSessionServiceWithDebounce(templateRepo, proposalRepo, sessionTestDebounce)
	view, err := svc.Create(context.Background(), tpl.ID)
	require.NoError(t, err)
	return svc, proposalRepo, view.ID
}

func TestSessionService_Create(t *testing.T) {
	tpl := sessionTemplate()
	templateRepo := new(mocks.MockTemplateRepo)
	templateRepo.On("GetByID", mock.Anything, tpl.ID).Return(tpl, nil)
	svc := service.NewSessionServiceWithDebounce(templateRepo, new(mocks.MockProposalRepo), sessionTestDebounce)

	view, err := svc.Create(context.Background(), tpl.ID)

	require.NoError(t, err)
	assert.Equal(t, tpl.ID, view.TemplateID)
	assert.Equal(t, domain.SessionModeBasic, view.Mode)
	require.Contains(t, view.Matrices, "rooms")
	assert.Len(t, view.Matrices["rooms"].Groups, 1)

	// Basic mode hides the advanced tax field.
	for _, s := range view.Sections {
		for _, f := range s.Fields {
			assert.NotEqual(t, "tax_rate", f.Config.ID)
		}
	}
}

func TestSessionService_Create_TemplateNotFound(t *testing.T) {
	templateRepo := new(mocks.MockTemplateRepo)
	templateRepo.On("GetByID", mock.Anything, mock.Anything).Return(nil, domain.ErrTemplateNotFound)
	svc := service.NewSessionService(templateRepo, new(mocks.MockProposalRepo))

	_, err := svc.Create(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

func TestSessionService_Create_InactiveTemplate(t *testing.T) {
	tpl := sessionTemplate()
	tpl.IsActive = false
	templateRepo := new(mocks.MockTemplateRepo)
	templateRepo.On("GetByID", mock.Anything, tpl.ID).Return(tpl, nil)
	svc := service.NewSessionService(templateRepo, new(mocks.MockProposalRepo))

	_, err := svc.Create(context.Background(), tpl.ID)

	assert.ErrorIs(t, err, domain.ErrTemplateInactive)
}

func TestSessionService_Create_InvalidFields(t *testing.T) {
	tpl := sessionTemplate()
	tpl.Fields = json.RawMessage(`[]`)
	templateRepo := new(mocks.MockTemplateRepo)
	templateRepo.On("GetByID", mock.Anything, tpl.ID).Return(tpl, nil)
	svc := service.NewSessionService(templateRepo, new(mocks.MockProposalRepo))

	_, err := svc.Create(context.Background(), tpl.ID)

	assert.ErrorIs(t, err, domain.ErrInvalidTemplateFields)
}

func TestSessionService_UpdateValue(t *testing.T) {
	svc, _, sessionID := newSessionService(t, sessionTemplate())
	ctx := context.Background()

	require.NoError(t, svc.UpdateValue(ctx, sessionID, "client_name", "Jordan Alvarez"))

	view, err := svc.View(ctx, sessionID)
	require.NoError(t, err)
	found := false
	for _, s := range view.Sections {
		for _, f := range s.Fields {
			if f.Config.ID == "client_name" {
				assert.Equal(t, "Jordan Alvarez", f.Value)
				found = true
			}
		}
	}
	assert.True(t, found)
}

func TestSessionService_UpdateValue_Errors(t *testing.T) {
	svc, _, sessionID := newSessionService(t, sessionTemplate())
	ctx := context.Background()

	err := svc.UpdateValue(ctx, uuid.New(), "client_name", "x")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	err = svc.UpdateValue(ctx, sessionID, "nonexistent", "x")
	assert.ErrorIs(t, err, domain.ErrFieldNotFound)
}

func TestSessionService_UpdateValue_MatrixReseedsSelector(t *testing.T) {
	svc, _, sessionID := newSessionService(t, sessionTemplate())
	ctx := context.Background()

	err := svc.UpdateValue(ctx, sessionID, "rooms", []any{
		map[string]any{"id": "kitchen", "selected": true, "coats": float64(3)},
	})
	require.NoError(t, err)

	view, err := svc.View(ctx, sessionID)
	require.NoError(t, err)
	rows := view.Matrices["rooms"].Groups[0].Rows
	require.Len(t, rows, 2)
	byID := form.RowMapping(rows)
	assert.True(t, byID["kitchen"].Selected())
	assert.Equal(t, float64(3), byID["kitchen"].Number("coats"))
	assert.False(t, byID["living-room"].Selected())
}

func TestSessionService_MatrixOperations(t *testing.T) {
	svc, _, sessionID := newSessionService(t, sessionTemplate())
	ctx := context.Background()

	require.NoError(t, svc.SelectMatrixRow(ctx, sessionID, "rooms", "kitchen", true))
	require.NoError(t, svc.SetMatrixCell(ctx, sessionID, "rooms", "kitchen", "walls", false))
	require.NoError(t, svc.AdjustMatrixQuantity(ctx, sessionID, "rooms", "kitchen", 2))
	require.NoError(t, svc.ToggleMatrixGroup(ctx, sessionID, "rooms", form.UngroupedKey, false))

	view, err := svc.View(ctx, sessionID)
	require.NoError(t, err)
	group := view.Matrices["rooms"].Groups[0]
	assert.False(t, group.Expanded)
	byID := form.RowMapping(group.Rows)
	assert.True(t, byID["kitchen"].Selected())
	assert.False(t, byID["kitchen"].Bool("walls"))
	assert.Equal(t, float64(3), byID["kitchen"].Number("coats"))
}

func TestSessionService_MatrixOperations_NotMatrixField(t *testing.T) {
	svc, _, sessionID := newSessionService(t, sessionTemplate())
	ctx := context.Background()

	err := svc.SelectMatrixRow(ctx, sessionID, "client_name", "x", true)
	assert.ErrorIs(t, err, domain.ErrNotMatrixField)

	err = svc.SelectMatrixGroup(ctx, sessionID, "nonexistent", "g", true)
	assert.ErrorIs(t, err, domain.ErrFieldNotFound)
}

func TestSessionService_SetMode(t *testing.T) {
	svc, _, sessionID := newSessionService(t, sessionTemplate())
	ctx := context.Background()

	err := svc.SetMode(ctx, sessionID, domain.SessionMode("expert"))
	assert.ErrorIs(t, err, domain.ErrInvalidSessionMode)

	require.NoError(t, svc.SetMode(ctx, sessionID, domain.SessionModeAdvanced))

	view, err := svc.View(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionModeAdvanced, view.Mode)

	found := false
	for _, s := range view.Sections {
		for _, f := range s.Fields {
			if f.Config.ID == "tax_rate" {
				found = true
			}
		}
	}
	assert.True(t, found, "advanced mode shows the tax field")
}

func TestSessionService_Submit(t *testing.T) {
	tpl := sessionTemplate()
	svc, proposalRepo, sessionID := newSessionService(t, tpl)
	ctx := context.Background()

	var created *domain.Proposal
	proposalRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Proposal")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.Proposal) }).
		Return(nil)

	require.NoError(t, svc.UpdateValue(ctx, sessionID, "client_name", "Jordan Alvarez"))
	require.NoError(t, svc.UpdateValue(ctx, sessionID, "client_email", "jordan@example.com"))
	require.NoError(t, svc.SelectMatrixRow(ctx, sessionID, "rooms", "kitchen", true))
	require.NoError(t, svc.AdjustMatrixQuantity(ctx, sessionID, "rooms", "kitchen", 1))

	// Submit flushes the pending debounce; no wait needed.
	p, err := svc.Submit(ctx, sessionID)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, tpl.ID, p.TemplateID)
	assert.Equal(t, "Jordan Alvarez", p.ClientName)
	assert.Equal(t, "jordan@example.com", p.ClientEmail)
	assert.Equal(t, domain.GenerationStatusPending, p.GenerationStatus)
	assert.NotEqual(t, uuid.Nil, p.ID)

	var values map[string]any
	require.NoError(t, json.Unmarshal(p.FieldValues, &values))
	rooms, ok := values["rooms"].([]any)
	require.True(t, ok)
	require.Len(t, rooms, 1, "only selected rows are persisted")
	kitchen := rooms[0].(map[string]any)
	assert.Equal(t, "kitchen", kitchen["id"])
	assert.Equal(t, float64(2), kitchen["coats"])

	var schema []domain.FieldConfig
	require.NoError(t, json.Unmarshal(p.FieldSchema, &schema))
	assert.Len(t, schema, 4)

	// The session is gone after a successful submit.
	_, err = svc.View(ctx, sessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionService_Submit_MissingRequired(t *testing.T) {
	svc, proposalRepo, sessionID := newSessionService(t, sessionTemplate())
	ctx := context.Background()

	// client_name and rooms are required and untouched.
	_, err := svc.Submit(ctx, sessionID)

	require.Error(t, err)
	var mfErr *domain.MissingFieldsError
	require.True(t, errors.As(err, &mfErr))
	assert.Equal(t, []string{"Client Name", "Rooms"}, mfErr.Labels)
	proposalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	// Failed validation keeps the session alive for fixes.
	_, err = svc.View(ctx, sessionID)
	assert.NoError(t, err)
}

func TestSessionService_Submit_RepoError(t *testing.T) {
	svc, proposalRepo, sessionID := newSessionService(t, sessionTemplate())
	ctx := context.Background()

	proposalRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	require.NoError(t, svc.UpdateValue(ctx, sessionID, "client_name", "Jordan"))
	require.NoError(t, svc.SelectMatrixRow(ctx, sessionID, "rooms", "kitchen", true))

	_, err := svc.Submit(ctx, sessionID)
	require.Error(t, err)

	// The session survives a persistence failure.
	_, err = svc.View(ctx, sessionID)
	assert.NoError(t, err)
}

func TestSessionService_Close(t *testing.T) {
	svc, _, sessionID := newSessionService(t, sessionTemplate())
	ctx := context.Background()

	require.NoError(t, svc.Close(ctx, sessionID))

	_, err := svc.View(ctx, sessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	assert.ErrorIs(t, svc.Close(ctx, sessionID), domain.ErrSessionNotFound)
}
