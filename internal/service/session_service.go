package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"brushquote/internal/domain"
	"brushquote/internal/form"
	"brushquote/internal/port"
)

// formSession is one in-flight proposal intake form. Sessions live in
// memory only; an abandoned session costs nothing but RAM and is gone on
// restart, while a submitted one becomes a durable Proposal row.
type formSession struct {
	id         uuid.UUID
	templateID uuid.UUID
	fields     []domain.FieldConfig
	createdAt  time.Time

	mu        sync.Mutex
	mode      domain.SessionMode
	values    domain.ValueMap
	selectors map[string]*form.Selector
}

// SessionView is the rendering snapshot of a form session.
type SessionView struct {
	ID         uuid.UUID                  `json:"id"`
	TemplateID uuid.UUID                  `json:"template_id"`
	Mode       domain.SessionMode         `json:"mode"`
	Sections   []form.SectionView         `json:"sections"`
	Matrices   map[string]form.MatrixView `json:"matrices,omitempty"`
}

// SessionService manages in-memory form sessions: value edits, matrix
// selector operations, mode switching, and final submission into a
// pending proposal draft.
type SessionService interface {
	Create(ctx context.Context, templateID uuid.UUID) (*SessionView, error)
	UpdateValue(ctx context.Context, sessionID uuid.UUID, fieldID string, raw any) error
	SelectMatrixRow(ctx context.Context, sessionID uuid.UUID, fieldID, rowID string, selected bool) error
	SetMatrixCell(ctx context.Context, sessionID uuid.UUID, fieldID, rowID, columnID string, value any) error
	AdjustMatrixQuantity(ctx context.Context, sessionID uuid.UUID, fieldID, rowID string, delta float64) error
	SelectMatrixGroup(ctx context.Context, sessionID uuid.UUID, fieldID, groupKey string, selected bool) error
	ToggleMatrixGroup(ctx context.Context, sessionID uuid.UUID, fieldID, groupKey string, expand bool) error
	SetMode(ctx context.Context, sessionID uuid.UUID, mode domain.SessionMode) error
	View(ctx context.Context, sessionID uuid.UUID) (*SessionView, error)
	Submit(ctx context.Context, sessionID uuid.UUID) (*domain.Proposal, error)
	Close(ctx context.Context, sessionID uuid.UUID) error
}

type sessionService struct {
	templateRepo port.ProposalTemplateRepository
	proposalRepo port.ProposalRepository
	debounce     time.Duration

	mu       sync.RWMutex
	sessions map[uuid.UUID]*formSession
}

// NewSessionService creates a SessionService with the default matrix
// debounce window.
func NewSessionService(templateRepo port.ProposalTemplateRepository, proposalRepo port.ProposalRepository) SessionService {
	return NewSessionServiceWithDebounce(templateRepo, proposalRepo, form.DefaultDebounce)
}

// NewSessionServiceWithDebounce creates a SessionService with an explicit
// matrix debounce window. Tests use a short window to observe emissions.
func NewSessionServiceWithDebounce(templateRepo port.ProposalTemplateRepository, proposalRepo port.ProposalRepository, debounce time.Duration) SessionService {
	return &sessionService{
		templateRepo: templateRepo,
		proposalRepo: proposalRepo,
		debounce:     debounce,
		sessions:     make(map[uuid.UUID]*formSession),
	}
}

func (s *sessionService) Create(ctx context.Context, templateID uuid.UUID) (*SessionView, error) {
	tpl, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if !tpl.IsActive {
		return nil, domain.ErrTemplateInactive
	}

	fields, err := domain.ParseFieldConfigs(tpl.Fields)
	if err != nil || len(fields) == 0 {
		return nil, domain.ErrInvalidTemplateFields
	}

	sess := &formSession{
		id:         uuid.New(),
		templateID: tpl.ID,
		fields:     fields,
		createdAt:  time.Now().UTC(),
		mode:       domain.SessionModeBasic,
		values:     make(domain.ValueMap, len(fields)),
		selectors:  make(map[string]*form.Selector),
	}

	for i := range fields {
		f := fields[i]
		if f.Type != domain.FieldTypeMatrixSelector {
			continue
		}
		cfg := form.MatrixConfigFrom(f.Options)
		fieldID := f.ID
		sel := form.NewSelector(cfg, nil, s.debounce, func(items []domain.MatrixItem) {
			sess.mu.Lock()
			sess.values[fieldID] = items
			sess.mu.Unlock()
		})
		sess.selectors[fieldID] = sel
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	log.Printf("sessionService.Create: session %s for template %s (%d fields, %d matrices)",
		sess.id, tpl.ID, len(fields), len(sess.selectors))

	return s.snapshot(sess), nil
}

func (s *sessionService) session(id uuid.UUID) (*formSession, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (sess *formSession) field(fieldID string) (*domain.FieldConfig, error) {
	for i := range sess.fields {
		if sess.fields[i].ID == fieldID {
			return &sess.fields[i], nil
		}
	}
	return nil, domain.ErrFieldNotFound
}

// selector returns the matrix selector for a field, or the reason there
// is none.
func (sess *formSession) selector(fieldID string) (*form.Selector, error) {
	f, err := sess.field(fieldID)
	if err != nil {
		return nil, err
	}
	if f.Type != domain.FieldTypeMatrixSelector {
		return nil, domain.ErrNotMatrixField
	}
	sess.mu.Lock()
	sel := sess.selectors[fieldID]
	sess.mu.Unlock()
	if sel == nil {
		return nil, domain.ErrNotMatrixField
	}
	return sel, nil
}

func (s *sessionService) UpdateValue(_ context.Context, sessionID uuid.UUID, fieldID string, raw any) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	f, err := sess.field(fieldID)
	if err != nil {
		return err
	}

	if f.Type == domain.FieldTypeMatrixSelector {
		// A direct write to a matrix field re-seeds its selector; the
		// selector table stays authoritative afterwards.
		items := form.ToMatrixItems(raw)
		cfg := form.MatrixConfigFrom(f.Options)
		sess.mu.Lock()
		if old := sess.selectors[fieldID]; old != nil {
			old.Close()
		}
		sel := form.NewSelector(cfg, items, s.debounce, func(items []domain.MatrixItem) {
			sess.mu.Lock()
			sess.values[fieldID] = items
			sess.mu.Unlock()
		})
		sess.selectors[fieldID] = sel
		sess.values[fieldID] = sel.SelectedItems()
		sess.mu.Unlock()
		return nil
	}

	value := form.NormalizeValue(*f, raw)
	sess.mu.Lock()
	sess.values[fieldID] = value
	sess.mu.Unlock()
	return nil
}

func (s *sessionService) SelectMatrixRow(_ context.Context, sessionID uuid.UUID, fieldID, rowID string, selected bool) error {
	sel, err := s.fieldSelector(sessionID, fieldID)
	if err != nil {
		return err
	}
	sel.HandleRowSelection(rowID, selected)
	return nil
}

func (s *sessionService) SetMatrixCell(_ context.Context, sessionID uuid.UUID, fieldID, rowID, columnID string, value any) error {
	sel, err := s.fieldSelector(sessionID, fieldID)
	if err != nil {
		return err
	}
	sel.HandleValueChange(rowID, columnID, value)
	return nil
}

func (s *sessionService) AdjustMatrixQuantity(_ context.Context, sessionID uuid.UUID, fieldID, rowID string, delta float64) error {
	sel, err := s.fieldSelector(sessionID, fieldID)
	if err != nil {
		return err
	}
	sel.HandleQuantityChange(rowID, delta)
	return nil
}

func (s *sessionService) SelectMatrixGroup(_ context.Context, sessionID uuid.UUID, fieldID, groupKey string, selected bool) error {
	sel, err := s.fieldSelector(sessionID, fieldID)
	if err != nil {
		return err
	}
	sel.HandleGroupSelection(groupKey, selected)
	return nil
}

func (s *sessionService) ToggleMatrixGroup(_ context.Context, sessionID uuid.UUID, fieldID, groupKey string, expand bool) error {
	sel, err := s.fieldSelector(sessionID, fieldID)
	if err != nil {
		return err
	}
	sel.ToggleGroup(groupKey, expand)
	return nil
}

func (s *sessionService) fieldSelector(sessionID uuid.UUID, fieldID string) (*form.Selector, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.selector(fieldID)
}

func (s *sessionService) SetMode(_ context.Context, sessionID uuid.UUID, mode domain.SessionMode) error {
	if mode != domain.SessionModeBasic && mode != domain.SessionModeAdvanced {
		return domain.ErrInvalidSessionMode
	}
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	sess.mode = mode
	sess.mu.Unlock()
	return nil
}

func (s *sessionService) View(_ context.Context, sessionID uuid.UUID) (*SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return s.snapshot(sess), nil
}

func (s *sessionService) snapshot(sess *formSession) *SessionView {
	sess.mu.Lock()
	mode := sess.mode
	values := make(domain.ValueMap, len(sess.values))
	for k, v := range sess.values {
		values[k] = v
	}
	selectors := make(map[string]*form.Selector, len(sess.selectors))
	for k, sel := range sess.selectors {
		selectors[k] = sel
	}
	sess.mu.Unlock()

	matrices := make(map[string]form.MatrixView, len(selectors))
	for fieldID, sel := range selectors {
		matrices[fieldID] = sel.View()
	}

	return &SessionView{
		ID:         sess.id,
		TemplateID: sess.templateID,
		Mode:       mode,
		Sections:   form.PartitionSections(sess.fields, values, mode),
		Matrices:   matrices,
	}
}

// Submit flushes every matrix selector so pending debounced edits land,
// validates required fields, and persists a pending proposal draft for
// the generate queue. The session is discarded on success.
func (s *sessionService) Submit(ctx context.Context, sessionID uuid.UUID) (*domain.Proposal, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	selectors := make([]*form.Selector, 0, len(sess.selectors))
	for _, sel := range sess.selectors {
		selectors = append(selectors, sel)
	}
	sess.mu.Unlock()
	for _, sel := range selectors {
		sel.Flush()
	}

	sess.mu.Lock()
	values := make(domain.ValueMap, len(sess.values))
	for k, v := range sess.values {
		values[k] = v
	}
	sess.mu.Unlock()

	if err := form.ValidateSubmission(sess.fields, values); err != nil {
		return nil, err
	}

	valuesJSON, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("sessionService.Submit: marshaling values: %w", err)
	}
	schemaJSON, err := json.Marshal(sess.fields)
	if err != nil {
		return nil, fmt.Errorf("sessionService.Submit: marshaling schema: %w", err)
	}

	proposal := &domain.Proposal{
		ID:               uuid.New(),
		TemplateID:       sess.templateID,
		ClientName:       clientField(sess.fields, values, "client_name"),
		ClientEmail:      clientField(sess.fields, values, "client_email"),
		FieldValues:      valuesJSON,
		FieldSchema:      schemaJSON,
		GenerationStatus: domain.GenerationStatusPending,
		GeneratedContent: json.RawMessage("{}"),
	}

	if err := s.proposalRepo.Create(ctx, proposal); err != nil {
		return nil, fmt.Errorf("sessionService.Submit: creating proposal: %w", err)
	}

	log.Printf("sessionService.Submit: session %s submitted as proposal %s", sess.id, proposal.ID)

	s.removeSession(sessionID)
	return proposal, nil
}

// clientField pulls a denormalized contact column from the value map by
// the field's template-variable name.
func clientField(fields []domain.FieldConfig, values domain.ValueMap, name string) string {
	for i := range fields {
		f := &fields[i]
		if f.TemplateName() != name {
			continue
		}
		if s, ok := values[f.ID].(string); ok {
			return s
		}
	}
	return ""
}

func (s *sessionService) Close(_ context.Context, sessionID uuid.UUID) error {
	if _, err := s.session(sessionID); err != nil {
		return err
	}
	s.removeSession(sessionID)
	return nil
}

func (s *sessionService) removeSession(sessionID uuid.UUID) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	if !ok {
		return
	}

	sess.mu.Lock()
	selectors := make([]*form.Selector, 0, len(sess.selectors))
	for _, sel := range sess.selectors {
		selectors = append(selectors, sel)
	}
	sess.mu.Unlock()
	for _, sel := range selectors {
		sel.Close()
	}
}
