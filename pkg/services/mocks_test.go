package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hackett-digital/transform-engine/pkg/apperrors"
	"github.com/hackett-digital/transform-engine/pkg/models"
	"github.com/hackett-digital/transform-engine/pkg/repositories"
)

// In-memory repository fakes shared by the service tests. Error fields
// force the next matching call to fail.

type mockCompanyRepo struct {
	companies map[uuid.UUID]*models.Company
	createErr error
	updateErr error
	listErr   error
}

func newMockCompanyRepo() *mockCompanyRepo {
	return &mockCompanyRepo{companies: map[uuid.UUID]*models.Company{}}
}

func (m *mockCompanyRepo) Create(ctx context.Context, company *models.Company) error {
	if m.createErr != nil {
		return m.createErr
	}
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}
	company.CreatedAt = time.Now()
	company.UpdatedAt = company.CreatedAt
	stored := *company
	m.companies[company.ID] = &stored
	return nil
}

func (m *mockCompanyRepo) Get(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	company, ok := m.companies[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *company
	return &copied, nil
}

func (m *mockCompanyRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Company, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []*models.Company{}
	for _, c := range m.companies {
		if c.UserID == userID {
			copied := *c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *mockCompanyRepo) Update(ctx context.Context, company *models.Company) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.companies[company.ID]; !ok {
		return apperrors.ErrNotFound
	}
	company.UpdatedAt = time.Now()
	stored := *company
	m.companies[company.ID] = &stored
	return nil
}

func (m *mockCompanyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.companies, id)
	return nil
}

var _ repositories.CompanyRepository = (*mockCompanyRepo)(nil)

type mockInsightRepo struct {
	insights  map[uuid.UUID]*models.AIInsight
	bulkErr   error
	updateErr error
	bulkCalls int
}

func newMockInsightRepo() *mockInsightRepo {
	return &mockInsightRepo{insights: map[uuid.UUID]*models.AIInsight{}}
}

func (m *mockInsightRepo) Create(ctx context.Context, insight *models.AIInsight) error {
	if insight.ID == uuid.Nil {
		insight.ID = uuid.New()
	}
	insight.CreatedAt = time.Now()
	stored := *insight
	m.insights[insight.ID] = &stored
	return nil
}

func (m *mockInsightRepo) BulkCreate(ctx context.Context, insights []*models.AIInsight) error {
	if len(insights) == 0 {
		return nil
	}
	m.bulkCalls++
	if m.bulkErr != nil {
		return m.bulkErr
	}
	for _, insight := range insights {
		if err := m.Create(ctx, insight); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockInsightRepo) Get(ctx context.Context, id uuid.UUID) (*models.AIInsight, error) {
	insight, ok := m.insights[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *insight
	return &copied, nil
}

func (m *mockInsightRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.AIInsight, error) {
	out := []*models.AIInsight{}
	for _, insight := range m.insights {
		if insight.CompanyID == companyID {
			copied := *insight
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *mockInsightRepo) Update(ctx context.Context, insight *models.AIInsight) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.insights[insight.ID]; !ok {
		return apperrors.ErrNotFound
	}
	stored := *insight
	m.insights[insight.ID] = &stored
	return nil
}

func (m *mockInsightRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.insights, id)
	return nil
}

func (m *mockInsightRepo) WithTx(tx pgx.Tx) repositories.InsightRepository {
	return m
}

var _ repositories.InsightRepository = (*mockInsightRepo)(nil)

type mockPhaseRepo struct {
	phases    map[uuid.UUID]*models.WorkflowPhase
	createErr error
}

func newMockPhaseRepo() *mockPhaseRepo {
	return &mockPhaseRepo{phases: map[uuid.UUID]*models.WorkflowPhase{}}
}

func (m *mockPhaseRepo) Create(ctx context.Context, phase *models.WorkflowPhase) error {
	if m.createErr != nil {
		return m.createErr
	}
	if phase.ID == uuid.Nil {
		phase.ID = uuid.New()
	}
	stored := *phase
	m.phases[phase.ID] = &stored
	return nil
}

func (m *mockPhaseRepo) Get(ctx context.Context, id uuid.UUID) (*models.WorkflowPhase, error) {
	phase, ok := m.phases[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *phase
	return &copied, nil
}

func (m *mockPhaseRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.WorkflowPhase, error) {
	out := []*models.WorkflowPhase{}
	for _, phase := range m.phases {
		if phase.CompanyID == companyID {
			copied := *phase
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PhaseNumber < out[j].PhaseNumber })
	return out, nil
}

func (m *mockPhaseRepo) Update(ctx context.Context, phase *models.WorkflowPhase) error {
	if _, ok := m.phases[phase.ID]; !ok {
		return apperrors.ErrNotFound
	}
	stored := *phase
	m.phases[phase.ID] = &stored
	return nil
}

func (m *mockPhaseRepo) DeleteByCompany(ctx context.Context, companyID uuid.UUID) error {
	for id, phase := range m.phases {
		if phase.CompanyID == companyID {
			delete(m.phases, id)
		}
	}
	return nil
}

func (m *mockPhaseRepo) WithTx(tx pgx.Tx) repositories.PhaseRepository {
	return m
}

var _ repositories.PhaseRepository = (*mockPhaseRepo)(nil)

type mockUserRepo struct {
	users     map[uuid.UUID]*models.User
	upsertErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[uuid.UUID]*models.User{}}
}

func (m *mockUserRepo) Upsert(ctx context.Context, user *models.User) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.users, id)
	return nil
}

var _ repositories.UserRepository = (*mockUserRepo)(nil)

type mockChatRepo struct {
	messages []*models.ChatMessage
}

func (m *mockChatRepo) Create(ctx context.Context, message *models.ChatMessage) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	message.CreatedAt = time.Now()
	stored := *message
	m.messages = append(m.messages, &stored)
	return nil
}

func (m *mockChatRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.ChatMessage, error) {
	out := []*models.ChatMessage{}
	for _, msg := range m.messages {
		if msg.CompanyID == companyID {
			copied := *msg
			out = append(out, &copied)
		}
	}
	return out, nil
}

var _ repositories.ChatMessageRepository = (*mockChatRepo)(nil)

type mockQuestionnaireRepo struct {
	questionnaires []*models.Questionnaire
}

func (m *mockQuestionnaireRepo) Create(ctx context.Context, questionnaire *models.Questionnaire) error {
	if questionnaire.ID == uuid.Nil {
		questionnaire.ID = uuid.New()
	}
	questionnaire.CompletedAt = time.Now()
	stored := *questionnaire
	m.questionnaires = append(m.questionnaires, &stored)
	return nil
}

func (m *mockQuestionnaireRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Questionnaire, error) {
	out := []*models.Questionnaire{}
	for _, q := range m.questionnaires {
		if q.CompanyID == companyID {
			copied := *q
			out = append(out, &copied)
		}
	}
	return out, nil
}

var _ repositories.QuestionnaireRepository = (*mockQuestionnaireRepo)(nil)

type mockResultRepo struct {
	results []*models.AnalysisResult
}

func (m *mockResultRepo) Create(ctx context.Context, result *models.AnalysisResult) error {
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}
	if result.GeneratedBy == "" {
		result.GeneratedBy = models.GeneratedByAI
	}
	if result.Status == "" {
		result.Status = models.ResultStatusActive
	}
	result.CreatedAt = time.Now()
	stored := *result
	m.results = append(m.results, &stored)
	return nil
}

func (m *mockResultRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.AnalysisResult, error) {
	out := []*models.AnalysisResult{}
	for _, r := range m.results {
		if r.CompanyID == companyID {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockResultRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	for _, r := range m.results {
		if r.ID == id {
			r.Status = status
			return nil
		}
	}
	return apperrors.ErrNotFound
}

var _ repositories.AnalysisResultRepository = (*mockResultRepo)(nil)

type mockSessionRepo struct {
	sessions map[uuid.UUID]*models.UserSession
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: map[uuid.UUID]*models.UserSession{}}
}

func (m *mockSessionRepo) Create(ctx context.Context, session *models.UserSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	now := time.Now()
	session.StartedAt = now
	session.LastActivity = now
	stored := *session
	m.sessions[session.ID] = &stored
	return nil
}

func (m *mockSessionRepo) Get(ctx context.Context, id uuid.UUID) (*models.UserSession, error) {
	session, ok := m.sessions[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (m *mockSessionRepo) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	session, ok := m.sessions[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	session.LastActivity = at
	return nil
}

func (m *mockSessionRepo) End(ctx context.Context, id uuid.UUID, at time.Time) error {
	session, ok := m.sessions[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	session.LastActivity = at
	session.EndedAt = &at
	return nil
}

var _ repositories.SessionRepository = (*mockSessionRepo)(nil)

// fakeTx satisfies pgx.Tx for the pipeline tests; only Commit and Rollback
// are expected to be called.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeTxBeginner struct {
	tx       *fakeTx
	beginErr error
}

func (b *fakeTxBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	b.tx = &fakeTx{}
	return b.tx, nil
}
