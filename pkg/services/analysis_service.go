package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/hackett-digital/transform-engine/pkg/apperrors"
	"github.com/hackett-digital/transform-engine/pkg/hackett"
	"github.com/hackett-digital/transform-engine/pkg/intelligence"
	"github.com/hackett-digital/transform-engine/pkg/llm"
	"github.com/hackett-digital/transform-engine/pkg/models"
	"github.com/hackett-digital/transform-engine/pkg/prompts"
	"github.com/hackett-digital/transform-engine/pkg/repositories"
)

// Warning surfaced when the company update succeeded but the generated
// phases and insights could not be persisted.
const WarningResultsNotPersisted = "analysis results were not persisted"

const analysisTemperature = 0.7

// FullAnalysis is the outcome of the company-onboarding analysis run.
type FullAnalysis struct {
	Company  *models.Company         `json:"company"`
	Phases   []*models.WorkflowPhase `json:"phases"`
	Insights []*models.AIInsight     `json:"insights"`
	Warning  string                  `json:"warning,omitempty"`
}

// AnalysisService runs the AI-analysis pipeline.
type AnalysisService interface {
	// GenerateAdvanced produces one structured analysis for the given
	// profile. A generation failure is absorbed into the deterministic
	// fallback; the boolean reports which path produced the result.
	GenerateAdvanced(ctx context.Context, profile *models.CompanyProfile, analysisType, specificQuery string) (*intelligence.Intelligence, bool)

	// GenerateFullAnalysis updates the company's engagement estimates and
	// persists a regenerated seven-phase roadmap plus insights. The company
	// update commits on its own; a failure persisting phases and insights
	// is reported through the Warning field, not an error.
	GenerateFullAnalysis(ctx context.Context, userID, companyID uuid.UUID) (*FullAnalysis, error)
}

// TxBeginner starts database transactions. *database.DB satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type analysisService struct {
	db        TxBeginner
	companies repositories.CompanyRepository
	phases    repositories.PhaseRepository
	insights  repositories.InsightRepository
	sessions  SessionService
	generator llm.TextGenerator
	catalog   *hackett.Catalog
	logger    *zap.Logger
}

func NewAnalysisService(
	db TxBeginner,
	companies repositories.CompanyRepository,
	phases repositories.PhaseRepository,
	insights repositories.InsightRepository,
	sessions SessionService,
	generator llm.TextGenerator,
	catalog *hackett.Catalog,
	logger *zap.Logger,
) AnalysisService {
	return &analysisService{
		db:        db,
		companies: companies,
		phases:    phases,
		insights:  insights,
		sessions:  sessions,
		generator: generator,
		catalog:   catalog,
		logger:    logger.Named("analysis-service"),
	}
}

var _ AnalysisService = (*analysisService)(nil)

func (s *analysisService) GenerateAdvanced(ctx context.Context, profile *models.CompanyProfile, analysisType, specificQuery string) (*intelligence.Intelligence, bool) {
	if s.generator == nil {
		return intelligence.Fallback(analysisType, profile), true
	}

	prompt := prompts.BuildIntelligencePrompt(profile, analysisType, specificQuery)
	content, err := s.generator.Generate(ctx, prompt, analysisTemperature)
	if err != nil || content == "" {
		// No retry: first failure goes straight to the fallback.
		s.logger.Warn("Generation failed, using fallback",
			zap.String("analysis_type", analysisType),
			zap.Error(err))
		return intelligence.Fallback(analysisType, profile), true
	}

	return intelligence.ParseResponse(analysisType, content), false
}

func (s *analysisService) GenerateFullAnalysis(ctx context.Context, userID, companyID uuid.UUID) (*FullAnalysis, error) {
	company, err := s.loadOwned(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}

	session := s.startActivity(ctx, userID, companyID)

	profile := &models.CompanyProfile{}
	profile.FromCompany(company)

	acceleration := estimateAcceleration(profile)
	completion := estimateCompletion(time.Now().UTC(), acceleration)
	company.AIAcceleration = acceleration
	company.EstimatedCompletion = &completion
	company.HackettIPMatches = s.catalog.MatchCount(profile.Industry, profile.PainPoints)
	company.ProjectValue = estimateProjectValue(profile.Revenue)
	company.Status = models.CompanyStatusDataCollection
	if company.Progress < 10 {
		company.Progress = 10
	}

	// The estimate update stands on its own: a later failure persisting
	// phases and insights must not roll it back.
	if err := s.companies.Update(ctx, company); err != nil {
		s.logger.Error("Failed to update company estimates",
			zap.String("company_id", companyID.String()),
			zap.Error(err))
		return nil, err
	}

	result, _ := s.GenerateAdvanced(ctx, profile, intelligence.TypeOpportunity, "")
	phases := s.buildPhases(company, s.generatePhaseSuggestions(ctx, profile))
	insights := buildInsights(company, result)
	s.touchActivity(ctx, session)

	analysis := &FullAnalysis{Company: company, Phases: phases, Insights: insights}
	if err := s.persistResults(ctx, companyID, phases, insights); err != nil {
		s.logger.Error("Failed to persist analysis results",
			zap.String("company_id", companyID.String()),
			zap.Error(err))
		analysis.Warning = WarningResultsNotPersisted
	}
	s.endActivity(ctx, session)
	return analysis, nil
}

// Session bookkeeping is best effort: a tracking failure never fails the
// analysis run.
func (s *analysisService) startActivity(ctx context.Context, userID, companyID uuid.UUID) *models.UserSession {
	if s.sessions == nil {
		return nil
	}
	session, err := s.sessions.Start(ctx, userID, &companyID, []byte(`{"activity":"generate-analysis"}`))
	if err != nil {
		s.logger.Warn("Failed to start analysis session",
			zap.String("company_id", companyID.String()),
			zap.Error(err))
		return nil
	}
	return session
}

func (s *analysisService) touchActivity(ctx context.Context, session *models.UserSession) {
	if session == nil {
		return
	}
	if err := s.sessions.Touch(ctx, session.ID); err != nil {
		s.logger.Warn("Failed to record session activity", zap.Error(err))
	}
}

func (s *analysisService) endActivity(ctx context.Context, session *models.UserSession) {
	if session == nil {
		return
	}
	if err := s.sessions.End(ctx, session.ID); err != nil {
		s.logger.Warn("Failed to end analysis session", zap.Error(err))
	}
}

// persistResults replaces the company's roadmap and stores the generated
// insights in one transaction.
func (s *analysisService) persistResults(ctx context.Context, companyID uuid.UUID, phases []*models.WorkflowPhase, insights []*models.AIInsight) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	phaseRepo := s.phases.WithTx(tx)
	insightRepo := s.insights.WithTx(tx)

	if err := phaseRepo.DeleteByCompany(ctx, companyID); err != nil {
		return fmt.Errorf("clearing phases: %w", err)
	}
	for _, phase := range phases {
		if err := phaseRepo.Create(ctx, phase); err != nil {
			return fmt.Errorf("inserting phase %d: %w", phase.PhaseNumber, err)
		}
	}
	if err := insightRepo.BulkCreate(ctx, insights); err != nil {
		return fmt.Errorf("inserting insights: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *analysisService) loadOwned(ctx context.Context, userID, companyID uuid.UUID) (*models.Company, error) {
	company, err := s.companies.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return company, nil
}

// generatePhaseSuggestions asks the generator for a client-specific phase
// plan and keys its bullet points by phase number. Any failure yields no
// suggestions; the template content stands on its own.
func (s *analysisService) generatePhaseSuggestions(ctx context.Context, profile *models.CompanyProfile) map[int][]string {
	if s.generator == nil {
		return nil
	}
	content, err := s.generator.Generate(ctx, prompts.BuildPhasePlanPrompt(profile), analysisTemperature)
	if err != nil || content == "" {
		s.logger.Warn("Phase plan generation failed", zap.Error(err))
		return nil
	}
	return parsePhaseSuggestions(content)
}

// parsePhaseSuggestions groups bullet lines under the numbered phase
// heading above them ("3. AI-Powered Data Collection").
func parsePhaseSuggestions(content string) map[int][]string {
	suggestions := make(map[int][]string)
	current := 0
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimLeft(strings.TrimSpace(line), "#* ")
		if n := phaseNumberPrefix(trimmed); n != 0 {
			current = n
			continue
		}
		if current == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "•") {
			if item := strings.TrimSpace(strings.TrimLeft(trimmed, "-• ")); item != "" {
				suggestions[current] = append(suggestions[current], item)
			}
		}
	}
	return suggestions
}

func phaseNumberPrefix(line string) int {
	if len(line) < 2 || line[1] != '.' {
		return 0
	}
	n := int(line[0] - '0')
	if n < 1 || n > models.PhaseCount {
		return 0
	}
	return n
}

// buildPhases instantiates the seven-phase methodology for one company,
// pulling the matching catalog assets and generated suggestions into each
// phase.
func (s *analysisService) buildPhases(company *models.Company, suggestions map[int][]string) []*models.WorkflowPhase {
	phases := make([]*models.WorkflowPhase, 0, models.PhaseCount)
	for i, tpl := range phaseTemplates {
		number := i + 1

		assetNames := []string{}
		for _, asset := range s.catalog.Filter(number, "") {
			assetNames = append(assetNames, asset.Name)
		}

		status := models.PhaseStatusPending
		progress := 0
		if number < company.CurrentPhase {
			status = models.PhaseStatusCompleted
			progress = 100
		} else if number == company.CurrentPhase {
			status = models.PhaseStatusInProgress
			progress = company.Progress
		}

		phases = append(phases, &models.WorkflowPhase{
			CompanyID:             company.ID,
			PhaseNumber:           number,
			Title:                 tpl.title,
			Description:           tpl.description,
			Status:                status,
			Progress:              progress,
			AIAcceleration:        tpl.aiAcceleration,
			AIAcceleratedDuration: tpl.aiDuration,
			TraditionalDuration:   tpl.traditionalDuration,
			Deliverables:          append([]string{}, tpl.deliverables...),
			KeyActivities:         append([]string{}, tpl.keyActivities...),
			Dependencies:          tpl.dependencies(),
			TeamRoles:             append([]string{}, tpl.teamRoles...),
			ClientTasks:           append([]string{}, tpl.clientTasks...),
			RiskFactors:           append([]string{}, tpl.riskFactors...),
			SuccessMetrics:        append([]string{}, tpl.successMetrics...),
			HackettIP:             assetNames,
			AISuggestions:         append([]string{}, suggestions[number]...),
		})
	}
	return phases
}

// buildInsights converts one intelligence result into insight rows for the
// company, anchored to the early roadmap phases.
func buildInsights(company *models.Company, result *intelligence.Intelligence) []*models.AIInsight {
	insights := []*models.AIInsight{}
	confidence := int(result.Confidence * 100)
	timeframe := result.Timeframe

	for i, rec := range result.Recommendations {
		if i >= 3 {
			break
		}
		insights = append(insights, &models.AIInsight{
			CompanyID:       company.ID,
			Type:            models.InsightTypeRecommendation,
			Title:           rec,
			Description:     result.Summary,
			Confidence:      confidence,
			Impact:          models.ImpactHigh,
			Source:          "AI Analysis",
			Phase:           clampPhase(i + 1),
			Actionable:      result.Actionable,
			Timeframe:       &timeframe,
			Dependencies:    []string{},
			Recommendations: []string{},
		})
	}

	insights = append(insights, &models.AIInsight{
		CompanyID:       company.ID,
		Type:            models.InsightTypeOpportunity,
		Title:           fmt.Sprintf("Value opportunity for %s", company.ClientName),
		Description:     result.FinancialImpact,
		Confidence:      confidence,
		Impact:          models.ImpactHigh,
		Source:          "AI Analysis",
		Phase:           4,
		Actionable:      true,
		Timeframe:       &timeframe,
		Dependencies:    []string{},
		Recommendations: append([]string{}, result.SuccessMetrics...),
	})

	if company.Industry != "" {
		insights = append(insights, &models.AIInsight{
			CompanyID:       company.ID,
			Type:            models.InsightTypeBenchmark,
			Title:           fmt.Sprintf("%s peer benchmarking baseline", company.Industry),
			Description:     "Peer comparison against industry median and top-quartile finance performance.",
			Confidence:      confidence,
			Impact:          models.ImpactMedium,
			Source:          "Benchmark Library",
			Phase:           4,
			Actionable:      true,
			Dependencies:    []string{},
			Recommendations: []string{},
		})
	}

	return insights
}

func clampPhase(n int) int {
	if n < 1 {
		return 1
	}
	if n > models.PhaseCount {
		return models.PhaseCount
	}
	return n
}

// estimateAcceleration derives the AI-acceleration percentage from the
// engagement profile. More pain points give AI tooling more surface area;
// a modern ERP raises the ceiling.
func estimateAcceleration(profile *models.CompanyProfile) int {
	acceleration := 30
	acceleration += len(profile.PainPoints) * 2
	if acceleration > 42 {
		acceleration = 42
	}
	switch profile.ERPSystem {
	case "SAP S/4HANA", "Oracle Fusion", "Workday", "NetSuite":
		acceleration += 3
	}
	return acceleration
}

// estimateCompletion projects the engagement end date: a 14-month baseline
// compressed by the acceleration percentage.
func estimateCompletion(start time.Time, acceleration int) time.Time {
	const baselineDays = 14 * 30
	days := baselineDays * (100 - acceleration) / 100
	return start.AddDate(0, 0, days)
}

// estimateProjectValue maps the revenue bracket to an indicative engagement
// value in dollars.
func estimateProjectValue(revenue string) float64 {
	switch revenue {
	case "Under $100M":
		return 250_000
	case "$100M-$500M":
		return 750_000
	case "$500M-$1B":
		return 1_500_000
	case "$1B-$5B":
		return 2_500_000
	case "Over $5B":
		return 4_000_000
	default:
		return 500_000
	}
}

type phaseTemplate struct {
	title               string
	description         string
	aiAcceleration      int
	aiDuration          string
	traditionalDuration string
	deliverables        []string
	keyActivities       []string
	teamRoles           []string
	clientTasks         []string
	riskFactors         []string
	successMetrics      []string
}

// dependencies lists the preceding phase title, if any.
func (t phaseTemplate) dependencies() []string {
	for i, tpl := range phaseTemplates {
		if tpl.title == t.title && i > 0 {
			return []string{phaseTemplates[i-1].title}
		}
	}
	return []string{}
}

var phaseTemplates = []phaseTemplate{
	{
		title:               "Project Initiation",
		description:         "Charter the engagement, align stakeholders and stand up governance.",
		aiAcceleration:      25,
		aiDuration:          "1 week",
		traditionalDuration: "2 weeks",
		deliverables:        []string{"Engagement charter", "Governance model", "Communication plan"},
		keyActivities:       []string{"Kickoff workshop", "Stakeholder mapping", "Success criteria definition"},
		teamRoles:           []string{"Engagement lead", "Client sponsor"},
		clientTasks:         []string{"Confirm sponsor and steering committee", "Provide org charts"},
		riskFactors:         []string{"Unclear sponsorship"},
		successMetrics:      []string{"Charter signed off", "Steering committee scheduled"},
	},
	{
		title:               "Parallel Workstream Launch",
		description:         "Launch process, technology and organization workstreams concurrently.",
		aiAcceleration:      30,
		aiDuration:          "1 week",
		traditionalDuration: "2 weeks",
		deliverables:        []string{"Workstream plans", "Resource assignments"},
		keyActivities:       []string{"Workstream planning", "Tooling setup", "Baseline data requests"},
		teamRoles:           []string{"Workstream leads", "PMO analyst"},
		clientTasks:         []string{"Nominate process owners per workstream"},
		riskFactors:         []string{"Competing client priorities"},
		successMetrics:      []string{"All workstreams staffed and launched"},
	},
	{
		title:               "AI-Powered Data Collection",
		description:         "Extract ERP data and ingest documents with AI-assisted classification.",
		aiAcceleration:      55,
		aiDuration:          "2 weeks",
		traditionalDuration: "5 weeks",
		deliverables:        []string{"Validated data set", "Data quality report"},
		keyActivities:       []string{"ERP extraction", "Document ingestion", "Quality validation"},
		teamRoles:           []string{"Data engineer", "Process analyst"},
		clientTasks:         []string{"Grant system access", "Provide policy documents"},
		riskFactors:         []string{"ERP data quality gaps", "Delayed access provisioning"},
		successMetrics:      []string{"Data quality score above threshold", "Extraction complete"},
	},
	{
		title:               "Analysis & Insight Generation",
		description:         "Benchmark performance and generate prioritized improvement insights.",
		aiAcceleration:      60,
		aiDuration:          "2 weeks",
		traditionalDuration: "5 weeks",
		deliverables:        []string{"Benchmark report", "Insight backlog", "Opportunity sizing"},
		keyActivities:       []string{"Peer benchmarking", "Gap analysis", "Insight prioritization"},
		teamRoles:           []string{"Benchmark analyst", "Engagement lead"},
		clientTasks:         []string{"Validate findings with process owners"},
		riskFactors:         []string{"Benchmark comparability disputes"},
		successMetrics:      []string{"Insights reviewed and prioritized with client"},
	},
	{
		title:               "Solution Design",
		description:         "Design target-state processes, operating model and business case.",
		aiAcceleration:      40,
		aiDuration:          "3 weeks",
		traditionalDuration: "5 weeks",
		deliverables:        []string{"Target-state designs", "Business case", "Implementation roadmap"},
		keyActivities:       []string{"Design workshops", "Business case modeling", "Roadmap sequencing"},
		teamRoles:           []string{"Solution architect", "Finance SME"},
		clientTasks:         []string{"Attend design workshops", "Approve design decisions"},
		riskFactors:         []string{"Scope growth during design"},
		successMetrics:      []string{"Designs approved", "Business case signed off"},
	},
	{
		title:               "Client Review & Handoff",
		description:         "Present findings, transfer ownership and confirm the implementation plan.",
		aiAcceleration:      20,
		aiDuration:          "1 week",
		traditionalDuration: "2 weeks",
		deliverables:        []string{"Executive readout", "Handoff package"},
		keyActivities:       []string{"Executive presentation", "Knowledge transfer sessions"},
		teamRoles:           []string{"Engagement lead", "Client sponsor"},
		clientTasks:         []string{"Schedule executive readout", "Confirm implementation owners"},
		riskFactors:         []string{"Executive availability"},
		successMetrics:      []string{"Readout delivered", "Implementation plan accepted"},
	},
	{
		title:               "Implementation Support",
		description:         "Support delivery, track value capture and stabilize new ways of working.",
		aiAcceleration:      35,
		aiDuration:          "6 weeks",
		traditionalDuration: "10 weeks",
		deliverables:        []string{"Value tracking dashboard", "Hypercare reports"},
		keyActivities:       []string{"Delivery support", "Value tracking", "Adoption monitoring"},
		teamRoles:           []string{"Implementation advisor", "Change lead"},
		clientTasks:         []string{"Staff the implementation team", "Report adoption metrics"},
		riskFactors:         []string{"Adoption fatigue", "Benefit leakage"},
		successMetrics:      []string{"Realized savings vs. model", "Adoption rate at 30 days"},
	},
}
