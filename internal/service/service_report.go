package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/report-buddy/internal/adapter"
	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/internal/store"
	"github.com/MKhiriev/report-buddy/models"
)

type reportService struct {
	reports store.ReportRepository
	legal   store.LegalRepository
	llm     adapter.ChatCompleter
	ids     IDGenerator
}

func NewReportService(reports store.ReportRepository, legal store.LegalRepository, llm adapter.ChatCompleter, ids IDGenerator) ReportService {
	return &reportService{
		reports: reports,
		legal:   legal,
		llm:     llm,
		ids:     ids,
	}
}

func (s *reportService) CreateReport(ctx context.Context, userID string, req models.CreateReportRequest) (models.Report, error) {
	title := req.ReportType.DefaultTitle()
	if req.Title != nil && *req.Title != "" {
		title = *req.Title
	}

	report, err := s.reports.CreateReport(ctx, models.Report{
		ID:         s.ids.Generate(),
		UserID:     userID,
		ReportType: req.ReportType,
		Status:     models.ReportDraft,
		Title:      title,
	})
	if err != nil {
		return models.Report{}, fmt.Errorf("failed to create report: %w", err)
	}

	logger.FromContext(ctx).Info().Str("report_id", report.ID).Str("report_type", string(report.ReportType)).Msg("report created")
	return report, nil
}

func (s *reportService) ListReports(ctx context.Context, filter models.ReportListFilter) (models.ReportList, error) {
	list, err := s.reports.ListReports(ctx, filter)
	if err != nil {
		return models.ReportList{}, fmt.Errorf("failed to list reports: %w", err)
	}
	return list, nil
}

// GetReport returns the report with its stored legal references.
func (s *reportService) GetReport(ctx context.Context, userID, reportID string) (models.Report, error) {
	report, err := s.reports.GetReport(ctx, userID, reportID)
	if err != nil {
		return models.Report{}, fmt.Errorf("failed to get report: %w", err)
	}

	refs, err := s.legal.ListReferences(ctx, reportID)
	if err != nil {
		return models.Report{}, fmt.Errorf("failed to get legal references: %w", err)
	}
	report.LegalReferences = refs

	return report, nil
}

func (s *reportService) UpdateReport(ctx context.Context, userID, reportID string, update models.ReportUpdate) (models.Report, error) {
	report, err := s.reports.UpdateReport(ctx, userID, reportID, update)
	if err != nil {
		return models.Report{}, fmt.Errorf("failed to update report: %w", err)
	}
	return report, nil
}

func (s *reportService) DeleteReport(ctx context.Context, userID, reportID string) error {
	if err := s.reports.DeleteReport(ctx, userID, reportID); err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	return nil
}

// SuggestCharges proposes up to MaxSuggestedCharges charges supported by the
// report's current content.
func (s *reportService) SuggestCharges(ctx context.Context, userID, reportID string) (models.ChargeSuggestions, error) {
	_, content, err := reportContent(ctx, s.reports, userID, reportID)
	if err != nil {
		return models.ChargeSuggestions{}, err
	}

	req := chat(chargesPrompt, userContent(content), chargesTemperature, chargesMaxTokens)
	suggestions, err := completeJSON[models.ChargeSuggestions](ctx, s.llm, req).Unwrap()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*reportService.SuggestCharges").Msg("charge suggestion failed")
		return models.ChargeSuggestions{}, err
	}

	if suggestions.Charges == nil {
		suggestions.Charges = []models.SuggestedCharge{}
	}
	if len(suggestions.Charges) > models.MaxSuggestedCharges {
		suggestions.Charges = suggestions.Charges[:models.MaxSuggestedCharges]
	}
	return suggestions, nil
}

// CheckElements reviews whether the report establishes the statutory
// elements of each charge, using the user's policies and case law.
func (s *reportService) CheckElements(ctx context.Context, userID, reportID string, req models.CheckElementsRequest) (models.ElementsAnalysis, error) {
	_, content, err := reportContent(ctx, s.reports, userID, reportID)
	if err != nil {
		return models.ElementsAnalysis{}, err
	}

	docs, err := s.legal.ListLegalDocuments(ctx, userID)
	if err != nil {
		return models.ElementsAnalysis{}, fmt.Errorf("failed to load legal documents: %w", err)
	}

	chatReq := chat(elementsPrompt(models.SplitLegalData(docs)), elementsUserPrompt(content, req.Charges), elementsTemperature, elementsMaxTokens)
	analysis, err := completeJSON[models.ElementsAnalysis](ctx, s.llm, chatReq).Unwrap()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*reportService.CheckElements").Msg("elements check failed")
		return models.ElementsAnalysis{}, err
	}

	if analysis.Analysis == nil {
		analysis.Analysis = []models.ChargeAnalysis{}
	}
	return analysis, nil
}

// reportContent loads a report together with the text an analysis works
// on: the final content when set, the generated content otherwise.
func reportContent(ctx context.Context, reports store.ReportRepository, userID, reportID string) (models.Report, string, error) {
	report, err := reports.GetReport(ctx, userID, reportID)
	if err != nil {
		return models.Report{}, "", fmt.Errorf("failed to get report: %w", err)
	}

	content, ok := report.Content()
	if !ok {
		return report, "", ErrNoReportContent
	}
	return report, content, nil
}
