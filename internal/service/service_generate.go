package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/report-buddy/internal/adapter"
	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/internal/store"
	"github.com/MKhiriev/report-buddy/models"
)

// maxTitleRunes bounds a generated title before it is stored.
const maxTitleRunes = 200

type generationService struct {
	reports store.ReportRepository
	styles  store.StyleRepository
	legal   store.LegalRepository
	llm     adapter.ChatCompleter
}

func NewGenerationService(reports store.ReportRepository, styles store.StyleRepository, legal store.LegalRepository, llm adapter.ChatCompleter) GenerationService {
	return &generationService{
		reports: reports,
		styles:  styles,
		legal:   legal,
		llm:     llm,
	}
}

// CheckTranscript asks whether the transcript is complete enough to write a
// report from and returns at most two follow-up questions otherwise.
func (s *generationService) CheckTranscript(ctx context.Context, req models.GenerateCheckRequest) (models.FollowUpCheck, error) {
	chatReq := chat(followUpPrompt(req.ReportType), userContent(req.Transcript), checkTemperature, checkMaxTokens)

	check, err := completeJSON[models.FollowUpCheck](ctx, s.llm, chatReq).Unwrap()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*generationService.CheckTranscript").Msg("transcript check failed")
		return models.FollowUpCheck{}, err
	}

	if check.Ready {
		check.Questions = nil
	} else if len(check.Questions) > 2 {
		check.Questions = check.Questions[:2]
	}
	return check, nil
}

// GenerateReport writes the report from the transcript in the user's style
// and suggests a title for it. Both completions run concurrently.
func (s *generationService) GenerateReport(ctx context.Context, userID string, req models.GenerateReportRequest) (models.GeneratedReport, error) {
	log := logger.FromContext(ctx)

	report, err := s.reports.GetReport(ctx, userID, req.ReportID)
	if err != nil {
		return models.GeneratedReport{}, fmt.Errorf("failed to get report: %w", err)
	}

	system, err := s.systemPrompt(ctx, userID, report.ReportType)
	if err != nil {
		return models.GeneratedReport{}, err
	}

	var content, title string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out := chat(system, reportUserPrompt(report.ReportType, req.Transcript, req.Incomplete), reportTemperature, reportMaxTokens)
		var err error
		content, err = completeText(gctx, s.llm, out).Unwrap()
		return err
	})
	g.Go(func() error {
		out := chat(titlePrompt, titleUserPrompt(report.ReportType, req.Transcript), titleTemperature, titleMaxTokens)
		var err error
		title, err = completeText(gctx, s.llm, out).Unwrap()
		return err
	})
	if err = g.Wait(); err != nil {
		log.Err(err).Str("func", "*generationService.GenerateReport").Str("report_id", req.ReportID).Msg("report generation failed")
		return models.GeneratedReport{}, err
	}

	title = cleanTitle(title, report.ReportType)
	_, err = s.reports.UpdateReport(ctx, userID, req.ReportID, models.ReportUpdate{
		Transcript:       models.Some(req.Transcript),
		GeneratedContent: models.Some(content),
		Title:            models.Some(title),
	})
	if err != nil {
		return models.GeneratedReport{}, fmt.Errorf("failed to save generated report: %w", err)
	}

	log.Info().Str("report_id", req.ReportID).Int("content_length", len(content)).Msg("report generated")
	return models.GeneratedReport{
		ReportID:         req.ReportID,
		GeneratedContent: content,
		SuggestedTitle:   title,
	}, nil
}

// systemPrompt gathers the style profile, the first examples and the legal
// documents of the user.
func (s *generationService) systemPrompt(ctx context.Context, userID string, reportType models.ReportType) (string, error) {
	var (
		profile  models.StyleProfile
		examples []models.ExampleReport
		docs     []models.PolicyDocument
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = s.styles.GetStyleProfile(gctx, userID, reportType)
		if err != nil {
			if !errors.Is(err, store.ErrStyleProfileNotFound) {
				return fmt.Errorf("failed to load style profile: %w", err)
			}
			profile = models.DefaultStyleProfile(userID, reportType)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		examples, err = s.styles.ListExamples(gctx, userID, reportType, maxStyleExamples)
		if err != nil {
			return fmt.Errorf("failed to load example reports: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		docs, err = s.legal.ListLegalDocuments(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load legal documents: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	return reportSystemPrompt(reportType, profile, examples, models.SplitLegalData(docs)), nil
}

// RefineReport applies the officer's feedback to the current content. The
// result replaces the generated content and discards any manual edit.
func (s *generationService) RefineReport(ctx context.Context, userID string, req models.RefineRequest) (models.RefinedReport, error) {
	_, content, err := reportContent(ctx, s.reports, userID, req.ReportID)
	if err != nil {
		return models.RefinedReport{}, err
	}

	chatReq := chat(refinePrompt, refineUserPrompt(content, req.Refinement), reportTemperature, reportMaxTokens)
	refined, err := completeText(ctx, s.llm, chatReq).Unwrap()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*generationService.RefineReport").Msg("refinement failed")
		return models.RefinedReport{}, err
	}

	_, err = s.reports.UpdateReport(ctx, userID, req.ReportID, models.ReportUpdate{
		GeneratedContent: models.Some(refined),
		FinalContent:     models.Null[string](),
	})
	if err != nil {
		return models.RefinedReport{}, fmt.Errorf("failed to save refined report: %w", err)
	}

	return models.RefinedReport{ReportID: req.ReportID, GeneratedContent: refined}, nil
}

func cleanTitle(title string, reportType models.ReportType) string {
	title = strings.Trim(strings.TrimSpace(title), `"'`)
	if title == "" {
		return reportType.DefaultTitle()
	}
	if runes := []rune(title); len(runes) > maxTitleRunes {
		title = string(runes[:maxTitleRunes])
	}
	return title
}
