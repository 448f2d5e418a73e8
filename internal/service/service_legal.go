package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/report-buddy/internal/adapter"
	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/internal/store"
	"github.com/MKhiriev/report-buddy/models"
)

// policySupportTitle names validations backed by policy rather than case law.
const policySupportTitle = "Policy Support"

type legalService struct {
	users   store.UserRepository
	reports store.ReportRepository
	legal   store.LegalRepository
	llm     adapter.ChatCompleter
	ids     IDGenerator
	now     func() time.Time
}

func NewLegalService(users store.UserRepository, reports store.ReportRepository, legal store.LegalRepository, llm adapter.ChatCompleter, ids IDGenerator) LegalService {
	return &legalService{
		users:   users,
		reports: reports,
		legal:   legal,
		llm:     llm,
		ids:     ids,
		now:     time.Now,
	}
}

// AnalyzeReport runs the legal analysis of the report's current content and
// replaces the references stored for it.
func (s *legalService) AnalyzeReport(ctx context.Context, userID, reportID string) (models.LegalAnalysis, error) {
	log := logger.FromContext(ctx)

	report, content, err := reportContent(ctx, s.reports, userID, reportID)
	if err != nil {
		return models.LegalAnalysis{}, err
	}

	var (
		user models.User
		docs []models.PolicyDocument
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if user, err = s.users.GetUser(gctx, userID); err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if docs, err = s.legal.ListLegalDocuments(gctx, userID); err != nil {
			return fmt.Errorf("failed to load legal documents: %w", err)
		}
		return nil
	})
	if err = g.Wait(); err != nil {
		return models.LegalAnalysis{}, err
	}

	policies := models.SplitLegalData(docs).Policies
	chatReq := chat(legalPrompt(user.Jurisdiction(), policies), legalUserPrompt(report.ReportType, content), legalTemperature, legalMaxTokens)

	analysis, err := completeJSON[models.LegalAnalysis](ctx, s.llm, chatReq).Unwrap()
	if err != nil {
		log.Err(err).Str("func", "*legalService.AnalyzeReport").Str("report_id", reportID).Msg("legal analysis failed")
		return models.LegalAnalysis{}, err
	}
	analysis = normalizeAnalysis(analysis)

	refs, err := s.references(userID, reportID, analysis)
	if err != nil {
		return models.LegalAnalysis{}, err
	}
	if err = s.legal.ReplaceReferences(ctx, reportID, refs); err != nil {
		return models.LegalAnalysis{}, fmt.Errorf("failed to save legal references: %w", err)
	}

	log.Info().Str("report_id", reportID).Int("references", len(refs)).Msg("legal analysis saved")
	return analysis, nil
}

// references flattens an analysis into stored rows.
func (s *legalService) references(userID, reportID string, a models.LegalAnalysis) ([]models.LegalReference, error) {
	now := s.now()
	refs := make([]models.LegalReference, 0, len(a.Validations)+len(a.Clarifications)+len(a.RelevantReferences))

	newRef := func(kind models.LegalReferenceType, title, content string) models.LegalReference {
		return models.LegalReference{
			ID:            s.ids.Generate(),
			ReportID:      reportID,
			UserID:        userID,
			ReferenceType: kind,
			Title:         title,
			Content:       content,
			CreatedAt:     now,
		}
	}

	for _, v := range a.Validations {
		title := v.CaseLaw
		if title == "" {
			title = policySupportTitle
		}
		ref := newRef(models.ReferenceValidation, title, v.Support)
		ref.Citation = optionalString(v.Policy)
		ref.ActionValidated = optionalString(v.Action)
		refs = append(refs, ref)
	}

	for _, c := range a.Clarifications {
		body, err := json.Marshal(struct {
			Reason     string `json:"reason"`
			Suggestion string `json:"suggestion"`
		}{c.Reason, c.Suggestion})
		if err != nil {
			return nil, fmt.Errorf("failed to encode clarification: %w", err)
		}
		refs = append(refs, newRef(models.ReferenceClarification, c.Issue, string(body)))
	}

	for _, r := range a.RelevantReferences {
		ref := newRef(models.ReferenceCaseLaw, r.Title, r.Relevance)
		ref.Citation = optionalString(r.Citation)
		refs = append(refs, ref)
	}

	return refs, nil
}

func (s *legalService) UploadPolicy(ctx context.Context, userID string, req models.PolicyUploadRequest) (models.PolicyDocument, error) {
	doc, err := s.legal.CreatePolicy(ctx, models.PolicyDocument{
		ID:        s.ids.Generate(),
		UserID:    userID,
		Filename:  req.Filename,
		Content:   req.Content,
		IsCaseLaw: req.IsCaseLaw,
	})
	if err != nil {
		return models.PolicyDocument{}, fmt.Errorf("failed to upload policy: %w", err)
	}
	return doc, nil
}

func (s *legalService) ListPolicies(ctx context.Context, userID string) ([]models.PolicyDocument, error) {
	docs, err := s.legal.ListPolicies(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}
	return docs, nil
}

func (s *legalService) DeletePolicy(ctx context.Context, userID, policyID string) error {
	if err := s.legal.DeletePolicy(ctx, userID, policyID); err != nil {
		return fmt.Errorf("failed to delete policy: %w", err)
	}
	return nil
}

func normalizeAnalysis(a models.LegalAnalysis) models.LegalAnalysis {
	if a.Validations == nil {
		a.Validations = []models.LegalValidation{}
	}
	if a.Clarifications == nil {
		a.Clarifications = []models.LegalClarification{}
	}
	if a.RelevantReferences == nil {
		a.RelevantReferences = []models.RelevantReference{}
	}
	return a
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
