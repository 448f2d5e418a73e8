package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/report-buddy/internal/adapter"
	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/internal/store"
	"github.com/MKhiriev/report-buddy/models"
)

// courtPrepService runs mock cross-examinations. A session is analyzing
// until its opening question is stored, active while it accepts answers and
// completed after a debrief or an explicit end.
type courtPrepService struct {
	reports  store.ReportRepository
	legal    store.LegalRepository
	sessions store.CourtPrepRepository
	llm      adapter.ChatCompleter
	ids      IDGenerator
	now      func() time.Time
}

func NewCourtPrepService(reports store.ReportRepository, legal store.LegalRepository, sessions store.CourtPrepRepository, llm adapter.ChatCompleter, ids IDGenerator) CourtPrepService {
	return &courtPrepService{
		reports:  reports,
		legal:    legal,
		sessions: sessions,
		llm:      llm,
		ids:      ids,
		now:      time.Now,
	}
}

// StartSession analyzes the report for weaknesses and asks the first
// question. The session is removed again if either call fails.
func (s *courtPrepService) StartSession(ctx context.Context, userID string, req models.CourtPrepStartRequest) (models.CourtPrepStart, error) {
	log := logger.FromContext(ctx)

	report, content, err := reportContent(ctx, s.reports, userID, req.ReportID)
	if err != nil {
		return models.CourtPrepStart{}, err
	}

	docs, err := s.legal.ListLegalDocuments(ctx, userID)
	if err != nil {
		return models.CourtPrepStart{}, fmt.Errorf("failed to load legal documents: %w", err)
	}

	session, err := s.sessions.CreateSession(ctx, models.CourtPrepSession{
		ID:       s.ids.Generate(),
		ReportID: report.ID,
		UserID:   userID,
		Status:   models.SessionAnalyzing,
	})
	if err != nil {
		return models.CourtPrepStart{}, fmt.Errorf("failed to create session: %w", err)
	}

	start, err := s.open(ctx, session, report.ReportType, content, models.SplitLegalData(docs))
	if err != nil {
		log.Err(err).Str("func", "*courtPrepService.StartSession").Str("session_id", session.ID).Msg("failed to open session")
		if delErr := s.sessions.DeleteSession(context.WithoutCancel(ctx), session.ID); delErr != nil {
			log.Err(delErr).Str("session_id", session.ID).Msg("failed to remove aborted session")
		}
		return models.CourtPrepStart{}, err
	}

	log.Info().Str("session_id", session.ID).Str("report_id", report.ID).Msg("court prep session started")
	return start, nil
}

func (s *courtPrepService) open(ctx context.Context, session models.CourtPrepSession, reportType models.ReportType, content string, legal models.LegalData) (models.CourtPrepStart, error) {
	analysisReq := chat(vulnerabilityPrompt(reportType, legal), userContent(content), analysisTemperature, analysisMaxTokens)
	assessment, err := completeText(ctx, s.llm, analysisReq).Unwrap()
	if err != nil {
		return models.CourtPrepStart{}, err
	}

	questionReq := s.crossExamRequest(content, assessment, []Turn{{Role: models.RoleUser, Content: openingCue}})
	question, err := completeText(ctx, s.llm, questionReq).Unwrap()
	if err != nil {
		return models.CourtPrepStart{}, err
	}

	first := s.message(session.ID, models.RoleAssistant, question)
	if err = s.sessions.ActivateSession(ctx, session.ID, assessment, first); err != nil {
		return models.CourtPrepStart{}, fmt.Errorf("failed to activate session: %w", err)
	}

	return models.CourtPrepStart{
		SessionID:               session.ID,
		VulnerabilityAssessment: assessment,
		FirstQuestion:           question,
	}, nil
}

// SendMessage answers the officer's reply with the next question. Both turns
// are stored only after the reply was produced.
func (s *courtPrepService) SendMessage(ctx context.Context, userID string, req models.CourtPrepMessageRequest) (string, error) {
	session, err := s.session(ctx, userID, req.ReportID, req.SessionID)
	if err != nil {
		return "", err
	}
	if session.Status != models.SessionActive {
		return "", ErrSessionNotActive
	}

	_, content, err := reportContent(ctx, s.reports, userID, req.ReportID)
	if err != nil && !errors.Is(err, ErrNoReportContent) {
		return "", err
	}

	history, err := s.history(ctx, session.ID)
	if err != nil {
		return "", err
	}
	history = append(history, Turn{Role: models.RoleUser, Content: req.Message})

	chatReq := s.crossExamRequest(content, deref(session.VulnerabilityAssessment), Compact(history))
	reply, err := completeText(ctx, s.llm, chatReq).Unwrap()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*courtPrepService.SendMessage").Str("session_id", session.ID).Msg("cross examination call failed")
		return "", err
	}

	userTurn := s.message(session.ID, models.RoleUser, req.Message)
	replyTurn := s.message(session.ID, models.RoleAssistant, reply)
	replyTurn.CreatedAt = userTurn.CreatedAt.Add(time.Microsecond)

	if err = s.sessions.AppendExchange(ctx, session.ID, userTurn, replyTurn); err != nil {
		if errors.Is(err, store.ErrSessionNotActive) {
			return "", fmt.Errorf("%w: %w", ErrSessionNotActive, err)
		}
		return "", fmt.Errorf("failed to save exchange: %w", err)
	}

	return reply, nil
}

// Debrief assesses the officer's performance over the whole transcript and
// completes the session.
func (s *courtPrepService) Debrief(ctx context.Context, userID string, req models.CourtPrepSessionRequest) (string, error) {
	session, err := s.session(ctx, userID, req.ReportID, req.SessionID)
	if err != nil {
		return "", err
	}
	switch session.Status {
	case models.SessionActive:
	case models.SessionCompleted:
		return "", ErrSessionCompleted
	default:
		return "", ErrSessionNotActive
	}

	_, content, err := reportContent(ctx, s.reports, userID, req.ReportID)
	if err != nil && !errors.Is(err, ErrNoReportContent) {
		return "", err
	}

	history, err := s.history(ctx, session.ID)
	if err != nil {
		return "", err
	}

	messages := make([]models.ChatMessage, 0, len(history)+2)
	messages = append(messages, models.ChatMessage{Role: models.RoleSystem, Content: debriefPrompt(content, deref(session.VulnerabilityAssessment))})
	messages = append(messages, history...)
	messages = append(messages, models.ChatMessage{Role: models.RoleUser, Content: debriefCue})

	debrief, err := completeText(ctx, s.llm, models.ChatRequest{
		Messages:    messages,
		Temperature: debriefTemperature,
		MaxTokens:   debriefMaxTokens,
	}).Unwrap()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*courtPrepService.Debrief").Str("session_id", session.ID).Msg("debrief call failed")
		return "", err
	}

	if _, err = s.complete(ctx, session.ID, &debrief); err != nil {
		return "", err
	}
	return debrief, nil
}

func (s *courtPrepService) EndSession(ctx context.Context, userID string, req models.CourtPrepSessionRequest) error {
	session, err := s.session(ctx, userID, req.ReportID, req.SessionID)
	if err != nil {
		return err
	}
	if session.Status == models.SessionCompleted {
		return ErrSessionCompleted
	}

	_, err = s.complete(ctx, session.ID, nil)
	return err
}

func (s *courtPrepService) GetTranscript(ctx context.Context, userID, sessionID string) (models.CourtPrepTranscript, error) {
	session, err := s.sessions.GetSession(ctx, userID, sessionID)
	if err != nil {
		return models.CourtPrepTranscript{}, fmt.Errorf("failed to get session: %w", err)
	}

	messages, err := s.sessions.ListMessages(ctx, sessionID)
	if err != nil {
		return models.CourtPrepTranscript{}, fmt.Errorf("failed to list messages: %w", err)
	}

	return models.CourtPrepTranscript{Session: session, Messages: messages}, nil
}

// session loads a session of the user and checks that it belongs to the
// given report.
func (s *courtPrepService) session(ctx context.Context, userID, reportID, sessionID string) (models.CourtPrepSession, error) {
	session, err := s.sessions.GetSession(ctx, userID, sessionID)
	if err != nil {
		return models.CourtPrepSession{}, fmt.Errorf("failed to get session: %w", err)
	}
	if session.ReportID != reportID {
		return models.CourtPrepSession{}, store.ErrSessionNotFound
	}
	return session, nil
}

func (s *courtPrepService) history(ctx context.Context, sessionID string) ([]Turn, error) {
	stored, err := s.sessions.ListMessages(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	turns := make([]Turn, 0, len(stored)+1)
	for _, m := range stored {
		turns = append(turns, Turn{Role: m.Role, Content: m.Content})
	}
	return turns, nil
}

func (s *courtPrepService) complete(ctx context.Context, sessionID string, debrief *string) (models.CourtPrepSession, error) {
	session, err := s.sessions.CompleteSession(ctx, sessionID, debrief)
	if errors.Is(err, store.ErrSessionCompleted) {
		return models.CourtPrepSession{}, fmt.Errorf("%w: %w", ErrSessionCompleted, err)
	}
	if err != nil {
		return models.CourtPrepSession{}, fmt.Errorf("failed to complete session: %w", err)
	}
	return session, nil
}

func (s *courtPrepService) crossExamRequest(content, assessment string, turns []Turn) models.ChatRequest {
	messages := make([]models.ChatMessage, 0, len(turns)+1)
	messages = append(messages, models.ChatMessage{Role: models.RoleSystem, Content: crossExamPrompt(content, assessment)})
	messages = append(messages, turns...)

	return models.ChatRequest{
		Messages:    messages,
		Temperature: crossExamTemperature,
		MaxTokens:   crossExamMaxTokens,
	}
}

func (s *courtPrepService) message(sessionID string, role models.ChatRole, content string) models.CourtPrepMessage {
	return models.CourtPrepMessage{
		ID:        s.ids.Generate(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: s.now().UTC(),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
