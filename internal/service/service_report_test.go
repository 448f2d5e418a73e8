package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/report-buddy/internal/mock"
	"github.com/MKhiriev/report-buddy/internal/store"
	"github.com/MKhiriev/report-buddy/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestReportService_CreateReport_DefaultTitle(t *testing.T) {
	reports := &mockReportRepository{}
	svc := NewReportService(reports, &mockLegalRepository{}, nil, &seqIDs{})

	report, err := svc.CreateReport(context.Background(), "u1", models.CreateReportRequest{ReportType: models.ReportArrest})
	require.NoError(t, err)
	assert.Equal(t, "id-1", report.ID)
	assert.Equal(t, "u1", report.UserID)
	assert.Equal(t, models.ReportDraft, report.Status)
	assert.Equal(t, "New arrest report", report.Title)

	report, err = svc.CreateReport(context.Background(), "u1", models.CreateReportRequest{ReportType: models.ReportArrest, Title: ptr("DUI stop")})
	require.NoError(t, err)
	assert.Equal(t, "DUI stop", report.Title)
}

func TestReportService_GetReport_AttachesReferences(t *testing.T) {
	reports := &mockReportRepository{
		getFn: func(context.Context, string, string) (models.Report, error) { return reportWith(nil, nil), nil },
	}
	legal := &mockLegalRepository{
		listRefsFn: func(_ context.Context, reportID string) ([]models.LegalReference, error) {
			return []models.LegalReference{{ID: "ref-1", ReportID: reportID}}, nil
		},
	}
	svc := NewReportService(reports, legal, nil, &seqIDs{})

	report, err := svc.GetReport(context.Background(), "u1", "r1")
	require.NoError(t, err)
	require.Len(t, report.LegalReferences, 1)
	assert.Equal(t, "ref-1", report.LegalReferences[0].ID)
}

func TestReportService_GetReport_NotFound(t *testing.T) {
	svc := NewReportService(&mockReportRepository{}, &mockLegalRepository{}, nil, &seqIDs{})

	_, err := svc.GetReport(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, store.ErrReportNotFound)
}

func TestReportService_SuggestCharges(t *testing.T) {
	reports := &mockReportRepository{
		getFn: func(context.Context, string, string) (models.Report, error) {
			return reportWith(ptr("generated"), ptr("final narrative")), nil
		},
	}
	llm := mock.NewMockChatCompleter(gomock.NewController(t))
	llm.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.ChatRequest) (string, error) {
			assert.True(t, req.JSON)
			assert.Contains(t, req.Messages[1].Content, "final narrative")
			return `{"charges": [
				{"charge": "A"}, {"charge": "B"}, {"charge": "C"}, {"charge": "D"}
			]}`, nil
		})
	svc := NewReportService(reports, &mockLegalRepository{}, llm, &seqIDs{})

	got, err := svc.SuggestCharges(context.Background(), "u1", "r1")
	require.NoError(t, err)
	assert.Len(t, got.Charges, models.MaxSuggestedCharges)
	assert.Equal(t, "C", got.Charges[2].Charge)
}

func TestReportService_SuggestCharges_EmptyListIsNotNil(t *testing.T) {
	reports := &mockReportRepository{
		getFn: func(context.Context, string, string) (models.Report, error) { return reportWith(ptr("text"), nil), nil },
	}
	llm := mock.NewMockChatCompleter(gomock.NewController(t))
	llm.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(`{}`, nil)
	svc := NewReportService(reports, &mockLegalRepository{}, llm, &seqIDs{})

	got, err := svc.SuggestCharges(context.Background(), "u1", "r1")
	require.NoError(t, err)
	assert.NotNil(t, got.Charges)
	assert.Empty(t, got.Charges)
}

func TestReportService_CheckElements(t *testing.T) {
	reports := &mockReportRepository{
		getFn: func(context.Context, string, string) (models.Report, error) { return reportWith(ptr("text"), nil), nil },
	}
	llm := mock.NewMockChatCompleter(gomock.NewController(t))
	llm.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.ChatRequest) (string, error) {
			assert.Contains(t, req.Messages[1].Content, "Burglary")
			return "```json\n{\"analysis\": [{\"charge\": \"Burglary\", \"elements\": [], \"overall\": \"weak\", \"summary\": \"s\"}]}\n```", nil
		})
	svc := NewReportService(reports, &mockLegalRepository{}, llm, &seqIDs{})

	got, err := svc.CheckElements(context.Background(), "u1", "r1", models.CheckElementsRequest{Charges: []string{"Burglary"}})
	require.NoError(t, err)
	require.Len(t, got.Analysis, 1)
	assert.Equal(t, "weak", got.Analysis[0].Overall)
}

func TestReportContent_Precedence(t *testing.T) {
	tests := []struct {
		name      string
		generated *string
		final     *string
		want      string
		wantErr   error
	}{
		{name: "final wins", generated: ptr("gen"), final: ptr("final"), want: "final"},
		{name: "generated when no final", generated: ptr("gen"), want: "gen"},
		{name: "empty final still wins", generated: ptr("gen"), final: ptr(""), want: ""},
		{name: "nothing", wantErr: ErrNoReportContent},
		{name: "empty generated", generated: ptr(""), wantErr: ErrNoReportContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reports := &mockReportRepository{
				getFn: func(context.Context, string, string) (models.Report, error) {
					return reportWith(tt.generated, tt.final), nil
				},
			}

			_, content, err := reportContent(context.Background(), reports, "u1", "r1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, content)
		})
	}
}
