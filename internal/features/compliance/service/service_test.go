package service

import (
	"context"
	"testing"
	"time"

	"freight-engine/internal/core/clock"
	"freight-engine/internal/features/compliance/domain"
	factsdomain "freight-engine/internal/features/facts/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCheckRepository is a mock implementation of ports.CheckRepository.
type MockCheckRepository struct {
	mock.Mock
}

func (m *MockCheckRepository) Append(ctx context.Context, check domain.ComplianceCheck) error {
	args := m.Called(ctx, check)
	return args.Error(0)
}

func (m *MockCheckRepository) List(ctx context.Context) ([]domain.ComplianceCheck, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ComplianceCheck), args.Error(1)
}

// MockFactStore is a mock implementation of the fact-store port.
type MockFactStore struct {
	mock.Mock
}

func (m *MockFactStore) ShipmentByTracking(ctx context.Context, tn string) (*factsdomain.ShipmentFact, error) {
	args := m.Called(ctx, tn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*factsdomain.ShipmentFact), args.Error(1)
}

func (m *MockFactStore) JobByTracking(ctx context.Context, tn string) (*factsdomain.CargoJob, error) {
	args := m.Called(ctx, tn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*factsdomain.CargoJob), args.Error(1)
}

func (m *MockFactStore) CustomsDutyByTracking(ctx context.Context, tn string) (float64, error) {
	args := m.Called(ctx, tn)
	return args.Get(0).(float64), args.Error(1)
}

// MockAlertSink is a mock implementation of ports.AlertSink.
type MockAlertSink struct {
	mock.Mock
}

func (m *MockAlertSink) RaiseException(ctx context.Context, trackingNumber, exceptionType, severity, note string) error {
	args := m.Called(ctx, trackingNumber, exceptionType, severity, note)
	return args.Error(0)
}

var testClock = clock.Fixed{Instant: time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)}

func newService(repo *MockCheckRepository, facts *MockFactStore, sink *MockAlertSink) *ComplianceService {
	return NewComplianceService(repo, facts, sink, testClock)
}

func validRequest() domain.CheckRequest {
	return domain.CheckRequest{
		HsCode:             "850440",
		OriginCountry:      "Germany",
		DestinationCountry: "Kenya",
		CargoValueUsd:      10000,
		Incoterm:           domain.IncotermFOB,
		Hazardous:          false,
		Documents:          []string{"Commercial Invoice", "Packing List"},
	}
}

func TestRunCheck_CleanPass(t *testing.T) {
	repo, facts, sink := new(MockCheckRepository), new(MockFactStore), new(MockAlertSink)
	repo.On("Append", mock.Anything, mock.AnythingOfType("domain.ComplianceCheck")).Return(nil)

	check, err := newService(repo, facts, sink).RunCheck(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPass, check.Status)
	assert.Empty(t, check.Issues)
	// A Pass never leaves the suggestion list empty.
	assert.Equal(t, []string{"No blocking findings; proceed to customs filing"}, check.Suggestions)
	// 85 prefix at FOB: 10000 * 0.05 * 1.00
	assert.Equal(t, 500.0, check.DutyUsd)
	assert.NotEmpty(t, check.ID)
	repo.AssertExpectations(t)
	sink.AssertNotCalled(t, "RaiseException", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRunCheck_MalformedHsCodeFails(t *testing.T) {
	repo, facts, sink := new(MockCheckRepository), new(MockFactStore), new(MockAlertSink)
	repo.On("Append", mock.Anything, mock.Anything).Return(nil)

	req := validRequest()
	req.HsCode = "abc123"

	check, err := newService(repo, facts, sink).RunCheck(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusFail, check.Status)
	assert.Contains(t, check.Issues, "HS code must be 6 to 10 digits")
}

func TestRunCheck_SanctionedLaneFailsAndAlerts(t *testing.T) {
	repo, facts, sink := new(MockCheckRepository), new(MockFactStore), new(MockAlertSink)
	repo.On("Append", mock.Anything, mock.Anything).Return(nil)
	facts.On("ShipmentByTracking", mock.Anything, "FRX-9").Return(nil, factsdomain.ErrShipmentNotFound)
	sink.On("RaiseException", mock.Anything, "FRX-9", "Compliance Failure", "High", mock.AnythingOfType("string")).Return(nil).Once()

	req := validRequest()
	req.TrackingNumber = "FRX-9"
	req.DestinationCountry = "Tehran, Iran"

	check, err := newService(repo, facts, sink).RunCheck(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusFail, check.Status)
	assert.Contains(t, check.Suggestions, "Escalate to the compliance/legal desk before booking")
	sink.AssertExpectations(t)
}

func TestRunCheck_MissingDocumentsWarns(t *testing.T) {
	repo, facts, sink := new(MockCheckRepository), new(MockFactStore), new(MockAlertSink)
	repo.On("Append", mock.Anything, mock.Anything).Return(nil)

	req := validRequest()
	req.Documents = nil

	check, err := newService(repo, facts, sink).RunCheck(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusWarning, check.Status)
	assert.Contains(t, check.Issues, "Missing required document: Commercial Invoice")
	assert.Contains(t, check.Issues, "Missing required document: Packing List")
}

func TestRunCheck_HazardousWithoutMsds(t *testing.T) {
	repo, facts, sink := new(MockCheckRepository), new(MockFactStore), new(MockAlertSink)
	repo.On("Append", mock.Anything, mock.Anything).Return(nil)

	req := validRequest()
	req.Hazardous = true

	check, err := newService(repo, facts, sink).RunCheck(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusWarning, check.Status)
	assert.Contains(t, check.Issues, "Hazardous cargo declared without MSDS on file")
	assert.Contains(t, check.Suggestions, "Attach MSDS and a dangerous goods declaration")
}

func TestRunCheck_HighValueSuggestionOnly(t *testing.T) {
	repo, facts, sink := new(MockCheckRepository), new(MockFactStore), new(MockAlertSink)
	repo.On("Append", mock.Anything, mock.Anything).Return(nil)

	req := validRequest()
	req.CargoValueUsd = 60000

	check, err := newService(repo, facts, sink).RunCheck(context.Background(), req)
	require.NoError(t, err)

	// Suggestion without an issue still demotes Pass to Warning.
	assert.Equal(t, domain.StatusWarning, check.Status)
	assert.Empty(t, check.Issues)
	assert.Contains(t, check.Suggestions, "Attach an Insurance Certificate for cargo valued above 50,000 USD")
}

func TestRunCheck_DutyMonotonicInCargoValue(t *testing.T) {
	repo, facts, sink := new(MockCheckRepository), new(MockFactStore), new(MockAlertSink)
	repo.On("Append", mock.Anything, mock.Anything).Return(nil)
	svc := newService(repo, facts, sink)

	prev := -1.0
	for _, value := range []float64{0, 100, 5000, 50000, 250000} {
		req := validRequest()
		req.CargoValueUsd = value

		check, err := svc.RunCheck(context.Background(), req)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, check.DutyUsd, prev)
		prev = check.DutyUsd
	}
}

func TestRunCheck_IncotermAdjustments(t *testing.T) {
	repo, facts, sink := new(MockCheckRepository), new(MockFactStore), new(MockAlertSink)
	repo.On("Append", mock.Anything, mock.Anything).Return(nil)
	svc := newService(repo, facts, sink)

	cases := map[domain.Incoterm]float64{
		domain.IncotermEXW: 500.0,
		domain.IncotermFOB: 500.0,
		domain.IncotermCIF: 525.0,
		domain.IncotermDDP: 550.0,
	}
	for incoterm, want := range cases {
		req := validRequest()
		req.Incoterm = incoterm

		check, err := svc.RunCheck(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, want, check.DutyUsd, "incoterm %s", incoterm)
	}
}

func TestRunCheck_GeneratedDocuments(t *testing.T) {
	repo, facts, sink := new(MockCheckRepository), new(MockFactStore), new(MockAlertSink)
	repo.On("Append", mock.Anything, mock.Anything).Return(nil)
	svc := newService(repo, facts, sink)

	t.Run("SeaShipmentGetsBillOfLading", func(t *testing.T) {
		facts.On("ShipmentByTracking", mock.Anything, "FRX-SEA").
			Return(&factsdomain.ShipmentFact{TrackingNumber: "FRX-SEA", Mode: "Sea"}, nil).Once()

		req := validRequest()
		req.TrackingNumber = "FRX-SEA"

		check, err := svc.RunCheck(context.Background(), req)
		require.NoError(t, err)
		assert.Contains(t, check.GeneratedDocuments, "Bill of Lading")
		assert.NotContains(t, check.GeneratedDocuments, "Air Waybill")
	})

	t.Run("UnknownModeGetsAirWaybill", func(t *testing.T) {
		check, err := svc.RunCheck(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Contains(t, check.GeneratedDocuments, "Air Waybill")
	})

	t.Run("CifAddsInsuranceCertificate", func(t *testing.T) {
		req := validRequest()
		req.Incoterm = domain.IncotermCIF

		check, err := svc.RunCheck(context.Background(), req)
		require.NoError(t, err)
		assert.Contains(t, check.GeneratedDocuments, "Insurance Certificate")
	})
}

func TestRunCheck_Deterministic(t *testing.T) {
	repo, facts, sink := new(MockCheckRepository), new(MockFactStore), new(MockAlertSink)
	repo.On("Append", mock.Anything, mock.Anything).Return(nil)
	svc := newService(repo, facts, sink)

	req := validRequest()
	req.Hazardous = true
	req.CargoValueUsd = 75000

	first, err := svc.RunCheck(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.RunCheck(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.Issues, second.Issues)
	assert.Equal(t, first.Suggestions, second.Suggestions)
	assert.Equal(t, first.DutyUsd, second.DutyUsd)
}

func TestRunCheck_InvalidIncoterm(t *testing.T) {
	repo, facts, sink := new(MockCheckRepository), new(MockFactStore), new(MockAlertSink)

	req := validRequest()
	req.Incoterm = "FAS"

	_, err := newService(repo, facts, sink).RunCheck(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidIncoterm)
	repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}
