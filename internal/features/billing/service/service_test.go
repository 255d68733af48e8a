package service

import (
	"context"
	"testing"
	"time"

	"freight-engine/internal/core/clock"
	"freight-engine/internal/core/refdata"
	"freight-engine/internal/features/billing/domain"
	"freight-engine/internal/features/billing/ports"
	factsdomain "freight-engine/internal/features/facts/domain"
	ratesservice "freight-engine/internal/features/rates/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockInvoiceRepository is a mock implementation of ports.InvoiceRepository.
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Get(ctx context.Context, id string) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) List(ctx context.Context) ([]domain.Invoice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

// MockPaymentRepository is a mock implementation of ports.PaymentRepository.
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Append(ctx context.Context, payment domain.PaymentTransaction) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListByInvoice(ctx context.Context, invoiceID string) ([]domain.PaymentTransaction, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentTransaction), args.Error(1)
}

// MockFxRepository is a mock implementation of ports.FxRepository.
type MockFxRepository struct {
	mock.Mock
}

func (m *MockFxRepository) All(ctx context.Context) ([]domain.FxRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FxRate), args.Error(1)
}

func (m *MockFxRepository) ReplaceAll(ctx context.Context, rates []domain.FxRate) error {
	args := m.Called(ctx, rates)
	return args.Error(0)
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

// midweek avoids weekend surge pricing in the rate engine.
var midweek = clock.Fixed{Instant: time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC)}

type billingFixture struct {
	invoices *MockInvoiceRepository
	payments *MockPaymentRepository
	fx       *MockFxRepository
	facts    *MockFactStore
	sink     *MockAlertSink
	service  *BillingService
}

func newFixture(jitter Jitter) *billingFixture {
	f := &billingFixture{
		invoices: new(MockInvoiceRepository),
		payments: new(MockPaymentRepository),
		fx:       new(MockFxRepository),
		facts:    new(MockFactStore),
		sink:     new(MockAlertSink),
	}
	rateSvc := ratesservice.NewRateService(midweek, refdata.DefaultDistanceKm)
	f.service = NewBillingService(f.invoices, f.payments, f.fx, rateSvc, f.facts, f.sink, midweek, jitter, 0.01)
	return f
}

func fxTable() []domain.FxRate {
	return []domain.FxRate{
		{Currency: "USD", RateToUsd: 1},
		{Currency: "EUR", RateToUsd: 1.09},
		{Currency: "AED", RateToUsd: 0.27},
	}
}

func seaShipment() *factsdomain.ShipmentFact {
	return &factsdomain.ShipmentFact{
		TrackingNumber: "FRX-3001",
		Origin:         "Dubai, UAE",
		Destination:    "Mogadishu, Somalia",
		Mode:           "Sea",
		ServiceType:    "Standard",
		WeightKg:       500,
		VolumeCbm:      3,
	}
}

func TestCreateInvoice_DerivesCharges(t *testing.T) {
	f := newFixture(nil)
	f.fx.On("All", mock.Anything).Return(fxTable(), nil)
	f.facts.On("ShipmentByTracking", mock.Anything, "FRX-3001").Return(seaShipment(), nil)
	f.facts.On("JobByTracking", mock.Anything, "FRX-3001").Return(nil, nil)
	f.facts.On("CustomsDutyByTracking", mock.Anything, "FRX-3001").Return(500.0, nil)
	f.invoices.On("Save", mock.Anything, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()
	f.sink.On("RaiseException", mock.Anything, "FRX-3001", "Payment Pending", "Low", mock.AnythingOfType("string")).Return(nil).Once()

	invoice, err := f.service.CreateInvoice(context.Background(), ports.CreateInvoiceRequest{
		TrackingNumber:   "FRX-3001",
		Currency:         "EUR",
		Trigger:          "Delivery",
		IncludeInsurance: true,
	})
	require.NoError(t, err)

	// Sea on the 3000 km lane at 500 kg / 3 cbm on a weekday: 700 USD.
	assert.Equal(t, 700.0, invoice.FreightUsd)
	assert.Equal(t, 500.0, invoice.DutyUsd)
	// 3% of freight is below the floor.
	assert.Equal(t, 45.0, invoice.InsuranceUsd)
	assert.Equal(t, 1245.0, invoice.TotalUsd)

	assert.Equal(t, 642.2, invoice.FreightAmount)
	assert.Equal(t, 458.72, invoice.DutyAmount)
	assert.Equal(t, 41.28, invoice.InsuranceAmount)
	assert.Equal(t, 1142.2, invoice.TotalAmount)

	assert.Equal(t, domain.InvoiceStatusIssued, invoice.Status)
	assert.Equal(t, midweek.Now(), invoice.IssuedAt)
	assert.Equal(t, midweek.Now().AddDate(0, 0, 7), invoice.DueAt)
	assert.NotEmpty(t, invoice.ID)

	f.invoices.AssertExpectations(t)
	f.sink.AssertExpectations(t)
}

func TestCreateInvoice_FallbackFreightWhenNoModeMatch(t *testing.T) {
	f := newFixture(nil)
	shipment := seaShipment()
	shipment.Mode = "Rail"

	f.fx.On("All", mock.Anything).Return(fxTable(), nil)
	f.facts.On("ShipmentByTracking", mock.Anything, "FRX-3001").Return(shipment, nil)
	f.facts.On("JobByTracking", mock.Anything, "FRX-3001").Return(nil, nil)
	f.facts.On("CustomsDutyByTracking", mock.Anything, "FRX-3001").Return(0.0, nil)
	f.invoices.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.sink.On("RaiseException", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	invoice, err := f.service.CreateInvoice(context.Background(), ports.CreateInvoiceRequest{
		TrackingNumber: "FRX-3001",
		Currency:       "USD",
	})
	require.NoError(t, err)

	assert.Equal(t, 1500.0, invoice.FreightUsd)
	assert.Equal(t, 0.0, invoice.InsuranceUsd)
	assert.Equal(t, 1500.0, invoice.TotalUsd)
	assert.Equal(t, 1500.0, invoice.TotalAmount)
}

func TestCreateInvoice_UnknownCurrency(t *testing.T) {
	f := newFixture(nil)
	f.fx.On("All", mock.Anything).Return(fxTable(), nil)

	_, err := f.service.CreateInvoice(context.Background(), ports.CreateInvoiceRequest{
		TrackingNumber: "FRX-3001",
		Currency:       "XYZ",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownCurrency)
	f.facts.AssertNotCalled(t, "ShipmentByTracking", mock.Anything, mock.Anything)
}

func issuedInvoice() *domain.Invoice {
	return &domain.Invoice{
		ID:             "inv-1",
		TrackingNumber: "FRX-3001",
		Currency:       "USD",
		TotalAmount:    1245,
		TotalUsd:       1245,
		Status:         domain.InvoiceStatusIssued,
	}
}

func settledPayment(amountUsd float64) domain.PaymentTransaction {
	return domain.PaymentTransaction{
		InvoiceID: "inv-1",
		AmountUsd: amountUsd,
		Status:    domain.PaymentStatusSettled,
	}
}

func TestRecordPayment_FullSettlementMarksPaid(t *testing.T) {
	f := newFixture(nil)
	f.fx.On("All", mock.Anything).Return(fxTable(), nil)
	f.invoices.On("Get", mock.Anything, "inv-1").Return(issuedInvoice(), nil)
	f.payments.On("Append", mock.Anything, mock.AnythingOfType("domain.PaymentTransaction")).Return(nil).Once()
	f.payments.On("ListByInvoice", mock.Anything, "inv-1").Return([]domain.PaymentTransaction{settledPayment(1245)}, nil)
	f.invoices.On("Save", mock.Anything, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.InvoiceStatusPaid
	})).Return(nil).Once()

	payment, invoice, err := f.service.RecordPayment(context.Background(), ports.RecordPaymentRequest{
		InvoiceID: "inv-1",
		Method:    "Card",
		Amount:    1245,
		Currency:  "USD",
		Status:    domain.PaymentStatusSettled,
	})
	require.NoError(t, err)

	assert.Equal(t, 1245.0, payment.AmountUsd)
	assert.Equal(t, domain.InvoiceStatusPaid, invoice.Status)
	f.invoices.AssertExpectations(t)
	f.payments.AssertExpectations(t)
}

func TestRecordPayment_PartialSettlementMarksPartiallyPaid(t *testing.T) {
	f := newFixture(nil)
	f.fx.On("All", mock.Anything).Return(fxTable(), nil)
	f.invoices.On("Get", mock.Anything, "inv-1").Return(issuedInvoice(), nil)
	f.payments.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.payments.On("ListByInvoice", mock.Anything, "inv-1").Return([]domain.PaymentTransaction{settledPayment(500)}, nil)
	f.invoices.On("Save", mock.Anything, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.InvoiceStatusPartiallyPaid
	})).Return(nil).Once()

	_, invoice, err := f.service.RecordPayment(context.Background(), ports.RecordPaymentRequest{
		InvoiceID: "inv-1",
		Amount:    500,
		Currency:  "USD",
		Status:    domain.PaymentStatusSettled,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.InvoiceStatusPartiallyPaid, invoice.Status)
	f.invoices.AssertExpectations(t)
}

func TestRecordPayment_PendingDoesNotAdvanceStatus(t *testing.T) {
	f := newFixture(nil)
	f.fx.On("All", mock.Anything).Return(fxTable(), nil)
	f.invoices.On("Get", mock.Anything, "inv-1").Return(issuedInvoice(), nil)
	f.payments.On("Append", mock.Anything, mock.Anything).Return(nil)
	pending := domain.PaymentTransaction{InvoiceID: "inv-1", AmountUsd: 1245, Status: domain.PaymentStatusPending}
	f.payments.On("ListByInvoice", mock.Anything, "inv-1").Return([]domain.PaymentTransaction{pending}, nil)

	_, invoice, err := f.service.RecordPayment(context.Background(), ports.RecordPaymentRequest{
		InvoiceID: "inv-1",
		Amount:    1245,
		Currency:  "USD",
		Status:    domain.PaymentStatusPending,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.InvoiceStatusIssued, invoice.Status)
	f.invoices.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRecordPayment_PaidNeverRegresses(t *testing.T) {
	f := newFixture(nil)
	paid := issuedInvoice()
	paid.Status = domain.InvoiceStatusPaid

	f.fx.On("All", mock.Anything).Return(fxTable(), nil)
	f.invoices.On("Get", mock.Anything, "inv-1").Return(paid, nil)
	f.payments.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.payments.On("ListByInvoice", mock.Anything, "inv-1").Return([]domain.PaymentTransaction{settledPayment(10)}, nil)

	_, invoice, err := f.service.RecordPayment(context.Background(), ports.RecordPaymentRequest{
		InvoiceID: "inv-1",
		Amount:    10,
		Currency:  "USD",
		Status:    domain.PaymentStatusSettled,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.InvoiceStatusPaid, invoice.Status)
	f.invoices.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRecordPayment_NormalizesForeignCurrency(t *testing.T) {
	f := newFixture(nil)
	f.fx.On("All", mock.Anything).Return(fxTable(), nil)
	f.invoices.On("Get", mock.Anything, "inv-1").Return(issuedInvoice(), nil)
	f.payments.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.payments.On("ListByInvoice", mock.Anything, "inv-1").Return([]domain.PaymentTransaction{settledPayment(109)}, nil)
	f.invoices.On("Save", mock.Anything, mock.Anything).Return(nil)

	payment, _, err := f.service.RecordPayment(context.Background(), ports.RecordPaymentRequest{
		InvoiceID: "inv-1",
		Amount:    100,
		Currency:  "EUR",
		Status:    domain.PaymentStatusSettled,
	})
	require.NoError(t, err)

	assert.Equal(t, 100.0, payment.Amount)
	assert.Equal(t, 109.0, payment.AmountUsd)
}

func TestRecordPayment_Validation(t *testing.T) {
	f := newFixture(nil)

	_, _, err := f.service.RecordPayment(context.Background(), ports.RecordPaymentRequest{
		InvoiceID: "inv-1",
		Amount:    0,
		Currency:  "USD",
		Status:    domain.PaymentStatusSettled,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, _, err = f.service.RecordPayment(context.Background(), ports.RecordPaymentRequest{
		InvoiceID: "inv-1",
		Amount:    100,
		Currency:  "USD",
		Status:    "Refunded",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentStatus)

	f.payments.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestRecordPayment_MissingInvoice(t *testing.T) {
	f := newFixture(nil)
	f.fx.On("All", mock.Anything).Return(fxTable(), nil)
	f.invoices.On("Get", mock.Anything, "inv-9").Return(nil, nil)

	_, _, err := f.service.RecordPayment(context.Background(), ports.RecordPaymentRequest{
		InvoiceID: "inv-9",
		Amount:    100,
		Currency:  "USD",
		Status:    domain.PaymentStatusSettled,
	})
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

func TestRefreshFxRates_DriftsWithinBandAndPinsUsd(t *testing.T) {
	f := newFixture(func() float64 { return 1 })
	f.fx.On("All", mock.Anything).Return(fxTable(), nil)
	f.fx.On("ReplaceAll", mock.Anything, mock.AnythingOfType("[]domain.FxRate")).Return(nil).Once()

	rates, err := f.service.RefreshFxRates(context.Background())
	require.NoError(t, err)
	require.Len(t, rates, 3)

	byCurrency := map[string]domain.FxRate{}
	for _, r := range rates {
		byCurrency[r.Currency] = r
	}

	assert.Equal(t, 1.0, byCurrency["USD"].RateToUsd)
	// Full positive jitter at 1% moves EUR from 1.09 to 1.1009.
	assert.InDelta(t, 1.1009, byCurrency["EUR"].RateToUsd, 1e-9)
	assert.InDelta(t, 0.2727, byCurrency["AED"].RateToUsd, 1e-9)
	assert.Equal(t, midweek.Now(), byCurrency["EUR"].UpdatedAt)
	f.fx.AssertExpectations(t)
}
