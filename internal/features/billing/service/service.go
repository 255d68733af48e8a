package service

import (
	"context"
	"fmt"
	"sync"

	"freight-engine/internal/core/clock"
	"freight-engine/internal/core/logger"
	"freight-engine/internal/core/money"
	"freight-engine/internal/features/billing/domain"
	"freight-engine/internal/features/billing/ports"
	factsdomain "freight-engine/internal/features/facts/domain"
	factsports "freight-engine/internal/features/facts/ports"
	ratesdomain "freight-engine/internal/features/rates/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	fallbackFreightUsd = 1500.0
	minInsuranceUsd    = 45.0
	insuranceRate      = 0.03
	invoiceDueDays     = 7
	defaultWeightKg    = 100
	defaultVolumeCbm   = 1
)

// Jitter produces a value in [-1, 1] scaling the per-refresh FX drift.
// Injectable so tests can pin deterministic rates.
type Jitter func() float64

// BillingService derives invoices from rate and compliance output, converts
// amounts across currencies, and reconciles payments to invoice status.
type BillingService struct {
	invoices ports.InvoiceRepository
	payments ports.PaymentRepository
	fx       ports.FxRepository
	rates    ports.RateEngine
	facts    factsports.FactStore
	sink     ports.AlertSink
	clock    clock.Clock

	jitter        Jitter
	jitterPercent float64

	// mu serializes settlement read-modify-write sequences so the invoice
	// status is always computed against a consistent payment sum.
	mu sync.Mutex
}

// NewBillingService creates a new BillingService.
func NewBillingService(invoices ports.InvoiceRepository, payments ports.PaymentRepository, fx ports.FxRepository, rates ports.RateEngine, facts factsports.FactStore, sink ports.AlertSink, clk clock.Clock, jitter Jitter, jitterPercent float64) *BillingService {
	return &BillingService{
		invoices:      invoices,
		payments:      payments,
		fx:            fx,
		rates:         rates,
		facts:         facts,
		sink:          sink,
		clock:         clk,
		jitter:        jitter,
		jitterPercent: jitterPercent,
	}
}

// CreateInvoice derives and issues an invoice for a shipment. Freight comes
// from the rate option matching the shipment's mode, duty from the recorded
// customs entry, and every amount is converted into the invoice currency.
func (s *BillingService) CreateInvoice(ctx context.Context, req ports.CreateInvoiceRequest) (*domain.Invoice, error) {
	rate, err := s.rateToUsd(ctx, req.Currency)
	if err != nil {
		return nil, err
	}

	shipment, err := s.facts.ShipmentByTracking(ctx, req.TrackingNumber)
	if err != nil {
		return nil, err
	}

	job, err := s.facts.JobByTracking(ctx, req.TrackingNumber)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load cargo job: %w", err)
	}

	freightUsd := s.freightUsd(shipment.Origin, shipment.Destination, shipment.Mode, shipment.ServiceType, pickWeight(shipment.WeightKg, job), pickVolume(shipment.VolumeCbm, job))

	dutyUsd, err := s.facts.CustomsDutyByTracking(ctx, req.TrackingNumber)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load customs duty: %w", err)
	}

	insuranceUsd := 0.0
	if req.IncludeInsurance {
		insuranceUsd = freightUsd * insuranceRate
		if insuranceUsd < minInsuranceUsd {
			insuranceUsd = minInsuranceUsd
		}
	}

	totalUsd := money.Round2(freightUsd + dutyUsd + insuranceUsd)

	now := s.clock.Now()
	invoice := domain.Invoice{
		ID:             uuid.NewString(),
		TrackingNumber: req.TrackingNumber,
		Currency:       req.Currency,

		FreightAmount:   money.Round2(freightUsd / rate),
		DutyAmount:      money.Round2(dutyUsd / rate),
		InsuranceAmount: money.Round2(insuranceUsd / rate),
		TotalAmount:     money.Round2(totalUsd / rate),

		FreightUsd:   money.Round2(freightUsd),
		DutyUsd:      money.Round2(dutyUsd),
		InsuranceUsd: money.Round2(insuranceUsd),
		TotalUsd:     totalUsd,

		Status:      domain.InvoiceStatusIssued,
		Trigger:     req.Trigger,
		BillingPlan: req.BillingPlan,
		IssuedAt:    now,
		DueAt:       now.AddDate(0, 0, invoiceDueDays),
	}

	s.mu.Lock()
	err = s.invoices.Save(ctx, invoice)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("service: failed to save invoice: %w", err)
	}

	note := fmt.Sprintf("Invoice %s for %.2f %s due %s", invoice.ID, invoice.TotalAmount, invoice.Currency, invoice.DueAt.Format("2006-01-02"))
	s.sink.RaiseException(ctx, req.TrackingNumber, "Payment Pending", "Low", note)

	logger.Get().Info("Invoice issued",
		zap.String("invoice_id", invoice.ID),
		zap.String("tracking_number", req.TrackingNumber),
		zap.String("currency", req.Currency),
		zap.Float64("total_usd", invoice.TotalUsd),
	)

	return &invoice, nil
}

// RecordPayment appends a payment transaction and recomputes the invoice's
// settlement status from the cumulative Settled payments. Status never
// regresses.
func (s *BillingService) RecordPayment(ctx context.Context, req ports.RecordPaymentRequest) (*domain.PaymentTransaction, *domain.Invoice, error) {
	if req.Amount <= 0 {
		return nil, nil, domain.ErrInvalidAmount
	}
	if err := domain.ValidatePaymentStatus(req.Status); err != nil {
		return nil, nil, err
	}

	rate, err := s.rateToUsd(ctx, req.Currency)
	if err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	invoice, err := s.invoices.Get(ctx, req.InvoiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("service: failed to load invoice: %w", err)
	}
	if invoice == nil {
		return nil, nil, domain.ErrInvoiceNotFound
	}

	payment := domain.PaymentTransaction{
		ID:           uuid.NewString(),
		InvoiceID:    req.InvoiceID,
		Method:       req.Method,
		Type:         req.Type,
		Amount:       req.Amount,
		Currency:     req.Currency,
		AmountUsd:    money.Round2(req.Amount * rate),
		Status:       req.Status,
		ThreeDSecure: req.ThreeDSecure,
		Tokenized:    req.Tokenized,
		TwoFactor:    req.TwoFactor,
		Reference:    req.Reference,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.payments.Append(ctx, payment); err != nil {
		return nil, nil, fmt.Errorf("service: failed to append payment: %w", err)
	}

	settled, err := s.settledSumUsd(ctx, req.InvoiceID)
	if err != nil {
		return nil, nil, err
	}

	newStatus := invoice.Status
	switch {
	case settled >= invoice.TotalUsd:
		newStatus = domain.InvoiceStatusPaid
	case settled > 0 && invoice.Status != domain.InvoiceStatusPaid:
		newStatus = domain.InvoiceStatusPartiallyPaid
	}

	if newStatus != invoice.Status {
		invoice.Status = newStatus
		if err := s.invoices.Save(ctx, *invoice); err != nil {
			return nil, nil, fmt.Errorf("service: failed to save invoice: %w", err)
		}
	}

	logger.Get().Info("Payment recorded",
		zap.String("invoice_id", req.InvoiceID),
		zap.Float64("amount_usd", payment.AmountUsd),
		zap.String("invoice_status", string(invoice.Status)),
	)

	return &payment, invoice, nil
}

// GetInvoice returns the invoice for an id.
func (s *BillingService) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	invoice, err := s.invoices.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load invoice: %w", err)
	}
	if invoice == nil {
		return nil, domain.ErrInvoiceNotFound
	}
	return invoice, nil
}

// ListInvoices returns every invoice in creation order.
func (s *BillingService) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	invoices, err := s.invoices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load invoices: %w", err)
	}
	return invoices, nil
}

// ListPayments returns the payments recorded against an invoice.
func (s *BillingService) ListPayments(ctx context.Context, invoiceID string) ([]domain.PaymentTransaction, error) {
	payments, err := s.payments.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load payments: %w", err)
	}
	return payments, nil
}

// FxRates returns the current FX table.
func (s *BillingService) FxRates(ctx context.Context) ([]domain.FxRate, error) {
	rates, err := s.fx.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load FX rates: %w", err)
	}
	return rates, nil
}

// RefreshFxRates drifts every non-USD rate by up to the configured jitter.
// This is a periodic market simulation, not a live feed; USD stays pinned
// at 1 and only its timestamp moves.
func (s *BillingService) RefreshFxRates(ctx context.Context) ([]domain.FxRate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rates, err := s.fx.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load FX rates: %w", err)
	}

	now := s.clock.Now()
	for i := range rates {
		if rates[i].Currency != "USD" {
			rates[i].RateToUsd *= 1 + s.jitter()*s.jitterPercent
		} else {
			rates[i].RateToUsd = 1
		}
		rates[i].UpdatedAt = now
	}

	if err := s.fx.ReplaceAll(ctx, rates); err != nil {
		return nil, fmt.Errorf("service: failed to save FX rates: %w", err)
	}

	return rates, nil
}

// rateToUsd resolves the FX rate for a currency or fails with
// ErrUnknownCurrency.
func (s *BillingService) rateToUsd(ctx context.Context, currency string) (float64, error) {
	rates, err := s.fx.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("service: failed to load FX rates: %w", err)
	}
	for _, r := range rates {
		if r.Currency == currency {
			return r.RateToUsd, nil
		}
	}
	return 0, domain.ErrUnknownCurrency
}

// freightUsd prices the shipment and returns the option matching its mode,
// or the fallback when no option matches.
func (s *BillingService) freightUsd(origin, destination, mode, serviceType string, weightKg, volumeCbm float64) float64 {
	req := ratesdomain.RateRequest{
		Origin:      origin,
		Destination: destination,
		WeightKg:    weightKg,
		VolumeCbm:   volumeCbm,
		ServiceType: ratesdomain.ServiceType(serviceType),
	}
	if req.ServiceType != ratesdomain.ServiceTypeExpress {
		req.ServiceType = ratesdomain.ServiceTypeStandard
	}

	for _, opt := range s.rates.QuoteRates(req) {
		if opt.Mode == mode {
			return opt.PriceUsd
		}
	}
	return fallbackFreightUsd
}

// settledSumUsd sums the USD amounts of every Settled payment on an invoice.
func (s *BillingService) settledSumUsd(ctx context.Context, invoiceID string) (float64, error) {
	payments, err := s.payments.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return 0, fmt.Errorf("service: failed to load payments: %w", err)
	}

	sum := 0.0
	for _, p := range payments {
		if p.Status == domain.PaymentStatusSettled {
			sum += p.AmountUsd
		}
	}
	return sum, nil
}

func pickWeight(shipmentWeight float64, job *factsdomain.CargoJob) float64 {
	if shipmentWeight > 0 {
		return shipmentWeight
	}
	if job != nil && job.WeightKg > 0 {
		return job.WeightKg
	}
	return defaultWeightKg
}

func pickVolume(shipmentVolume float64, job *factsdomain.CargoJob) float64 {
	if shipmentVolume > 0 {
		return shipmentVolume
	}
	if job != nil && job.VolumeCbm > 0 {
		return job.VolumeCbm
	}
	return defaultVolumeCbm
}
