package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"freight-engine/internal/core/clock"
	"freight-engine/internal/core/logger"
	"freight-engine/internal/core/money"
	"freight-engine/internal/core/refdata"
	"freight-engine/internal/features/compliance/domain"
	"freight-engine/internal/features/compliance/ports"
	factsports "freight-engine/internal/features/facts/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var hsCodePattern = regexp.MustCompile(`^\d{6,10}$`)

const (
	msgMalformedHsCode   = "HS code must be 6 to 10 digits"
	msgSanctionedLane    = "Trade lane touches a sanctioned country: %s"
	msgMissingDocument   = "Missing required document: %s"
	msgHazardousNoMsds   = "Hazardous cargo declared without MSDS on file"
	sugEscalateLegal     = "Escalate to the compliance/legal desk before booking"
	sugAttachMsds        = "Attach MSDS and a dangerous goods declaration"
	sugInsuranceHighVal  = "Attach an Insurance Certificate for cargo valued above 50,000 USD"
	sugProceedToFiling   = "No blocking findings; proceed to customs filing"
	docCommercialInvoice = "Commercial Invoice"
	docPackingList       = "Packing List"
	docCertOfOrigin      = "Certificate of Origin"
	docAirWaybill        = "Air Waybill"
	docBillOfLading      = "Bill of Lading"
	docInsuranceCert     = "Insurance Certificate"
	docMsds              = "MSDS"
)

// ComplianceService screens shipments for trade-compliance risk: HS code
// format, sanctioned lanes, document completeness and estimated duties.
type ComplianceService struct {
	repo  ports.CheckRepository
	facts factsports.FactStore
	sink  ports.AlertSink
	clock clock.Clock

	// mu serializes appends to the check history.
	mu sync.Mutex
}

// NewComplianceService creates a new ComplianceService.
func NewComplianceService(repo ports.CheckRepository, facts factsports.FactStore, sink ports.AlertSink, clk clock.Clock) *ComplianceService {
	return &ComplianceService{repo: repo, facts: facts, sink: sink, clock: clk}
}

// RunCheck screens the request and appends an immutable ComplianceCheck to
// the history. Fail is a terminal business outcome, not an error; a Fail
// linked to a shipment additionally raises a Compliance Failure exception.
func (s *ComplianceService) RunCheck(ctx context.Context, req domain.CheckRequest) (*domain.ComplianceCheck, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var issues, suggestions []string
	critical := 0

	// Step 1: HS code format. Malformed codes are critical findings.
	if !hsCodePattern.MatchString(req.HsCode) {
		issues = append(issues, msgMalformedHsCode)
		critical++
	}

	// Step 2: sanctioned-lane screening on normalized country names.
	origin := strings.ToUpper(req.OriginCountry)
	destination := strings.ToUpper(req.DestinationCountry)
	for _, term := range refdata.SanctionedCountryTerms {
		if strings.Contains(origin, term) || strings.Contains(destination, term) {
			issues = append(issues, fmt.Sprintf(msgSanctionedLane, term))
			suggestions = append(suggestions, sugEscalateLegal)
			critical++
		}
	}

	// Step 3: baseline document completeness.
	supplied := make(map[string]bool, len(req.Documents))
	for _, doc := range req.Documents {
		supplied[doc] = true
	}
	for _, required := range []string{docCommercialInvoice, docPackingList} {
		if !supplied[required] {
			issues = append(issues, fmt.Sprintf(msgMissingDocument, required))
		}
	}

	// Step 4: hazardous cargo needs an MSDS.
	if req.Hazardous && !supplied[docMsds] {
		issues = append(issues, msgHazardousNoMsds)
		suggestions = append(suggestions, sugAttachMsds)
	}

	// Step 5: high-value cargo without insurance is advisory only.
	if req.CargoValueUsd > 50000 && !supplied[docInsuranceCert] {
		suggestions = append(suggestions, sugInsuranceHighVal)
	}

	// Step 6: duty estimate.
	dutyUsd := money.Round2(req.CargoValueUsd * refdata.DutyRate(req.HsCode) * req.IncotermDutyAdjustment())

	// Step 7: generated document set.
	generated := s.generatedDocuments(ctx, req)

	// Step 8: terminal status.
	status := domain.StatusPass
	switch {
	case critical > 0:
		status = domain.StatusFail
	case len(issues) > 0 || len(suggestions) > 0:
		status = domain.StatusWarning
	}
	if status == domain.StatusPass && len(suggestions) == 0 {
		suggestions = append(suggestions, sugProceedToFiling)
	}

	check := domain.ComplianceCheck{
		ID:                 uuid.NewString(),
		TrackingNumber:     req.TrackingNumber,
		HsCode:             req.HsCode,
		DutyUsd:            dutyUsd,
		Status:             status,
		Issues:             issues,
		Suggestions:        suggestions,
		GeneratedDocuments: generated,
		CreatedAt:          s.clock.Now(),
	}

	s.mu.Lock()
	err := s.repo.Append(ctx, check)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("service: failed to append compliance check: %w", err)
	}

	if status == domain.StatusFail && req.TrackingNumber != "" {
		note := fmt.Sprintf("Compliance check %s failed: %s", check.ID, strings.Join(issues, "; "))
		s.sink.RaiseException(ctx, req.TrackingNumber, "Compliance Failure", "High", note)
	}

	logger.Get().Info("Compliance check completed",
		zap.String("check_id", check.ID),
		zap.String("status", string(status)),
		zap.Int("issues", len(issues)),
	)

	return &check, nil
}

// ListChecks returns the check history in creation order.
func (s *ComplianceService) ListChecks(ctx context.Context) ([]domain.ComplianceCheck, error) {
	checks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load compliance checks: %w", err)
	}
	return checks, nil
}

// generatedDocuments derives the document set for the entry. The transport
// document follows the linked shipment's mode; Air Waybill when the mode is
// unknown.
func (s *ComplianceService) generatedDocuments(ctx context.Context, req domain.CheckRequest) []string {
	docs := []string{docCommercialInvoice, docPackingList, docCertOfOrigin}

	mode := ""
	if req.TrackingNumber != "" {
		if shipment, err := s.facts.ShipmentByTracking(ctx, req.TrackingNumber); err == nil {
			mode = shipment.Mode
		}
	}
	if mode == "Sea" {
		docs = append(docs, docBillOfLading)
	} else {
		docs = append(docs, docAirWaybill)
	}

	if req.CargoValueUsd > 25000 || req.Incoterm == domain.IncotermCIF || req.Incoterm == domain.IncotermDDP {
		docs = append(docs, docInsuranceCert)
	}

	return docs
}
