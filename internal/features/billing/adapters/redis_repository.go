package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"freight-engine/internal/core/cache"
	"freight-engine/internal/features/billing/domain"
)

const (
	invoicesKey       = "billing:invoices"
	fxRatesKey        = "billing:fx"
	paymentsKeyPrefix = "billing:payments:"
)

// RedisInvoiceRepository implements ports.InvoiceRepository using the cache
// adapter. All invoices live under one key as a JSON array; Save upserts
// by invoice id.
type RedisInvoiceRepository struct {
	cache cache.Cache
}

// NewRedisInvoiceRepository creates a new RedisInvoiceRepository.
func NewRedisInvoiceRepository(c cache.Cache) *RedisInvoiceRepository {
	return &RedisInvoiceRepository{cache: c}
}

// Save upserts an invoice by id, preserving creation order.
func (r *RedisInvoiceRepository) Save(ctx context.Context, invoice domain.Invoice) error {
	invoices, err := r.List(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range invoices {
		if invoices[i].ID == invoice.ID {
			invoices[i] = invoice
			replaced = true
			break
		}
	}
	if !replaced {
		invoices = append(invoices, invoice)
	}

	data, err := json.Marshal(invoices)
	if err != nil {
		return fmt.Errorf("failed to marshal invoices: %w", err)
	}

	if err := r.cache.Set(ctx, invoicesKey, data, 0); err != nil {
		return fmt.Errorf("failed to save invoices: %w", err)
	}

	return nil
}

// Get returns the invoice for an id, or (nil, nil) when absent.
func (r *RedisInvoiceRepository) Get(ctx context.Context, id string) (*domain.Invoice, error) {
	invoices, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range invoices {
		if invoices[i].ID == id {
			return &invoices[i], nil
		}
	}

	return nil, nil
}

// List returns every invoice in creation order.
func (r *RedisInvoiceRepository) List(ctx context.Context) ([]domain.Invoice, error) {
	data, err := r.cache.Get(ctx, invoicesKey)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}

	var invoices []domain.Invoice
	if err := json.Unmarshal(data, &invoices); err != nil {
		return nil, fmt.Errorf("failed to unmarshal invoices: %w", err)
	}

	return invoices, nil
}

// RedisPaymentRepository implements ports.PaymentRepository using the cache
// adapter. Payments are keyed per invoice and append-only.
type RedisPaymentRepository struct {
	cache cache.Cache
}

// NewRedisPaymentRepository creates a new RedisPaymentRepository.
func NewRedisPaymentRepository(c cache.Cache) *RedisPaymentRepository {
	return &RedisPaymentRepository{cache: c}
}

// Append adds a payment to its invoice's ledger.
func (r *RedisPaymentRepository) Append(ctx context.Context, payment domain.PaymentTransaction) error {
	payments, err := r.ListByInvoice(ctx, payment.InvoiceID)
	if err != nil {
		return err
	}

	payments = append(payments, payment)
	data, err := json.Marshal(payments)
	if err != nil {
		return fmt.Errorf("failed to marshal payments: %w", err)
	}

	if err := r.cache.Set(ctx, paymentsKeyPrefix+payment.InvoiceID, data, 0); err != nil {
		return fmt.Errorf("failed to save payments: %w", err)
	}

	return nil
}

// ListByInvoice returns an invoice's payments in recording order.
func (r *RedisPaymentRepository) ListByInvoice(ctx context.Context, invoiceID string) ([]domain.PaymentTransaction, error) {
	data, err := r.cache.Get(ctx, paymentsKeyPrefix+invoiceID)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	var payments []domain.PaymentTransaction
	if err := json.Unmarshal(data, &payments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payments: %w", err)
	}

	return payments, nil
}

// RedisFxRepository implements ports.FxRepository using the cache adapter.
// The whole FX table is replaced atomically on every refresh.
type RedisFxRepository struct {
	cache cache.Cache
}

// NewRedisFxRepository creates a new RedisFxRepository.
func NewRedisFxRepository(c cache.Cache) *RedisFxRepository {
	return &RedisFxRepository{cache: c}
}

// All returns the FX table.
func (r *RedisFxRepository) All(ctx context.Context) ([]domain.FxRate, error) {
	data, err := r.cache.Get(ctx, fxRatesKey)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load FX rates: %w", err)
	}

	var rates []domain.FxRate
	if err := json.Unmarshal(data, &rates); err != nil {
		return nil, fmt.Errorf("failed to unmarshal FX rates: %w", err)
	}

	return rates, nil
}

// ReplaceAll overwrites the FX table.
func (r *RedisFxRepository) ReplaceAll(ctx context.Context, rates []domain.FxRate) error {
	data, err := json.Marshal(rates)
	if err != nil {
		return fmt.Errorf("failed to marshal FX rates: %w", err)
	}

	if err := r.cache.Set(ctx, fxRatesKey, data, 0); err != nil {
		return fmt.Errorf("failed to save FX rates: %w", err)
	}

	return nil
}
