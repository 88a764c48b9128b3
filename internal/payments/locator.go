package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/fluxpay/dummy-connector/internal/kvstore"
)

// Locator persists and resolves payment records. Two keyspaces share one
// store: paymentID -> PaymentRecord and attemptID -> paymentID (the
// secondary index written alongside every new record).
//
// The two writes for a new record are issued sequentially with no
// transaction; if one lands without the other, FindByAttemptID reports
// ErrPaymentNotFound rather than anything more specific. Nothing guards
// two concurrent derivations for the same attempt: the last write wins.
type Locator struct {
	store *kvstore.Store
}

// NewLocator returns a Locator backed by store.
func NewLocator(store *kvstore.Store) *Locator {
	return &Locator{store: store}
}

// conn mirrors the original connector's "get a store handle, fail the
// request if there is none" step.
func (l *Locator) conn() (*kvstore.Store, error) {
	if l.store == nil {
		return nil, fmt.Errorf("%w: no store connection", ErrInternal)
	}
	return l.store, nil
}

// StoreNewRecord writes the record under its payment id with the given ttl.
func (l *Locator) StoreNewRecord(ctx context.Context, record PaymentRecord, ttl time.Duration) error {
	store, err := l.conn()
	if err != nil {
		return err
	}
	if err := store.Put(ctx, record.PaymentID, record, ttl); err != nil {
		return fmt.Errorf("%w: payment %s: %v", ErrPaymentStoring, record.PaymentID, err)
	}
	return nil
}

// IndexAttempt writes the attemptID -> paymentID secondary index entry.
func (l *Locator) IndexAttempt(ctx context.Context, attemptID, paymentID string, ttl time.Duration) error {
	store, err := l.conn()
	if err != nil {
		return err
	}
	if err := store.Put(ctx, attemptID, paymentID, ttl); err != nil {
		return fmt.Errorf("%w: attempt %s: %v", ErrPaymentStoring, attemptID, err)
	}
	return nil
}

// FindByPaymentID resolves a record directly by its payment id.
func (l *Locator) FindByPaymentID(ctx context.Context, paymentID string) (PaymentRecord, error) {
	store, err := l.conn()
	if err != nil {
		return PaymentRecord{}, err
	}
	record, err := kvstore.Get[PaymentRecord](ctx, store, paymentID)
	if err != nil {
		return PaymentRecord{}, fmt.Errorf("%w: payment %s: %v", ErrPaymentNotFound, paymentID, err)
	}
	return record, nil
}

// FindByAttemptID resolves a record through the secondary index: the
// attempt id yields a payment id, which yields the record. A miss at
// either step reports ErrPaymentNotFound; the two cases are deliberately
// indistinguishable to callers.
func (l *Locator) FindByAttemptID(ctx context.Context, attemptID string) (PaymentRecord, error) {
	store, err := l.conn()
	if err != nil {
		return PaymentRecord{}, err
	}
	paymentID, err := kvstore.Get[string](ctx, store, attemptID)
	if err != nil {
		return PaymentRecord{}, fmt.Errorf("%w: attempt %s: %v", ErrPaymentNotFound, attemptID, err)
	}
	record, err := kvstore.Get[PaymentRecord](ctx, store, paymentID)
	if err != nil {
		return PaymentRecord{}, fmt.Errorf("%w: attempt %s: %v", ErrPaymentNotFound, attemptID, err)
	}
	return record, nil
}
