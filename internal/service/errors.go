package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sale transaction failure modes. Handlers map these onto HTTP status
// categories so clients can react differently (open a register, reduce the
// quantity, retry later).
var (
	// ErrNoOpenCashSession rejects a sale when no register shift is active.
	ErrNoOpenCashSession = errors.New("no open cash session")

	// ErrEmptyCart rejects a sale with no line items.
	ErrEmptyCart = errors.New("sale must contain at least 1 item")

	// ErrInvalidQuantity rejects any line item with quantity <= 0.
	ErrInvalidQuantity = errors.New("quantity must be > 0")

	// ErrLockTimeout surfaces a bounded wait on the variant lock set expiring.
	ErrLockTimeout = errors.New("timed out waiting for inventory locks")

	// ErrCashSessionAlreadyOpen rejects opening a second register shift.
	ErrCashSessionAlreadyOpen = errors.New("cash session already open")
)

// VariantNotFoundError carries every requested variant id that does not exist.
type VariantNotFoundError struct {
	IDs []uuid.UUID
}

func (e *VariantNotFoundError) Error() string {
	return fmt.Sprintf("variant not found: %v", e.IDs)
}

// InsufficientStockError reports a consolidated quantity exceeding the
// locked row's current stock.
type InsufficientStockError struct {
	VariantID uuid.UUID
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for variant %s: available=%d, requested=%d",
		e.VariantID, e.Available, e.Requested)
}

// StockWouldGoNegativeError reports the decrement-time guard firing. The
// stock was already validated against the locked row, so seeing this means
// the lock acquisition itself misbehaved. The whole transaction rolls back.
type StockWouldGoNegativeError struct {
	VariantID uuid.UUID
}

func (e *StockWouldGoNegativeError) Error() string {
	return fmt.Sprintf("stock would go negative for variant %s", e.VariantID)
}

// TransactionError wraps unexpected storage failures during commit. The
// underlying cause is logged for operators but never shown to end users.
type TransactionError struct {
	Err error
}

func (e *TransactionError) Error() string { return "could not commit sale: " + e.Err.Error() }
func (e *TransactionError) Unwrap() error { return e.Err }
