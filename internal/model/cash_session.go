package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashSession represents a register shift. At most one session may be open
// (ClosedAt IS NULL) at any time, enforced by CashRepository.FindOpen plus
// the service-level guard on open.
//
// ExpectedAmount and DifferenceAmount are snapshotted at close time so the
// reconciliation stays auditable even if sales are later inspected with
// different queries — they are never recomputed.
type CashSession struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	OpenedAt      time.Time       `gorm:"not null;index"`
	OpenedBy      *string         `gorm:"type:varchar(80)"`
	OpeningAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`

	ClosedAt      *time.Time
	ClosedBy      *string          `gorm:"type:varchar(80)"`
	ClosingAmount *decimal.Decimal `gorm:"type:decimal(10,2)"`

	// ExpectedAmount = OpeningAmount + SUM(sale totals since OpenedAt).
	ExpectedAmount *decimal.Decimal `gorm:"type:decimal(10,2)"`
	// DifferenceAmount = ClosingAmount - ExpectedAmount (signed).
	DifferenceAmount *decimal.Decimal `gorm:"type:decimal(10,2)"`
}

// IsOpen reports whether the session has not been closed yet.
func (s *CashSession) IsOpen() bool { return s.ClosedAt == nil }
