// Package ledger owns the available_units/status pair on listings.
// Every mutation happens inside a caller-supplied transaction; the
// guarded UPDATEs re-verify availability against the current row, not a
// value read earlier in request handling.
package ledger

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/sanjayz7/Home-Rental-Application5/util/fail"
)

type Repo interface {
	DecrementUnit(ctx context.Context, tx *sql.Tx, listingID int64) (int64, error)
	IncrementUnit(ctx context.Context, tx *sql.Tx, listingID int64) (int64, error)
	ExistsTx(ctx context.Context, tx *sql.Tx, listingID int64) (bool, error)
}

type Service interface {
	// Debit takes one unit; fails OUT_OF_INVENTORY when none are left.
	Debit(ctx context.Context, tx *sql.Tx, listingID int64) error

	// Credit returns one unit. Callers guard it to at most one call per
	// cancelled/deleted purchase; a credit that would exceed total_units
	// is an INVARIANT_VIOLATION and aborts the transaction.
	Credit(ctx context.Context, tx *sql.Tx, listingID int64) error
}

type service struct {
	r   Repo
	log *slog.Logger
}

func New(r Repo, log *slog.Logger) Service { return &service{r: r, log: log} }

func (s *service) Debit(ctx context.Context, tx *sql.Tx, listingID int64) error {
	aff, err := s.r.DecrementUnit(ctx, tx, listingID)
	if err != nil {
		return err
	}
	if aff > 0 {
		return nil
	}
	exists, err := s.r.ExistsTx(ctx, tx, listingID)
	if err != nil {
		return err
	}
	if !exists {
		return fail.New(fail.NotFound, "listing not found")
	}
	return fail.New(fail.OutOfInventory, "no units available")
}

func (s *service) Credit(ctx context.Context, tx *sql.Tx, listingID int64) error {
	aff, err := s.r.IncrementUnit(ctx, tx, listingID)
	if err != nil {
		return err
	}
	if aff > 0 {
		return nil
	}
	exists, err := s.r.ExistsTx(ctx, tx, listingID)
	if err != nil {
		return err
	}
	if !exists {
		return fail.New(fail.NotFound, "listing not found")
	}
	// available_units == total_units already: a unit is being credited
	// twice somewhere. Log loudly, abort the operation.
	s.log.Error("unit credit would exceed total_units", "listing_id", listingID)
	return fail.New(fail.InvariantViolation, "unit credit would exceed total_units")
}
