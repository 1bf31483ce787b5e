package purchasesvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sanjayz7/Home-Rental-Application5/model"
	prepo "github.com/sanjayz7/Home-Rental-Application5/repository/purchase"
	"github.com/sanjayz7/Home-Rental-Application5/service/ledger"
	"github.com/sanjayz7/Home-Rental-Application5/util/fail"
)

// Row = repository shape
type Row = prepo.Row

type ListingReader interface {
	ByID(ctx context.Context, id int64) (*model.Listing, error)
	ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Listing, error)
}

type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, p *model.Purchase) (int64, error)
	ForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Purchase, error)
	SetStatus(ctx context.Context, tx *sql.Tx, id int64, status model.PurchaseStatus) error
	DeleteTx(ctx context.Context, tx *sql.Tx, id int64) error

	ByID(ctx context.Context, id int64) (*Row, error)
	ByBuyer(ctx context.Context, buyerID int64) ([]Row, error)
	ByListing(ctx context.Context, listingID int64) ([]Row, error)
	All(ctx context.Context) ([]Row, error)
}

type Service interface {
	// Create reserves one unit for the buyer, all-or-nothing.
	Create(ctx context.Context, buyerID, listingID int64, notes string) (int64, error)

	// UpdateStatus transitions a purchase; cancelling a pending purchase
	// credits its unit back exactly once.
	UpdateStatus(ctx context.Context, actorID int64, role string, purchaseID int64, newStatus model.PurchaseStatus) error

	// Delete removes a purchase, crediting the unit back when it was
	// still pending.
	Delete(ctx context.Context, actorID int64, role string, purchaseID int64) error

	ByID(ctx context.Context, actorID int64, role string, purchaseID int64) (*Row, error)
	MyPurchases(ctx context.Context, buyerID int64) ([]Row, error)
	ByListing(ctx context.Context, actorID int64, role string, listingID int64) ([]Row, error)
	All(ctx context.Context) ([]Row, error)
}

type service struct {
	db  *sql.DB
	r   Repo
	lr  ListingReader
	led ledger.Service
}

func New(db *sql.DB, r Repo, lr ListingReader, led ledger.Service) Service {
	return &service{db: db, r: r, lr: lr, led: led}
}

func (s *service) Create(ctx context.Context, buyerID, listingID int64, notes string) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	l, err := s.lr.ByIDForUpdate(ctx, tx, listingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fail.New(fail.NotFound, "listing not found")
		}
		return 0, err
	}
	if l.OwnerID == buyerID {
		return 0, fail.New(fail.Forbidden, "cannot purchase your own listing")
	}
	if l.AvailableUnits <= 0 {
		return 0, fail.New(fail.OutOfInventory, "no units available")
	}

	id, err = s.r.Insert(ctx, tx, &model.Purchase{
		ListingID: listingID,
		BuyerID:   buyerID,
		Notes:     notes,
		Status:    model.PurchasePending,
	})
	if err != nil {
		return 0, err
	}

	// The ledger re-checks availability against the row it updates, so a
	// concurrent purchase that slips past the read above still cannot
	// take the last unit twice.
	if err = s.led.Debit(ctx, tx, listingID); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func validStatus(st model.PurchaseStatus) bool {
	switch st {
	case model.PurchasePending, model.PurchaseCompleted, model.PurchaseCancelled:
		return true
	}
	return false
}

func (s *service) UpdateStatus(ctx context.Context, actorID int64, role string, purchaseID int64, newStatus model.PurchaseStatus) (err error) {
	if !validStatus(newStatus) {
		return fail.New(fail.InvalidArgument, "invalid status value")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	p, err := s.r.ForUpdate(ctx, tx, purchaseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail.New(fail.NotFound, "purchase not found")
		}
		return err
	}

	l, err := s.lr.ByIDForUpdate(ctx, tx, p.ListingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail.New(fail.NotFound, "listing not found")
		}
		return err
	}

	// Owner and admin may set any status; the buyer may only cancel
	// their own purchase.
	allowed := role == model.RoleAdmin || actorID == l.OwnerID ||
		(actorID == p.BuyerID && newStatus == model.PurchaseCancelled)
	if !allowed {
		return fail.New(fail.Forbidden, "not allowed to update this purchase")
	}

	// Closed purchases are never resurrected.
	if newStatus == model.PurchasePending && p.Status != model.PurchasePending {
		return fail.New(fail.Conflict, "purchase already closed")
	}
	if p.Status == model.PurchaseCancelled && newStatus != model.PurchaseCancelled {
		return fail.New(fail.Conflict, "purchase already cancelled")
	}

	// Credit back only when a pending purchase becomes cancelled. The
	// guard reads the stored status before any mutation: repeating a
	// cancel, or cancelling a completed purchase, never re-credits.
	if newStatus == model.PurchaseCancelled && p.Status == model.PurchasePending {
		if err = s.led.Credit(ctx, tx, p.ListingID); err != nil {
			return err
		}
	}

	if err = s.r.SetStatus(ctx, tx, purchaseID, newStatus); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) Delete(ctx context.Context, actorID int64, role string, purchaseID int64) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	p, err := s.r.ForUpdate(ctx, tx, purchaseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail.New(fail.NotFound, "purchase not found")
		}
		return err
	}
	if role != model.RoleAdmin && actorID != p.BuyerID {
		return fail.New(fail.Forbidden, "not allowed to delete this purchase")
	}

	// Same credit-back guard as cancellation.
	if p.Status == model.PurchasePending {
		if err = s.led.Credit(ctx, tx, p.ListingID); err != nil {
			return err
		}
	}

	if err = s.r.DeleteTx(ctx, tx, purchaseID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) ByID(ctx context.Context, actorID int64, role string, purchaseID int64) (*Row, error) {
	row, err := s.r.ByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fail.New(fail.NotFound, "purchase not found")
		}
		return nil, err
	}
	if role != model.RoleAdmin && actorID != row.BuyerID {
		return nil, fail.New(fail.Forbidden, "not allowed to view this purchase")
	}
	return row, nil
}

func (s *service) MyPurchases(ctx context.Context, buyerID int64) ([]Row, error) {
	return s.r.ByBuyer(ctx, buyerID)
}

func (s *service) ByListing(ctx context.Context, actorID int64, role string, listingID int64) ([]Row, error) {
	if role != model.RoleAdmin {
		l, err := s.lr.ByID(ctx, listingID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fail.New(fail.NotFound, "listing not found")
			}
			return nil, err
		}
		if l.OwnerID != actorID {
			return nil, fail.New(fail.Forbidden, "not the listing owner")
		}
	}
	return s.r.ByListing(ctx, listingID)
}

func (s *service) All(ctx context.Context) ([]Row, error) {
	return s.r.All(ctx)
}
