package purchase

import (
	"context"
	"database/sql"
	"time"

	"github.com/sanjayz7/Home-Rental-Application5/model"
)

// Row is the purchase list shape with listing and buyer context joined in.
type Row struct {
	PurchaseID   int64                `json:"purchase_id"`
	ListingID    int64                `json:"listing_id"`
	ListingTitle string               `json:"listing_title"`
	Price        float64              `json:"price"`
	BuyerID      int64                `json:"buyer_id"`
	BuyerName    string               `json:"buyer_name"`
	Notes        string               `json:"notes"`
	Status       model.PurchaseStatus `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, p *model.Purchase) (int64, error)
	ForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Purchase, error)
	SetStatus(ctx context.Context, tx *sql.Tx, id int64, status model.PurchaseStatus) error
	DeleteTx(ctx context.Context, tx *sql.Tx, id int64) error
	DeleteByListingTx(ctx context.Context, tx *sql.Tx, listingID int64) error

	ByID(ctx context.Context, id int64) (*Row, error)
	ByBuyer(ctx context.Context, buyerID int64) ([]Row, error)
	ByListing(ctx context.Context, listingID int64) ([]Row, error)
	All(ctx context.Context) ([]Row, error)

	CountOpenByListingTx(ctx context.Context, tx *sql.Tx, listingID int64) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, p *model.Purchase) (int64, error) {
	const q = `
		INSERT INTO purchases (listing_id, buyer_id, notes, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	var id int64
	if err := tx.QueryRowContext(ctx, q, p.ListingID, p.BuyerID, p.Notes, p.Status).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) ForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Purchase, error) {
	const q = `
		SELECT id, listing_id, buyer_id, notes, status, created_at, updated_at
		FROM purchases
		WHERE id = $1
		FOR UPDATE`
	p := &model.Purchase{}
	err := tx.QueryRowContext(ctx, q, id).Scan(
		&p.ID, &p.ListingID, &p.BuyerID, &p.Notes, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repo) SetStatus(ctx context.Context, tx *sql.Tx, id int64, status model.PurchaseStatus) error {
	const q = `
		UPDATE purchases
		SET status = $2,
			updated_at = NOW()
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, id, status)
	return err
}

func (r *repo) DeleteTx(ctx context.Context, tx *sql.Tx, id int64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM purchases WHERE id = $1`, id)
	return err
}

func (r *repo) DeleteByListingTx(ctx context.Context, tx *sql.Tx, listingID int64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM purchases WHERE listing_id = $1`, listingID)
	return err
}

const rowSelect = `
	SELECT
		p.id         AS purchase_id,
		p.listing_id AS listing_id,
		l.title      AS listing_title,
		l.price      AS price,
		p.buyer_id   AS buyer_id,
		u.name       AS buyer_name,
		p.notes      AS notes,
		p.status     AS status,
		p.created_at AS created_at,
		p.updated_at AS updated_at
	FROM purchases p
	JOIN listings l ON l.id = p.listing_id
	JOIN users u    ON u.id = p.buyer_id`

func (r *repo) scanRows(rows *sql.Rows) ([]Row, error) {
	defer rows.Close()
	var out []Row
	for rows.Next() {
		var h Row
		if err := rows.Scan(
			&h.PurchaseID, &h.ListingID, &h.ListingTitle, &h.Price,
			&h.BuyerID, &h.BuyerName, &h.Notes, &h.Status, &h.CreatedAt, &h.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *repo) ByID(ctx context.Context, id int64) (*Row, error) {
	var h Row
	err := r.db.QueryRowContext(ctx, rowSelect+` WHERE p.id = $1`, id).Scan(
		&h.PurchaseID, &h.ListingID, &h.ListingTitle, &h.Price,
		&h.BuyerID, &h.BuyerName, &h.Notes, &h.Status, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *repo) ByBuyer(ctx context.Context, buyerID int64) ([]Row, error) {
	rows, err := r.db.QueryContext(ctx, rowSelect+`
		WHERE p.buyer_id = $1
		ORDER BY p.created_at DESC, p.id DESC`, buyerID)
	if err != nil {
		return nil, err
	}
	return r.scanRows(rows)
}

func (r *repo) ByListing(ctx context.Context, listingID int64) ([]Row, error) {
	rows, err := r.db.QueryContext(ctx, rowSelect+`
		WHERE p.listing_id = $1
		ORDER BY p.created_at DESC, p.id DESC`, listingID)
	if err != nil {
		return nil, err
	}
	return r.scanRows(rows)
}

func (r *repo) All(ctx context.Context) ([]Row, error) {
	rows, err := r.db.QueryContext(ctx, rowSelect+`
		ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, err
	}
	return r.scanRows(rows)
}

func (r *repo) CountOpenByListingTx(ctx context.Context, tx *sql.Tx, listingID int64) (int64, error) {
	const q = `
		SELECT COUNT(*)
		FROM purchases
		WHERE listing_id = $1
		AND status IN ('pending', 'completed')`
	var n int64
	err := tx.QueryRowContext(ctx, q, listingID).Scan(&n)
	return n, err
}
