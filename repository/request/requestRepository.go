package request

import (
	"context"
	"database/sql"
	"time"

	"github.com/sanjayz7/Home-Rental-Application5/model"
)

// Row joins in the requester and listing context for inbox views.
type Row struct {
	RequestID    int64               `json:"request_id"`
	ListingID    int64               `json:"listing_id"`
	ListingTitle string              `json:"listing_title"`
	UserID       int64               `json:"user_id"`
	UserName     string              `json:"user_name"`
	Message      string              `json:"message"`
	Response     string              `json:"response"`
	Status       model.RequestStatus `json:"status"`
	CreatedAt    time.Time           `json:"created_at"`
}

type Repo interface {
	Insert(ctx context.Context, pr *model.PropertyRequest) error
	ByID(ctx context.Context, id int64) (*model.PropertyRequest, error)
	HasPending(ctx context.Context, userID, listingID int64) (bool, error)
	SetStatus(ctx context.Context, id int64, status model.RequestStatus, response string) error
	Delete(ctx context.Context, id int64) error
	DeleteByListingTx(ctx context.Context, tx *sql.Tx, listingID int64) error
	ByUser(ctx context.Context, userID int64) ([]Row, error)
	ByOwner(ctx context.Context, ownerID int64) ([]Row, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, pr *model.PropertyRequest) error {
	const q = `
		INSERT INTO property_requests (listing_id, user_id, message, response, status)
		VALUES ($1, $2, $3, '', $4)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, q, pr.ListingID, pr.UserID, pr.Message, pr.Status).
		Scan(&pr.ID, &pr.CreatedAt, &pr.UpdatedAt)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.PropertyRequest, error) {
	const q = `
		SELECT id, listing_id, user_id, message, response, status, created_at, updated_at
		FROM property_requests
		WHERE id = $1`
	pr := &model.PropertyRequest{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&pr.ID, &pr.ListingID, &pr.UserID, &pr.Message, &pr.Response,
		&pr.Status, &pr.CreatedAt, &pr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return pr, nil
}

func (r *repo) HasPending(ctx context.Context, userID, listingID int64) (bool, error) {
	const q = `
		SELECT 1
		FROM property_requests
		WHERE user_id = $1
		AND listing_id = $2
		AND status = 'pending'
		LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, userID, listingID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *repo) SetStatus(ctx context.Context, id int64, status model.RequestStatus, response string) error {
	const q = `
		UPDATE property_requests
		SET status = $2,
			response = $3,
			updated_at = NOW()
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, status, response)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM property_requests WHERE id = $1`, id)
	return err
}

func (r *repo) DeleteByListingTx(ctx context.Context, tx *sql.Tx, listingID int64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM property_requests WHERE listing_id = $1`, listingID)
	return err
}

const rowSelect = `
	SELECT
		pr.id         AS request_id,
		pr.listing_id AS listing_id,
		l.title       AS listing_title,
		pr.user_id    AS user_id,
		u.name        AS user_name,
		pr.message    AS message,
		pr.response   AS response,
		pr.status     AS status,
		pr.created_at AS created_at
	FROM property_requests pr
	JOIN listings l ON l.id = pr.listing_id
	JOIN users u    ON u.id = pr.user_id`

func scanRows(rows *sql.Rows) ([]Row, error) {
	defer rows.Close()
	var out []Row
	for rows.Next() {
		var h Row
		if err := rows.Scan(
			&h.RequestID, &h.ListingID, &h.ListingTitle, &h.UserID, &h.UserName,
			&h.Message, &h.Response, &h.Status, &h.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *repo) ByUser(ctx context.Context, userID int64) ([]Row, error) {
	rows, err := r.db.QueryContext(ctx, rowSelect+`
		WHERE pr.user_id = $1
		ORDER BY pr.created_at DESC, pr.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}

func (r *repo) ByOwner(ctx context.Context, ownerID int64) ([]Row, error) {
	rows, err := r.db.QueryContext(ctx, rowSelect+`
		WHERE l.owner_id = $1
		ORDER BY pr.created_at DESC, pr.id DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}
