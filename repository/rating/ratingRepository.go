package rating

import (
	"context"
	"database/sql"
	"time"

	"github.com/sanjayz7/Home-Rental-Application5/model"
)

type Row struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	UserName  string    `json:"user_name"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Repo interface {
	// Upsert relies on the unique index on (listing_id, user_id): the
	// storage layer, not application logic, prevents duplicates under
	// concurrent submissions.
	Upsert(ctx context.Context, rt *model.Rating) error
	ForListing(ctx context.Context, listingID int64) ([]Row, error)
	Average(ctx context.Context, listingID int64) (*float64, int64, error)
	DeleteByListingTx(ctx context.Context, tx *sql.Tx, listingID int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Upsert(ctx context.Context, rt *model.Rating) error {
	const q = `
		INSERT INTO ratings (listing_id, user_id, score, comment, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (listing_id, user_id)
		DO UPDATE SET score = EXCLUDED.score,
			comment = EXCLUDED.comment,
			created_at = NOW()
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q, rt.ListingID, rt.UserID, rt.Score, rt.Comment).
		Scan(&rt.ID, &rt.CreatedAt)
}

func (r *repo) ForListing(ctx context.Context, listingID int64) ([]Row, error) {
	const q = `
		SELECT r.id, r.user_id, u.name, r.score, r.comment, r.created_at
		FROM ratings r
		JOIN users u ON u.id = r.user_id
		WHERE r.listing_id = $1
		ORDER BY r.created_at DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, q, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var h Row
		if err := rows.Scan(&h.ID, &h.UserID, &h.UserName, &h.Score, &h.Comment, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Average returns (nil, 0) for listings with no ratings.
func (r *repo) Average(ctx context.Context, listingID int64) (*float64, int64, error) {
	const q = `SELECT AVG(score), COUNT(*) FROM ratings WHERE listing_id = $1`
	var avg sql.NullFloat64
	var count int64
	if err := r.db.QueryRowContext(ctx, q, listingID).Scan(&avg, &count); err != nil {
		return nil, 0, err
	}
	if !avg.Valid {
		return nil, 0, nil
	}
	return &avg.Float64, count, nil
}

func (r *repo) DeleteByListingTx(ctx context.Context, tx *sql.Tx, listingID int64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM ratings WHERE listing_id = $1`, listingID)
	return err
}
