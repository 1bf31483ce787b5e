package admin

import (
	"context"
	"database/sql"
)

// Stats is the dashboard snapshot. All counts come back zero-valued on
// empty tables, never as errors.
type Stats struct {
	TotalListings       int64 `json:"total_listings"`
	VerifiedListings    int64 `json:"verified_listings"`
	WithLocation        int64 `json:"with_location"`
	WithImages          int64 `json:"with_images"`
	TotalUsers          int64 `json:"total_users"`
	ActiveUsers         int64 `json:"active_users"`
	Owners              int64 `json:"owners"`
	PendingPurchases    int64 `json:"pending_purchases"`
	CompletedPurchases  int64 `json:"completed_purchases"`
	CancelledPurchases  int64 `json:"cancelled_purchases"`
}

type Repo interface {
	DashboardStats(ctx context.Context) (*Stats, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) DashboardStats(ctx context.Context) (*Stats, error) {
	s := &Stats{}

	const listingsQ = `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE verified),
			COUNT(*) FILTER (WHERE latitude IS NOT NULL AND longitude IS NOT NULL)
		FROM listings`
	if err := r.db.QueryRowContext(ctx, listingsQ).
		Scan(&s.TotalListings, &s.VerifiedListings, &s.WithLocation); err != nil {
		return nil, err
	}

	const usersQ = `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE role = 'user'),
			COUNT(*) FILTER (WHERE role = 'owner')
		FROM users`
	if err := r.db.QueryRowContext(ctx, usersQ).
		Scan(&s.TotalUsers, &s.ActiveUsers, &s.Owners); err != nil {
		return nil, err
	}

	const imagesQ = `SELECT COUNT(DISTINCT listing_id) FROM images`
	if err := r.db.QueryRowContext(ctx, imagesQ).Scan(&s.WithImages); err != nil {
		return nil, err
	}

	const purchasesQ = `
		SELECT COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'cancelled')
		FROM purchases`
	if err := r.db.QueryRowContext(ctx, purchasesQ).
		Scan(&s.PendingPurchases, &s.CompletedPurchases, &s.CancelledPurchases); err != nil {
		return nil, err
	}

	return s, nil
}
