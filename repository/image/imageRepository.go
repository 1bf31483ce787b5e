package image

import (
	"context"
	"database/sql"

	"github.com/sanjayz7/Home-Rental-Application5/model"
)

type Repo interface {
	InsertTx(ctx context.Context, tx *sql.Tx, img *model.Image) error
	ClearPrimaryTx(ctx context.Context, tx *sql.Tx, listingID int64) error
	ByID(ctx context.Context, id int64) (*model.Image, error)
	ForListing(ctx context.Context, listingID int64) ([]model.Image, error)
	Update(ctx context.Context, id int64, name *string, isPrimary *bool, sortOrder *int) (bool, error)
	Delete(ctx context.Context, id int64) error
	DeleteByListingTx(ctx context.Context, tx *sql.Tx, listingID int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) InsertTx(ctx context.Context, tx *sql.Tx, img *model.Image) error {
	const q = `
		INSERT INTO images (listing_id, url, name, size, width, height, is_primary, sort_order)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at`
	return tx.QueryRowContext(ctx, q,
		img.ListingID, img.URL, img.Name, img.Size, img.Width, img.Height,
		img.IsPrimary, img.SortOrder,
	).Scan(&img.ID, &img.CreatedAt)
}

func (r *repo) ClearPrimaryTx(ctx context.Context, tx *sql.Tx, listingID int64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE images SET is_primary = FALSE WHERE listing_id = $1`, listingID)
	return err
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Image, error) {
	const q = `
		SELECT id, listing_id, url, name, size, width, height, is_primary, sort_order, created_at
		FROM images
		WHERE id = $1`
	img := &model.Image{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&img.ID, &img.ListingID, &img.URL, &img.Name, &img.Size, &img.Width,
		&img.Height, &img.IsPrimary, &img.SortOrder, &img.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (r *repo) ForListing(ctx context.Context, listingID int64) ([]model.Image, error) {
	const q = `
		SELECT id, listing_id, url, name, size, width, height, is_primary, sort_order, created_at
		FROM images
		WHERE listing_id = $1
		ORDER BY sort_order, id`
	rows, err := r.db.QueryContext(ctx, q, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Image
	for rows.Next() {
		var img model.Image
		if err := rows.Scan(
			&img.ID, &img.ListingID, &img.URL, &img.Name, &img.Size, &img.Width,
			&img.Height, &img.IsPrimary, &img.SortOrder, &img.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, id int64, name *string, isPrimary *bool, sortOrder *int) (bool, error) {
	const q = `
		UPDATE images
		SET name = COALESCE($2, name),
			is_primary = COALESCE($3, is_primary),
			sort_order = COALESCE($4, sort_order)
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, name, isPrimary, sortOrder)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM images WHERE id = $1`, id)
	return err
}

func (r *repo) DeleteByListingTx(ctx context.Context, tx *sql.Tx, listingID int64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM images WHERE listing_id = $1`, listingID)
	return err
}
