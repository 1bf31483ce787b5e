package listing

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sanjayz7/Home-Rental-Application5/model"
)

type SearchFilter struct {
	Query     string
	City      string
	Category  string
	Furnished string
	Verified  bool
	MinPrice  *float64
	MaxPrice  *float64
	MinBeds   *int
	MinBaths  *int
	Page      int
	PageSize  int
}

type Repo interface {
	Insert(ctx context.Context, l *model.Listing) error
	ByID(ctx context.Context, id int64) (*model.Listing, error)
	ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Listing, error)
	ExistsTx(ctx context.Context, tx *sql.Tx, id int64) (bool, error)
	Search(ctx context.Context, f SearchFilter) (int64, []model.Listing, error)
	ByOwner(ctx context.Context, ownerID int64) ([]model.Listing, error)
	Update(ctx context.Context, l *model.Listing) error
	DeleteTx(ctx context.Context, tx *sql.Tx, id int64) error

	// Ledger ops: the only writers of available_units/status. The WHERE
	// guard is the inside-the-transaction availability re-check.
	DecrementUnit(ctx context.Context, tx *sql.Tx, id int64) (int64, error)
	IncrementUnit(ctx context.Context, tx *sql.Tx, id int64) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const listingCols = `id, owner_id, title, description, price, deposit, address, city, category,
	bedrooms, bathrooms, area_sqft, furnished, verified, total_units, available_units, status,
	latitude, longitude, created_at, updated_at`

func scanListing(row interface{ Scan(...any) error }) (*model.Listing, error) {
	l := &model.Listing{}
	err := row.Scan(
		&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.Price, &l.Deposit, &l.Address,
		&l.City, &l.Category, &l.Bedrooms, &l.Bathrooms, &l.AreaSqft, &l.Furnished,
		&l.Verified, &l.TotalUnits, &l.AvailableUnits, &l.Status,
		&l.Latitude, &l.Longitude, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *repo) Insert(ctx context.Context, l *model.Listing) error {
	const q = `
		INSERT INTO listings
			(owner_id, title, description, price, deposit, address, city, category,
			 bedrooms, bathrooms, area_sqft, furnished, verified,
			 total_units, available_units, status, latitude, longitude)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		l.OwnerID, l.Title, l.Description, l.Price, l.Deposit, l.Address, l.City, l.Category,
		l.Bedrooms, l.Bathrooms, l.AreaSqft, l.Furnished, l.Verified,
		l.TotalUnits, l.AvailableUnits, l.Status, l.Latitude, l.Longitude,
	).Scan(&l.ID, &l.CreatedAt)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Listing, error) {
	q := `SELECT ` + listingCols + ` FROM listings WHERE id = $1`
	return scanListing(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Listing, error) {
	q := `SELECT ` + listingCols + ` FROM listings WHERE id = $1 FOR UPDATE`
	return scanListing(tx.QueryRowContext(ctx, q, id))
}

func (r *repo) ExistsTx(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM listings WHERE id = $1`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *repo) Search(ctx context.Context, f SearchFilter) (int64, []model.Listing, error) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Query != "" {
		p := arg("%" + f.Query + "%")
		conds = append(conds, fmt.Sprintf("(title ILIKE %s OR address ILIKE %s OR description ILIKE %s)", p, p, p))
	}
	if f.City != "" {
		conds = append(conds, "city = "+arg(f.City))
	}
	if f.Category != "" {
		conds = append(conds, "category = "+arg(f.Category))
	}
	if f.Furnished != "" {
		conds = append(conds, "furnished = "+arg(f.Furnished))
	}
	if f.Verified {
		conds = append(conds, "verified = TRUE")
	}
	if f.MinPrice != nil {
		conds = append(conds, "price >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		conds = append(conds, "price <= "+arg(*f.MaxPrice))
	}
	if f.MinBeds != nil {
		conds = append(conds, "bedrooms >= "+arg(*f.MinBeds))
	}
	if f.MinBaths != nil {
		conds = append(conds, "bathrooms >= "+arg(*f.MinBaths))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM listings"+where, args...).Scan(&total); err != nil {
		return 0, nil, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	size := f.PageSize
	if size < 1 {
		size = 20
	}
	limit := arg(size)
	offset := arg((page - 1) * size)

	q := `SELECT ` + listingCols + ` FROM listings` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ` + limit + ` OFFSET ` + offset
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	var out []model.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return 0, nil, err
		}
		out = append(out, *l)
	}
	return total, out, rows.Err()
}

func (r *repo) ByOwner(ctx context.Context, ownerID int64) ([]model.Listing, error) {
	q := `SELECT ` + listingCols + ` FROM listings WHERE owner_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

// Update never touches total_units, available_units or status.
func (r *repo) Update(ctx context.Context, l *model.Listing) error {
	const q = `
		UPDATE listings
		SET title = $2, description = $3, price = $4, deposit = $5, address = $6,
			city = $7, category = $8, bedrooms = $9, bathrooms = $10, area_sqft = $11,
			furnished = $12, verified = $13, latitude = $14, longitude = $15,
			updated_at = NOW()
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q,
		l.ID, l.Title, l.Description, l.Price, l.Deposit, l.Address,
		l.City, l.Category, l.Bedrooms, l.Bathrooms, l.AreaSqft,
		l.Furnished, l.Verified, l.Latitude, l.Longitude,
	)
	return err
}

func (r *repo) DeleteTx(ctx context.Context, tx *sql.Tx, id int64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id)
	return err
}

func (r *repo) DecrementUnit(ctx context.Context, tx *sql.Tx, id int64) (int64, error) {
	const q = `
		UPDATE listings
		SET available_units = available_units - 1,
			status = CASE WHEN available_units - 1 <= 0 THEN 'unavailable' ELSE 'available' END,
			updated_at = NOW()
		WHERE id = $1
		AND available_units > 0`
	res, err := tx.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repo) IncrementUnit(ctx context.Context, tx *sql.Tx, id int64) (int64, error) {
	// Guard against crediting past total_units: that would mean a
	// double-credit slipped through the workflow.
	const q = `
		UPDATE listings
		SET available_units = available_units + 1,
			status = 'available',
			updated_at = NOW()
		WHERE id = $1
		AND available_units < total_units`
	res, err := tx.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
