package listingsvc

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/sanjayz7/Home-Rental-Application5/model"
	geocoderepo "github.com/sanjayz7/Home-Rental-Application5/repository/geocode"
	lrepo "github.com/sanjayz7/Home-Rental-Application5/repository/listing"
	"github.com/sanjayz7/Home-Rental-Application5/util/fail"
)

// SearchFilter = repository shape
type SearchFilter = lrepo.SearchFilter

type CreateInput struct {
	Title       string
	Description string
	Price       float64
	Deposit     float64
	Address     string
	City        string
	Category    string
	Bedrooms    int
	Bathrooms   int
	AreaSqft    float64
	Furnished   string
	TotalUnits  int
	Latitude    *float64
	Longitude   *float64
	ImageURLs   []string
}

type UpdateInput struct {
	Title       *string
	Description *string
	Price       *float64
	Deposit     *float64
	Address     *string
	City        *string
	Category    *string
	Bedrooms    *int
	Bathrooms   *int
	AreaSqft    *float64
	Furnished   *string
	Verified    *bool
	Latitude    *float64
	Longitude   *float64
}

type Repo interface {
	Insert(ctx context.Context, l *model.Listing) error
	ByID(ctx context.Context, id int64) (*model.Listing, error)
	Search(ctx context.Context, f SearchFilter) (int64, []model.Listing, error)
	ByOwner(ctx context.Context, ownerID int64) ([]model.Listing, error)
	Update(ctx context.Context, l *model.Listing) error
	DeleteTx(ctx context.Context, tx *sql.Tx, id int64) error
}

type ImageRepo interface {
	InsertTx(ctx context.Context, tx *sql.Tx, img *model.Image) error
	DeleteByListingTx(ctx context.Context, tx *sql.Tx, listingID int64) error
}

type RatingRepo interface {
	DeleteByListingTx(ctx context.Context, tx *sql.Tx, listingID int64) error
}

type RequestRepo interface {
	DeleteByListingTx(ctx context.Context, tx *sql.Tx, listingID int64) error
}

type PurchaseRepo interface {
	CountOpenByListingTx(ctx context.Context, tx *sql.Tx, listingID int64) (int64, error)
	DeleteByListingTx(ctx context.Context, tx *sql.Tx, listingID int64) error
}

type Service interface {
	Create(ctx context.Context, ownerID int64, in CreateInput) (*model.Listing, error)
	ByID(ctx context.Context, id int64) (*model.Listing, error)
	Search(ctx context.Context, f SearchFilter) (int64, []model.Listing, error)
	Mine(ctx context.Context, ownerID int64) ([]model.Listing, error)
	Update(ctx context.Context, actorID int64, role string, id int64, in UpdateInput) (*model.Listing, error)

	// Delete is rejected while pending or completed purchases still
	// reference the listing; images, ratings and requests cascade.
	Delete(ctx context.Context, actorID int64, role string, id int64) error
}

type service struct {
	db  *sql.DB
	r   Repo
	img ImageRepo
	rt  RatingRepo
	rq  RequestRepo
	pr  PurchaseRepo
	geo geocoderepo.Repo
	log *slog.Logger
}

func New(db *sql.DB, r Repo, img ImageRepo, rt RatingRepo, rq RequestRepo, pr PurchaseRepo, geo geocoderepo.Repo, log *slog.Logger) Service {
	return &service{db: db, r: r, img: img, rt: rt, rq: rq, pr: pr, geo: geo, log: log}
}

func (s *service) Create(ctx context.Context, ownerID int64, in CreateInput) (*model.Listing, error) {
	if in.Price <= 0 {
		return nil, fail.New(fail.InvalidArgument, "price must be positive")
	}
	if in.TotalUnits < 1 {
		in.TotalUnits = 1
	}

	lat, lon := in.Latitude, in.Longitude
	if (lat == nil || lon == nil) && s.geo != nil {
		place := in.Address
		if place == "" {
			place = in.City
		}
		// Best effort: a failed lookup never blocks the listing.
		if res, err := s.geo.Lookup(ctx, place, ""); err != nil {
			s.log.Warn("geocode lookup failed", "place", place, "err", err)
		} else if res != nil {
			lat, lon = &res.Latitude, &res.Longitude
		}
	}

	l := &model.Listing{
		OwnerID:        ownerID,
		Title:          in.Title,
		Description:    in.Description,
		Price:          in.Price,
		Deposit:        in.Deposit,
		Address:        in.Address,
		City:           in.City,
		Category:       in.Category,
		Bedrooms:       in.Bedrooms,
		Bathrooms:      in.Bathrooms,
		AreaSqft:       in.AreaSqft,
		Furnished:      in.Furnished,
		TotalUnits:     in.TotalUnits,
		AvailableUnits: in.TotalUnits,
		Status:         model.ListingAvailable,
		Latitude:       lat,
		Longitude:      lon,
	}
	if err := s.r.Insert(ctx, l); err != nil {
		return nil, err
	}

	if len(in.ImageURLs) > 0 {
		if err := s.attachImages(ctx, l.ID, in.ImageURLs); err != nil {
			s.log.Warn("attach listing images failed", "listing_id", l.ID, "err", err)
		}
	}
	return l, nil
}

func (s *service) attachImages(ctx context.Context, listingID int64, urls []string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	for i, u := range urls {
		img := &model.Image{
			ListingID: listingID,
			URL:       u,
			IsPrimary: i == 0,
			SortOrder: i,
		}
		if err = s.img.InsertTx(ctx, tx, img); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *service) ByID(ctx context.Context, id int64) (*model.Listing, error) {
	l, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fail.New(fail.NotFound, "listing not found")
		}
		return nil, err
	}
	return l, nil
}

func (s *service) Search(ctx context.Context, f SearchFilter) (int64, []model.Listing, error) {
	return s.r.Search(ctx, f)
}

func (s *service) Mine(ctx context.Context, ownerID int64) ([]model.Listing, error) {
	return s.r.ByOwner(ctx, ownerID)
}

func (s *service) Update(ctx context.Context, actorID int64, role string, id int64, in UpdateInput) (*model.Listing, error) {
	l, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != model.RoleAdmin && l.OwnerID != actorID {
		return nil, fail.New(fail.Forbidden, "not the listing owner")
	}

	if in.Title != nil {
		l.Title = *in.Title
	}
	if in.Description != nil {
		l.Description = *in.Description
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, fail.New(fail.InvalidArgument, "price must be positive")
		}
		l.Price = *in.Price
	}
	if in.Deposit != nil {
		l.Deposit = *in.Deposit
	}
	if in.Address != nil {
		l.Address = *in.Address
	}
	if in.City != nil {
		l.City = *in.City
	}
	if in.Category != nil {
		l.Category = *in.Category
	}
	if in.Bedrooms != nil {
		l.Bedrooms = *in.Bedrooms
	}
	if in.Bathrooms != nil {
		l.Bathrooms = *in.Bathrooms
	}
	if in.AreaSqft != nil {
		l.AreaSqft = *in.AreaSqft
	}
	if in.Furnished != nil {
		l.Furnished = *in.Furnished
	}
	if in.Verified != nil {
		// Verification flips are an admin action.
		if role != model.RoleAdmin {
			return nil, fail.New(fail.Forbidden, "only admins may change verification")
		}
		l.Verified = *in.Verified
	}
	if in.Latitude != nil {
		l.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		l.Longitude = in.Longitude
	}

	if err := s.r.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) Delete(ctx context.Context, actorID int64, role string, id int64) (err error) {
	l, err := s.ByID(ctx, id)
	if err != nil {
		return err
	}
	if role != model.RoleAdmin && l.OwnerID != actorID {
		return fail.New(fail.Forbidden, "not the listing owner")
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

	open, err := s.pr.CountOpenByListingTx(ctx, tx, id)
	if err != nil {
		return err
	}
	if open > 0 {
		return fail.New(fail.Conflict, "listing has open purchases")
	}

	if err = s.img.DeleteByListingTx(ctx, tx, id); err != nil {
		return err
	}
	if err = s.rt.DeleteByListingTx(ctx, tx, id); err != nil {
		return err
	}
	if err = s.rq.DeleteByListingTx(ctx, tx, id); err != nil {
		return err
	}
	// Only cancelled purchases remain at this point.
	if err = s.pr.DeleteByListingTx(ctx, tx, id); err != nil {
		return err
	}
	if err = s.r.DeleteTx(ctx, tx, id); err != nil {
		return err
	}
	return tx.Commit()
}
