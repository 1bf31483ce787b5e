package imagesvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sanjayz7/Home-Rental-Application5/model"
	imgrepo "github.com/sanjayz7/Home-Rental-Application5/repository/image"
	"github.com/sanjayz7/Home-Rental-Application5/util/fail"
)

type AddInput struct {
	URL       string
	Name      string
	Size      int64
	Width     int
	Height    int
	IsPrimary bool
	SortOrder int
}

type UpdateInput struct {
	Name      *string
	IsPrimary *bool
	SortOrder *int
}

type ListingReader interface {
	ByID(ctx context.Context, id int64) (*model.Listing, error)
}

type Service interface {
	ForListing(ctx context.Context, listingID int64) ([]model.Image, error)
	Add(ctx context.Context, actorID int64, role string, listingID int64, in AddInput) (*model.Image, error)
	Update(ctx context.Context, actorID int64, role string, imageID int64, in UpdateInput) error
	Delete(ctx context.Context, actorID int64, role string, imageID int64) error
}

type service struct {
	db *sql.DB
	r  imgrepo.Repo
	lr ListingReader
}

func New(db *sql.DB, r imgrepo.Repo, lr ListingReader) Service {
	return &service{db: db, r: r, lr: lr}
}

func (s *service) ForListing(ctx context.Context, listingID int64) ([]model.Image, error) {
	return s.r.ForListing(ctx, listingID)
}

func (s *service) ownerGate(ctx context.Context, actorID int64, role string, listingID int64) error {
	l, err := s.lr.ByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail.New(fail.NotFound, "listing not found")
		}
		return err
	}
	if role != model.RoleAdmin && l.OwnerID != actorID {
		return fail.New(fail.Forbidden, "not the listing owner")
	}
	return nil
}

func (s *service) Add(ctx context.Context, actorID int64, role string, listingID int64, in AddInput) (img *model.Image, err error) {
	if in.URL == "" {
		return nil, fail.New(fail.InvalidArgument, "image url is required")
	}
	if err := s.ownerGate(ctx, actorID, role, listingID); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// A new primary demotes its siblings in the same transaction.
	if in.IsPrimary {
		if err = s.r.ClearPrimaryTx(ctx, tx, listingID); err != nil {
			return nil, err
		}
	}
	img = &model.Image{
		ListingID: listingID,
		URL:       in.URL,
		Name:      in.Name,
		Size:      in.Size,
		Width:     in.Width,
		Height:    in.Height,
		IsPrimary: in.IsPrimary,
		SortOrder: in.SortOrder,
	}
	if err = s.r.InsertTx(ctx, tx, img); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *service) Update(ctx context.Context, actorID int64, role string, imageID int64, in UpdateInput) error {
	img, err := s.r.ByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail.New(fail.NotFound, "image not found")
		}
		return err
	}
	if err := s.ownerGate(ctx, actorID, role, img.ListingID); err != nil {
		return err
	}
	ok, err := s.r.Update(ctx, imageID, in.Name, in.IsPrimary, in.SortOrder)
	if err != nil {
		return err
	}
	if !ok {
		return fail.New(fail.NotFound, "image not found")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, actorID int64, role string, imageID int64) error {
	img, err := s.r.ByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail.New(fail.NotFound, "image not found")
		}
		return err
	}
	if err := s.ownerGate(ctx, actorID, role, img.ListingID); err != nil {
		return err
	}
	return s.r.Delete(ctx, imageID)
}
