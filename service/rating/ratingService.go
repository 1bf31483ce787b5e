package ratingsvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sanjayz7/Home-Rental-Application5/model"
	rrepo "github.com/sanjayz7/Home-Rental-Application5/repository/rating"
	"github.com/sanjayz7/Home-Rental-Application5/util/fail"
)

// Row = repository shape
type Row = rrepo.Row

// Average is nil when a listing has no ratings yet.
type AverageResult struct {
	Average *float64 `json:"average"`
	Count   int64    `json:"count"`
}

type ListingReader interface {
	ByID(ctx context.Context, id int64) (*model.Listing, error)
}

type Repo interface {
	Upsert(ctx context.Context, rt *model.Rating) error
	ForListing(ctx context.Context, listingID int64) ([]Row, error)
	Average(ctx context.Context, listingID int64) (*float64, int64, error)
}

type Service interface {
	Submit(ctx context.Context, userID, listingID int64, score int, comment string) (*model.Rating, error)
	ForListing(ctx context.Context, listingID int64) ([]Row, error)
	ListingAverage(ctx context.Context, listingID int64) (*AverageResult, error)
}

type service struct {
	r  Repo
	lr ListingReader
}

func New(r Repo, lr ListingReader) Service { return &service{r: r, lr: lr} }

func (s *service) Submit(ctx context.Context, userID, listingID int64, score int, comment string) (*model.Rating, error) {
	if score < 1 || score > 5 {
		return nil, fail.New(fail.InvalidArgument, "score must be 1-5")
	}
	if _, err := s.lr.ByID(ctx, listingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fail.New(fail.NotFound, "listing not found")
		}
		return nil, err
	}

	rt := &model.Rating{
		ListingID: listingID,
		UserID:    userID,
		Score:     score,
		Comment:   comment,
	}
	if err := s.r.Upsert(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *service) ForListing(ctx context.Context, listingID int64) ([]Row, error) {
	return s.r.ForListing(ctx, listingID)
}

func (s *service) ListingAverage(ctx context.Context, listingID int64) (*AverageResult, error) {
	avg, count, err := s.r.Average(ctx, listingID)
	if err != nil {
		return nil, err
	}
	return &AverageResult{Average: avg, Count: count}, nil
}
