package requestsvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sanjayz7/Home-Rental-Application5/model"
	rrepo "github.com/sanjayz7/Home-Rental-Application5/repository/request"
	"github.com/sanjayz7/Home-Rental-Application5/util/fail"
)

// Row = repository shape
type Row = rrepo.Row

type ListingReader interface {
	ByID(ctx context.Context, id int64) (*model.Listing, error)
}

type Repo interface {
	Insert(ctx context.Context, pr *model.PropertyRequest) error
	ByID(ctx context.Context, id int64) (*model.PropertyRequest, error)
	HasPending(ctx context.Context, userID, listingID int64) (bool, error)
	SetStatus(ctx context.Context, id int64, status model.RequestStatus, response string) error
	Delete(ctx context.Context, id int64) error
	ByUser(ctx context.Context, userID int64) ([]Row, error)
	ByOwner(ctx context.Context, ownerID int64) ([]Row, error)
}

type Service interface {
	// Create rejects a second pending request for the same (user,
	// listing). The check and insert are not one transaction; two
	// concurrent requests can in rare cases both pass the check, which
	// the partial unique index then catches on insert.
	Create(ctx context.Context, userID, listingID int64, message string) (*model.PropertyRequest, error)

	// UpdateStatus: only the listing's owner may approve or reject.
	UpdateStatus(ctx context.Context, actorID, requestID int64, status model.RequestStatus, response string) (*model.PropertyRequest, error)

	// Delete: only the request's creator.
	Delete(ctx context.Context, actorID, requestID int64) error

	Mine(ctx context.Context, userID int64) ([]Row, error)
	Inbox(ctx context.Context, ownerID int64) ([]Row, error)
}

type service struct {
	r  Repo
	lr ListingReader
}

func New(r Repo, lr ListingReader) Service { return &service{r: r, lr: lr} }

func (s *service) Create(ctx context.Context, userID, listingID int64, message string) (*model.PropertyRequest, error) {
	if _, err := s.lr.ByID(ctx, listingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fail.New(fail.NotFound, "listing not found")
		}
		return nil, err
	}

	dup, err := s.r.HasPending(ctx, userID, listingID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, fail.New(fail.Conflict, "you already have a pending request for this property")
	}

	pr := &model.PropertyRequest{
		ListingID: listingID,
		UserID:    userID,
		Message:   message,
		Status:    model.RequestPending,
	}
	if err := s.r.Insert(ctx, pr); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fail.New(fail.Conflict, "you already have a pending request for this property")
		}
		return nil, err
	}
	return pr, nil
}

func (s *service) UpdateStatus(ctx context.Context, actorID, requestID int64, status model.RequestStatus, response string) (*model.PropertyRequest, error) {
	if status != model.RequestApproved && status != model.RequestRejected {
		return nil, fail.New(fail.InvalidArgument, "invalid status value")
	}

	pr, err := s.r.ByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fail.New(fail.NotFound, "property request not found")
		}
		return nil, err
	}

	l, err := s.lr.ByID(ctx, pr.ListingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fail.New(fail.NotFound, "listing not found")
		}
		return nil, err
	}
	if l.OwnerID != actorID {
		return nil, fail.New(fail.Forbidden, "not allowed to update this request")
	}

	if err := s.r.SetStatus(ctx, requestID, status, response); err != nil {
		return nil, err
	}
	pr.Status = status
	pr.Response = response
	return pr, nil
}

func (s *service) Delete(ctx context.Context, actorID, requestID int64) error {
	pr, err := s.r.ByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail.New(fail.NotFound, "property request not found")
		}
		return err
	}
	if pr.UserID != actorID {
		return fail.New(fail.Forbidden, "not allowed to delete this request")
	}
	return s.r.Delete(ctx, requestID)
}

func (s *service) Mine(ctx context.Context, userID int64) ([]Row, error) {
	return s.r.ByUser(ctx, userID)
}

func (s *service) Inbox(ctx context.Context, ownerID int64) ([]Row, error) {
	return s.r.ByOwner(ctx, ownerID)
}
