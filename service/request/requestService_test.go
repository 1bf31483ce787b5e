// service/request/request_service_test.go
package requestsvc_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/sanjayz7/Home-Rental-Application5/model"
	requestsvc "github.com/sanjayz7/Home-Rental-Application5/service/request"
	"github.com/sanjayz7/Home-Rental-Application5/util/fail"
)

type listingReaderMock struct {
	byIDFn func(ctx context.Context, id int64) (*model.Listing, error)
}

func (m *listingReaderMock) ByID(ctx context.Context, id int64) (*model.Listing, error) {
	return m.byIDFn(ctx, id)
}

type repoMock struct {
	insertFn     func(ctx context.Context, pr *model.PropertyRequest) error
	byIDFn       func(ctx context.Context, id int64) (*model.PropertyRequest, error)
	hasPendingFn func(ctx context.Context, userID, listingID int64) (bool, error)
	setStatusFn  func(ctx context.Context, id int64, status model.RequestStatus, response string) error
	deleteFn     func(ctx context.Context, id int64) error
	byUserFn     func(ctx context.Context, userID int64) ([]requestsvc.Row, error)
	byOwnerFn    func(ctx context.Context, ownerID int64) ([]requestsvc.Row, error)
}

func (m *repoMock) Insert(ctx context.Context, pr *model.PropertyRequest) error {
	return m.insertFn(ctx, pr)
}
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.PropertyRequest, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) HasPending(ctx context.Context, userID, listingID int64) (bool, error) {
	return m.hasPendingFn(ctx, userID, listingID)
}
func (m *repoMock) SetStatus(ctx context.Context, id int64, status model.RequestStatus, response string) error {
	return m.setStatusFn(ctx, id, status, response)
}
func (m *repoMock) Delete(ctx context.Context, id int64) error { return m.deleteFn(ctx, id) }
func (m *repoMock) ByUser(ctx context.Context, userID int64) ([]requestsvc.Row, error) {
	return m.byUserFn(ctx, userID)
}
func (m *repoMock) ByOwner(ctx context.Context, ownerID int64) ([]requestsvc.Row, error) {
	return m.byOwnerFn(ctx, ownerID)
}

func someListing() *listingReaderMock {
	return &listingReaderMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Listing, error) {
			return &model.Listing{ID: id, OwnerID: 1}, nil
		},
	}
}

func TestCreate_Pending(t *testing.T) {
	m := &repoMock{
		hasPendingFn: func(ctx context.Context, userID, listingID int64) (bool, error) { return false, nil },
		insertFn: func(ctx context.Context, pr *model.PropertyRequest) error {
			pr.ID = 31
			return nil
		},
	}
	s := requestsvc.New(m, someListing())

	pr, err := s.Create(context.Background(), 2, 10, "is parking included?")
	require.NoError(t, err)
	require.Equal(t, int64(31), pr.ID)
	require.Equal(t, model.RequestPending, pr.Status)
}

func TestCreate_ListingMissing(t *testing.T) {
	lr := &listingReaderMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Listing, error) { return nil, sql.ErrNoRows },
	}
	s := requestsvc.New(&repoMock{}, lr)
	_, err := s.Create(context.Background(), 2, 99, "hello")
	require.Equal(t, fail.NotFound, fail.CodeOf(err))
}

func TestCreate_DuplicatePending(t *testing.T) {
	m := &repoMock{
		hasPendingFn: func(ctx context.Context, userID, listingID int64) (bool, error) { return true, nil },
		insertFn: func(ctx context.Context, pr *model.PropertyRequest) error {
			t.Fatal("insert must not run")
			return nil
		},
	}
	s := requestsvc.New(m, someListing())
	_, err := s.Create(context.Background(), 2, 10, "again")
	require.Equal(t, fail.Conflict, fail.CodeOf(err))
}

// Two concurrent creates can both pass the pending check; the partial
// unique index turns the loser into the same CONFLICT.
func TestCreate_RaceCaughtByIndex(t *testing.T) {
	m := &repoMock{
		hasPendingFn: func(ctx context.Context, userID, listingID int64) (bool, error) { return false, nil },
		insertFn: func(ctx context.Context, pr *model.PropertyRequest) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
		},
	}
	s := requestsvc.New(m, someListing())
	_, err := s.Create(context.Background(), 2, 10, "again")
	require.Equal(t, fail.Conflict, fail.CodeOf(err))
}

func TestUpdateStatus_OwnerApproves(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.PropertyRequest, error) {
			return &model.PropertyRequest{ID: 31, ListingID: 10, UserID: 2, Status: model.RequestPending}, nil
		},
		setStatusFn: func(ctx context.Context, id int64, status model.RequestStatus, response string) error {
			require.Equal(t, model.RequestApproved, status)
			require.Equal(t, "come by saturday", response)
			return nil
		},
	}
	s := requestsvc.New(m, someListing())

	pr, err := s.UpdateStatus(context.Background(), 1, 31, model.RequestApproved, "come by saturday")
	require.NoError(t, err)
	require.Equal(t, model.RequestApproved, pr.Status)
	require.Equal(t, "come by saturday", pr.Response)
}

func TestUpdateStatus_NotOwner(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.PropertyRequest, error) {
			return &model.PropertyRequest{ID: 31, ListingID: 10, UserID: 2, Status: model.RequestPending}, nil
		},
	}
	s := requestsvc.New(m, someListing())
	_, err := s.UpdateStatus(context.Background(), 5, 31, model.RequestRejected, "")
	require.Equal(t, fail.Forbidden, fail.CodeOf(err))
}

func TestUpdateStatus_OnlyApproveOrReject(t *testing.T) {
	s := requestsvc.New(&repoMock{}, someListing())
	_, err := s.UpdateStatus(context.Background(), 1, 31, model.RequestPending, "")
	require.Equal(t, fail.InvalidArgument, fail.CodeOf(err))
}

func TestDelete_CreatorOnly(t *testing.T) {
	deleted := false
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.PropertyRequest, error) {
			return &model.PropertyRequest{ID: 31, ListingID: 10, UserID: 2}, nil
		},
		deleteFn: func(ctx context.Context, id int64) error {
			deleted = true
			return nil
		},
	}
	s := requestsvc.New(m, someListing())

	err := s.Delete(context.Background(), 3, 31)
	require.Equal(t, fail.Forbidden, fail.CodeOf(err))
	require.False(t, deleted)

	require.NoError(t, s.Delete(context.Background(), 2, 31))
	require.True(t, deleted)
}

func TestDelete_Missing(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.PropertyRequest, error) {
			return nil, sql.ErrNoRows
		},
	}
	s := requestsvc.New(m, someListing())
	err := s.Delete(context.Background(), 2, 99)
	require.Equal(t, fail.NotFound, fail.CodeOf(err))
}
