// service/listing/listing_service_test.go
package listingsvc_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/sanjayz7/Home-Rental-Application5/model"
	geocoderepo "github.com/sanjayz7/Home-Rental-Application5/repository/geocode"
	listingsvc "github.com/sanjayz7/Home-Rental-Application5/service/listing"
	"github.com/sanjayz7/Home-Rental-Application5/util/fail"
)

type repoMock struct {
	insertFn   func(ctx context.Context, l *model.Listing) error
	byIDFn     func(ctx context.Context, id int64) (*model.Listing, error)
	searchFn   func(ctx context.Context, f listingsvc.SearchFilter) (int64, []model.Listing, error)
	byOwnerFn  func(ctx context.Context, ownerID int64) ([]model.Listing, error)
	updateFn   func(ctx context.Context, l *model.Listing) error
	deleteTxFn func(ctx context.Context, tx *sql.Tx, id int64) error
}

func (m *repoMock) Insert(ctx context.Context, l *model.Listing) error { return m.insertFn(ctx, l) }
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.Listing, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) Search(ctx context.Context, f listingsvc.SearchFilter) (int64, []model.Listing, error) {
	return m.searchFn(ctx, f)
}
func (m *repoMock) ByOwner(ctx context.Context, ownerID int64) ([]model.Listing, error) {
	return m.byOwnerFn(ctx, ownerID)
}
func (m *repoMock) Update(ctx context.Context, l *model.Listing) error { return m.updateFn(ctx, l) }
func (m *repoMock) DeleteTx(ctx context.Context, tx *sql.Tx, id int64) error {
	return m.deleteTxFn(ctx, tx, id)
}

type cascadeMock struct {
	deleted []string
	open    int64
}

func (m *cascadeMock) InsertTx(ctx context.Context, tx *sql.Tx, img *model.Image) error { return nil }
func (m *cascadeMock) CountOpenByListingTx(ctx context.Context, tx *sql.Tx, listingID int64) (int64, error) {
	return m.open, nil
}
func (m *cascadeMock) DeleteByListingTx(ctx context.Context, tx *sql.Tx, listingID int64) error {
	m.deleted = append(m.deleted, "x")
	return nil
}

type geoMock struct {
	lookupFn func(ctx context.Context, city, country string) (*geocoderepo.Result, error)
}

func (m *geoMock) Lookup(ctx context.Context, city, country string) (*geocoderepo.Result, error) {
	return m.lookupFn(ctx, city, country)
}

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newService(db *sql.DB, r *repoMock, c *cascadeMock, geo geocoderepo.Repo) listingsvc.Service {
	return listingsvc.New(db, r, c, c, c, c, geo, quiet())
}

// --- Create ---

func TestCreate_Defaults(t *testing.T) {
	db, _ := newDB(t)
	r := &repoMock{
		insertFn: func(ctx context.Context, l *model.Listing) error {
			l.ID = 10
			return nil
		},
	}
	s := newService(db, r, &cascadeMock{}, nil)

	l, err := s.Create(context.Background(), 1, listingsvc.CreateInput{
		Title: "Studio near station",
		Price: 950,
	})
	require.NoError(t, err)
	require.Equal(t, 1, l.TotalUnits)
	require.Equal(t, l.TotalUnits, l.AvailableUnits)
	require.Equal(t, model.ListingAvailable, l.Status)
}

func TestCreate_PriceMustBePositive(t *testing.T) {
	db, _ := newDB(t)
	s := newService(db, &repoMock{}, &cascadeMock{}, nil)

	for _, price := range []float64{0, -100} {
		_, err := s.Create(context.Background(), 1, listingsvc.CreateInput{Title: "x", Price: price})
		require.Equal(t, fail.InvalidArgument, fail.CodeOf(err), "price=%v", price)
	}
}

func TestCreate_GeocodeFillsCoordinates(t *testing.T) {
	db, _ := newDB(t)
	r := &repoMock{
		insertFn: func(ctx context.Context, l *model.Listing) error { return nil },
	}
	geo := &geoMock{
		lookupFn: func(ctx context.Context, city, country string) (*geocoderepo.Result, error) {
			require.Equal(t, "Austin", city)
			return &geocoderepo.Result{Latitude: 30.2672, Longitude: -97.7431}, nil
		},
	}
	s := newService(db, r, &cascadeMock{}, geo)

	l, err := s.Create(context.Background(), 1, listingsvc.CreateInput{
		Title: "2BR", Price: 1800, City: "Austin",
	})
	require.NoError(t, err)
	require.NotNil(t, l.Latitude)
	require.Equal(t, 30.2672, *l.Latitude)
}

func TestCreate_GeocodePrefersAddress(t *testing.T) {
	db, _ := newDB(t)
	r := &repoMock{
		insertFn: func(ctx context.Context, l *model.Listing) error { return nil },
	}
	geo := &geoMock{
		lookupFn: func(ctx context.Context, place, country string) (*geocoderepo.Result, error) {
			require.Equal(t, "500 E 5th St", place)
			return &geocoderepo.Result{Latitude: 30.2639, Longitude: -97.7384}, nil
		},
	}
	s := newService(db, r, &cascadeMock{}, geo)

	_, err := s.Create(context.Background(), 1, listingsvc.CreateInput{
		Title: "2BR", Price: 1800, Address: "500 E 5th St", City: "Austin",
	})
	require.NoError(t, err)
}

func TestCreate_HalfSetCoordinatesStillLookedUp(t *testing.T) {
	db, _ := newDB(t)
	lat := 40.0
	r := &repoMock{
		insertFn: func(ctx context.Context, l *model.Listing) error { return nil },
	}
	looked := false
	geo := &geoMock{
		lookupFn: func(ctx context.Context, place, country string) (*geocoderepo.Result, error) {
			looked = true
			return &geocoderepo.Result{Latitude: 40.1, Longitude: -74.2}, nil
		},
	}
	s := newService(db, r, &cascadeMock{}, geo)

	l, err := s.Create(context.Background(), 1, listingsvc.CreateInput{
		Title: "2BR", Price: 1800, City: "Trenton", Latitude: &lat,
	})
	require.NoError(t, err)
	require.True(t, looked, "a latitude without a longitude is not a usable coordinate")
	require.NotNil(t, l.Longitude)
}

func TestCreate_GeocodeFailureIsNotFatal(t *testing.T) {
	db, _ := newDB(t)
	r := &repoMock{
		insertFn: func(ctx context.Context, l *model.Listing) error {
			l.ID = 10
			return nil
		},
	}
	geo := &geoMock{
		lookupFn: func(ctx context.Context, city, country string) (*geocoderepo.Result, error) {
			return nil, errors.New("upstream 503")
		},
	}
	s := newService(db, r, &cascadeMock{}, geo)

	l, err := s.Create(context.Background(), 1, listingsvc.CreateInput{
		Title: "2BR", Price: 1800, City: "Austin",
	})
	require.NoError(t, err)
	require.Nil(t, l.Latitude)
}

func TestCreate_ExplicitCoordinatesSkipLookup(t *testing.T) {
	db, _ := newDB(t)
	lat, lon := 40.0, -74.0
	r := &repoMock{
		insertFn: func(ctx context.Context, l *model.Listing) error { return nil },
	}
	geo := &geoMock{
		lookupFn: func(ctx context.Context, city, country string) (*geocoderepo.Result, error) {
			t.Fatal("lookup must not run when coordinates are given")
			return nil, nil
		},
	}
	s := newService(db, r, &cascadeMock{}, geo)

	l, err := s.Create(context.Background(), 1, listingsvc.CreateInput{
		Title: "2BR", Price: 1800, City: "Austin", Latitude: &lat, Longitude: &lon,
	})
	require.NoError(t, err)
	require.Equal(t, 40.0, *l.Latitude)
}

// --- Update ---

func TestUpdate_OwnerGate(t *testing.T) {
	db, _ := newDB(t)
	r := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Listing, error) {
			return &model.Listing{ID: 10, OwnerID: 1, Price: 900}, nil
		},
		updateFn: func(ctx context.Context, l *model.Listing) error { return nil },
	}
	s := newService(db, r, &cascadeMock{}, nil)

	title := "Renovated studio"
	_, err := s.Update(context.Background(), 9, model.RoleUser, 10, listingsvc.UpdateInput{Title: &title})
	require.Equal(t, fail.Forbidden, fail.CodeOf(err))

	l, err := s.Update(context.Background(), 1, model.RoleOwner, 10, listingsvc.UpdateInput{Title: &title})
	require.NoError(t, err)
	require.Equal(t, title, l.Title)
}

func TestUpdate_VerifiedIsAdminOnly(t *testing.T) {
	db, _ := newDB(t)
	r := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Listing, error) {
			return &model.Listing{ID: 10, OwnerID: 1, Price: 900}, nil
		},
		updateFn: func(ctx context.Context, l *model.Listing) error { return nil },
	}
	s := newService(db, r, &cascadeMock{}, nil)

	v := true
	_, err := s.Update(context.Background(), 1, model.RoleOwner, 10, listingsvc.UpdateInput{Verified: &v})
	require.Equal(t, fail.Forbidden, fail.CodeOf(err))

	l, err := s.Update(context.Background(), 3, model.RoleAdmin, 10, listingsvc.UpdateInput{Verified: &v})
	require.NoError(t, err)
	require.True(t, l.Verified)
}

func TestUpdate_PriceValidated(t *testing.T) {
	db, _ := newDB(t)
	r := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Listing, error) {
			return &model.Listing{ID: 10, OwnerID: 1, Price: 900}, nil
		},
	}
	s := newService(db, r, &cascadeMock{}, nil)

	bad := -5.0
	_, err := s.Update(context.Background(), 1, model.RoleOwner, 10, listingsvc.UpdateInput{Price: &bad})
	require.Equal(t, fail.InvalidArgument, fail.CodeOf(err))
}

// --- Delete ---

func TestDelete_BlockedByOpenPurchases(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	r := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Listing, error) {
			return &model.Listing{ID: 10, OwnerID: 1}, nil
		},
	}
	c := &cascadeMock{open: 2}
	s := newService(db, r, c, nil)

	err := s.Delete(context.Background(), 1, model.RoleOwner, 10)
	require.Equal(t, fail.Conflict, fail.CodeOf(err))
	require.Empty(t, c.deleted, "nothing cascades when the delete is refused")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_Cascades(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	listingGone := false
	r := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Listing, error) {
			return &model.Listing{ID: 10, OwnerID: 1}, nil
		},
		deleteTxFn: func(ctx context.Context, tx *sql.Tx, id int64) error {
			listingGone = true
			return nil
		},
	}
	c := &cascadeMock{}
	s := newService(db, r, c, nil)

	require.NoError(t, s.Delete(context.Background(), 1, model.RoleOwner, 10))
	require.True(t, listingGone)
	require.Len(t, c.deleted, 4, "images, ratings, requests and purchases all cascade")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_StrangerForbidden(t *testing.T) {
	db, _ := newDB(t)
	r := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Listing, error) {
			return &model.Listing{ID: 10, OwnerID: 1}, nil
		},
	}
	s := newService(db, r, &cascadeMock{}, nil)
	err := s.Delete(context.Background(), 9, model.RoleUser, 10)
	require.Equal(t, fail.Forbidden, fail.CodeOf(err))
}

func TestByID_NotFound(t *testing.T) {
	db, _ := newDB(t)
	r := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Listing, error) { return nil, sql.ErrNoRows },
	}
	s := newService(db, r, &cascadeMock{}, nil)
	_, err := s.ByID(context.Background(), 99)
	require.Equal(t, fail.NotFound, fail.CodeOf(err))
}
