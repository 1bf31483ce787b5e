package adminsvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sanjayz7/Home-Rental-Application5/model"
	adminrepo "github.com/sanjayz7/Home-Rental-Application5/repository/admin"
	userrepo "github.com/sanjayz7/Home-Rental-Application5/repository/user"
	"github.com/sanjayz7/Home-Rental-Application5/util/fail"
)

// Stats = repository shape
type Stats = adminrepo.Stats

type Service interface {
	DashboardStats(ctx context.Context) (*Stats, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	UpdateUser(ctx context.Context, id int64, name, email, role string) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type service struct {
	ar adminrepo.Repo
	ur userrepo.Repo
}

func New(ar adminrepo.Repo, ur userrepo.Repo) Service { return &service{ar: ar, ur: ur} }

func (s *service) DashboardStats(ctx context.Context) (*Stats, error) {
	return s.ar.DashboardStats(ctx)
}

func (s *service) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.ur.List(ctx)
}

func (s *service) GetUser(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.ur.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fail.New(fail.NotFound, "user not found")
		}
		return nil, err
	}
	return u, nil
}

func (s *service) UpdateUser(ctx context.Context, id int64, name, email, role string) (*model.User, error) {
	switch role {
	case model.RoleUser, model.RoleOwner, model.RoleAdmin:
	default:
		return nil, fail.New(fail.InvalidArgument, "invalid role")
	}
	u, err := s.ur.Update(ctx, id, name, email, role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fail.New(fail.NotFound, "user not found")
		}
		return nil, err
	}
	return u, nil
}

func (s *service) DeleteUser(ctx context.Context, id int64) error {
	ok, err := s.ur.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fail.New(fail.NotFound, "user not found")
	}
	return nil
}
