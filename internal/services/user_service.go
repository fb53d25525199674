package services

import (
	"context"

	"ticketing/internal/domain/models"
	"ticketing/internal/query"
	"ticketing/internal/uow"
)

// Collection is a paginated listing result.
type Collection[T any] struct {
	Items  []*T `json:"items"`
	Offset int  `json:"offset"`
	Limit  int  `json:"limit"`
	Size   int  `json:"size"`
}

func newCollection[T any](items []*T, offset, limit int) *Collection[T] {
	if items == nil {
		items = []*T{}
	}
	return &Collection[T]{Items: items, Offset: offset, Limit: limit, Size: len(items)}
}

// UserService exposes account lookups and profile updates.
type UserService struct {
	uow *uow.Factory
}

func NewUserService(f *uow.Factory) *UserService {
	return &UserService{uow: f}
}

// Get returns the user or ErrNotFound.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	var user *models.User
	err := s.uow.Do(ctx, func(w *uow.UnitOfWork) error {
		var err error
		user, err = w.Users.Find(ctx, nil, map[string]query.Predicate{
			"id": query.Eq(id),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// Update applies a partial profile update.
func (s *UserService) Update(ctx context.Context, id int64, patch map[string]any) (*models.User, error) {
	var user *models.User
	err := s.uow.Do(ctx, func(w *uow.UnitOfWork) error {
		var err error
		user, err = w.Users.Update(ctx, id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// List returns a page of users, optionally narrowed by a user filter.
func (s *UserService) List(ctx context.Context, offset, limit int, f *query.Filter) (*Collection[models.User], error) {
	var users []*models.User
	err := s.uow.Do(ctx, func(w *uow.UnitOfWork) error {
		var err error
		users, err = w.Users.FindAll(ctx, offset, limit, f, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return newCollection(users, offset, limit), nil
}
