package services

import (
	"context"
	"fmt"
	"time"

	"ticketing/internal/domain/models"
	"ticketing/internal/query"
	"ticketing/internal/uow"
)

// EventCreate is the data needed to publish an event.
type EventCreate struct {
	Title       string
	Description *string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
}

// EventService manages events. Mutations are restricted to the owner.
type EventService struct {
	uow *uow.Factory
}

func NewEventService(f *uow.Factory) *EventService {
	return &EventService{uow: f}
}

// Create publishes an event owned by ownerID.
func (s *EventService) Create(ctx context.Context, in EventCreate, ownerID int64) (*models.Event, error) {
	var event *models.Event
	err := s.uow.Do(ctx, func(w *uow.UnitOfWork) error {
		data := map[string]any{
			"owner_id":   ownerID,
			"title":      in.Title,
			"location":   in.Location,
			"start_time": in.StartTime.UTC(),
			"end_time":   in.EndTime.UTC(),
		}
		if in.Description != nil {
			data["description"] = *in.Description
		}
		var err error
		event, err = w.Events.Add(ctx, data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

// Get returns the event or ErrNotFound.
func (s *EventService) Get(ctx context.Context, id int64) (*models.Event, error) {
	var event *models.Event
	err := s.uow.Do(ctx, func(w *uow.UnitOfWork) error {
		var err error
		event, err = w.Events.Find(ctx, nil, map[string]query.Predicate{
			"id": query.Eq(id),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("event %d: %w", id, ErrNotFound)
	}
	return event, nil
}

// List returns a page of events, optionally narrowed by an event
// filter.
func (s *EventService) List(ctx context.Context, offset, limit int, f *query.Filter) (*Collection[models.Event], error) {
	var events []*models.Event
	err := s.uow.Do(ctx, func(w *uow.UnitOfWork) error {
		var err error
		events, err = w.Events.FindAll(ctx, offset, limit, f, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return newCollection(events, offset, limit), nil
}

// Update applies a partial update; only the owner may update.
func (s *EventService) Update(ctx context.Context, id int64, patch map[string]any, userID int64) (*models.Event, error) {
	var event *models.Event
	err := s.uow.Do(ctx, func(w *uow.UnitOfWork) error {
		current, err := w.Events.Find(ctx, nil, map[string]query.Predicate{
			"id": query.Eq(id),
		})
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("event %d: %w", id, ErrNotFound)
		}
		if current.OwnerID != userID {
			return fmt.Errorf("event %d is not owned by user %d: %w", id, userID, ErrPermission)
		}
		event, err = w.Events.Update(ctx, id, patch)
		if err != nil {
			return err
		}
		if event == nil {
			return fmt.Errorf("event %d: %w", id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

// Delete removes the event; only the owner may delete. Returns the
// deleted state.
func (s *EventService) Delete(ctx context.Context, id int64, userID int64) (*models.Event, error) {
	var event *models.Event
	err := s.uow.Do(ctx, func(w *uow.UnitOfWork) error {
		current, err := w.Events.Find(ctx, nil, map[string]query.Predicate{
			"id": query.Eq(id),
		})
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("event %d: %w", id, ErrNotFound)
		}
		if current.OwnerID != userID {
			return fmt.Errorf("event %d is not owned by user %d: %w", id, userID, ErrPermission)
		}
		event, err = w.Events.Delete(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}
