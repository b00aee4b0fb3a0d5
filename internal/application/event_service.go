package application

import (
	"context"
	"fmt"

	"github.com/sanosuguru/go-seat-booking/internal/domain/event"
)

// EventService はイベントと空席状況の参照を提供する
type EventService struct {
	eventRepo event.Repository
}

func NewEventService(eventRepo event.Repository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

// GetEvent はイベントを取得する。存在しなければ event.ErrEventNotFound
func (s *EventService) GetEvent(ctx context.Context, id int64) (*event.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

// GetAvailableSeats は定員から予約済み件数を引いた残席数を返す
func (s *EventService) GetAvailableSeats(ctx context.Context, id int64) (int, error) {
	a, err := s.GetEventAvailability(ctx, id)
	if err != nil {
		return 0, err
	}
	return a.AvailableSeats, nil
}

// IsFull は残席が0以下かどうかを返す
func (s *EventService) IsFull(ctx context.Context, id int64) (bool, error) {
	a, err := s.GetEventAvailability(ctx, id)
	if err != nil {
		return false, err
	}
	return a.IsFull, nil
}

// ListEvents はイベントをID昇順で返す
func (s *EventService) ListEvents(ctx context.Context) ([]*event.Event, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []*event.Event{}
	}
	return events, nil
}

// GetEventAvailability はイベントと空席状況をまとめて返す
func (s *EventService) GetEventAvailability(ctx context.Context, id int64) (*event.Availability, error) {
	a, err := s.eventRepo.GetAvailability(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("空席状況の取得に失敗: %w", err)
	}
	return a, nil
}
