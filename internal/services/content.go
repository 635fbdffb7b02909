package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AdityaaTyagi56/Full-Stack-Website/internal/models"
)

type AwardRepo interface {
	Insert(ctx context.Context, a *models.Award) error
	List(ctx context.Context) ([]models.Award, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type TickerRepo interface {
	Insert(ctx context.Context, t *models.Ticker) error
	List(ctx context.Context) ([]models.Ticker, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type EventRepo interface {
	Insert(ctx context.Context, e *models.Event) error
	List(ctx context.Context) ([]models.Event, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ContentService covers the three text-only record kinds: awards, ticker
// lines and events. Creates never fail on missing fields; absent strings
// simply stay empty.
type ContentService struct {
	awards AwardRepo
	ticker TickerRepo
	events EventRepo
}

func NewContentService(awards AwardRepo, ticker TickerRepo, events EventRepo) *ContentService {
	return &ContentService{awards: awards, ticker: ticker, events: events}
}

func (s *ContentService) ListAwards(ctx context.Context) ([]models.Award, error) {
	return s.awards.List(ctx)
}

func (s *ContentService) AddAward(ctx context.Context, year, title, description string) (*models.Award, error) {
	a := &models.Award{Year: year, Title: title, Description: description}
	if err := s.awards.Insert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *ContentService) DeleteAward(ctx context.Context, id primitive.ObjectID) error {
	return s.awards.Delete(ctx, id)
}

func (s *ContentService) ListTicker(ctx context.Context) ([]models.Ticker, error) {
	return s.ticker.List(ctx)
}

func (s *ContentService) AddTicker(ctx context.Context, text string) (*models.Ticker, error) {
	t := &models.Ticker{Text: text, CreatedAt: time.Now().UTC()}
	if err := s.ticker.Insert(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *ContentService) DeleteTicker(ctx context.Context, id primitive.ObjectID) error {
	return s.ticker.Delete(ctx, id)
}

func (s *ContentService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.events.List(ctx)
}

func (s *ContentService) AddEvent(ctx context.Context, title, date, location, description string) (*models.Event, error) {
	e := &models.Event{Title: title, Date: date, Location: location, Description: description}
	if err := s.events.Insert(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *ContentService) DeleteEvent(ctx context.Context, id primitive.ObjectID) error {
	return s.events.Delete(ctx, id)
}
