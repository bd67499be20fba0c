package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sportsclub/portal/internal/core/domain"
	"github.com/sportsclub/portal/internal/core/ports"
)

type SportService struct {
	repo ports.SportRepository
	log  zerolog.Logger
}

func NewSportService(repo ports.SportRepository, log zerolog.Logger) *SportService {
	return &SportService{repo: repo, log: log}
}

func (s *SportService) List(ctx context.Context) ([]*domain.Sport, error) {
	return s.repo.List(ctx)
}

func (s *SportService) Create(ctx context.Context, name string, maxPlayers int) (*domain.Sport, error) {
	name = strings.TrimSpace(name)
	ve := &domain.ValidationError{}
	if name == "" {
		ve.Add("name", "name is required")
	}
	if maxPlayers <= 0 {
		ve.Add("max_players", "max_players must be greater than 0")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	sport, err := s.repo.Create(ctx, &domain.Sport{Name: name, MaxPlayers: maxPlayers, CreatedAt: time.Now().UTC()})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("sport_id", sport.ID).Str("name", sport.Name).Msg("sport created")
	return sport, nil
}

func (s *SportService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("sport_id", id).Msg("sport deleted")
	return nil
}
