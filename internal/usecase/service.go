package usecase

import (
	"context"
	"errors"
	"math/rand"

	"svw.info/maxrun/internal/domain"
	"svw.info/maxrun/internal/ports"
)

type Service struct {
	Solver    ports.Solver
	Generator ports.Generator
	Validator ports.Validator
	Inspector ports.Inspector
	Storage   ports.Storage
}

func NewService(s ports.Solver, g ports.Generator, v ports.Validator, in ports.Inspector, st ports.Storage) *Service {
	return &Service{Solver: s, Generator: g, Validator: v, Inspector: in, Storage: st}
}

var errNotConfigured = errors.New("usecase dependency not configured")

func (u *Service) Solve(ctx context.Context, s *domain.Sample, seed int64) (*domain.Sample, ports.Stats, error) {
	if u.Solver == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Solve(ctx, s, rand.New(rand.NewSource(seed)))
}

func (u *Service) Generate(ctx context.Context, seed int64, tmpl *domain.Sample) (*domain.Sample, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Generator.Generate(ctx, seed, tmpl)
}

func (u *Service) Validate(ctx context.Context, s *domain.Sample) (bool, []domain.Point, error) {
	if u.Validator == nil {
		return false, nil, errNotConfigured
	}
	return u.Validator.Validate(ctx, s)
}

func (u *Service) Inspect(ctx context.Context, s *domain.Sample) (ports.Report, error) {
	if u.Inspector == nil {
		return ports.Report{}, errNotConfigured
	}
	return u.Inspector.Inspect(ctx, s)
}

// Persistence
func (u *Service) Save(ctx context.Context, s *domain.Sample) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	return u.Storage.Save(ctx, s)
}
func (u *Service) Load(ctx context.Context, id string) (*domain.Sample, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}
func (u *Service) List(ctx context.Context) ([]domain.SampleMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}
