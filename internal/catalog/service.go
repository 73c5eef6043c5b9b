package catalog

import (
	"context"
	"strings"
)

// Service validates catalog writes before they reach the store.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Lookup(ctx context.Context, id string) (Product, error) {
	if strings.TrimSpace(id) == "" {
		return Product{}, ErrNotFound
	}
	return s.store.Lookup(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.store.List(ctx)
}

func (s *Service) Create(ctx context.Context, p Product) (Product, error) {
	if err := validate(p); err != nil {
		return Product{}, err
	}
	return s.store.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, p Product) error {
	if err := validate(p); err != nil {
		return err
	}
	return s.store.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id string) (DeleteOutcome, error) {
	return s.store.Delete(ctx, id)
}

func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	return s.store.Categories(ctx)
}

func validate(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidName
	}
	if p.UnitPrice.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}
