package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	products map[string]Product
	created  []Product
	updated  []Product
}

func newFakeStore() *fakeStore {
	return &fakeStore{products: make(map[string]Product)}
}

func (f *fakeStore) Lookup(_ context.Context, id string) (Product, error) {
	p, ok := f.products[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) List(_ context.Context) ([]Product, error) {
	out := make([]Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeStore) Create(_ context.Context, p Product) (Product, error) {
	f.created = append(f.created, p)
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeStore) Update(_ context.Context, p Product) error {
	f.updated = append(f.updated, p)
	f.products[p.ID] = p
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id string) (DeleteOutcome, error) {
	p, ok := f.products[id]
	if !ok {
		return DeleteOutcome{}, ErrNotFound
	}
	if p.Stock > 0 {
		p.Stock = 0
		f.products[id] = p
		return DeleteOutcome{Action: "stock_zero"}, nil
	}
	delete(f.products, id)
	return DeleteOutcome{Action: "deleted"}, nil
}

func (f *fakeStore) Categories(_ context.Context) ([]Category, error) {
	return nil, nil
}

func TestServiceCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		wantErr error
	}{
		{
			name:    "valid product",
			product: Product{ID: "p-1", Name: "Milk 1L", UnitPrice: decimal.NewFromFloat(2.50)},
			wantErr: nil,
		},
		{
			name:    "empty name",
			product: Product{ID: "p-2", Name: "", UnitPrice: decimal.NewFromInt(1)},
			wantErr: ErrInvalidName,
		},
		{
			name:    "whitespace name",
			product: Product{ID: "p-3", Name: "   ", UnitPrice: decimal.NewFromInt(1)},
			wantErr: ErrInvalidName,
		},
		{
			name:    "negative price",
			product: Product{ID: "p-4", Name: "Eggs", UnitPrice: decimal.NewFromInt(-1)},
			wantErr: ErrInvalidPrice,
		},
		{
			name:    "zero price allowed",
			product: Product{ID: "p-5", Name: "Carrier bag", UnitPrice: decimal.Zero},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			svc := NewService(store)

			_, err := svc.Create(context.Background(), tt.product)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, store.created, "invalid product must not reach the store")
				return
			}
			require.NoError(t, err)
			require.Len(t, store.created, 1)
		})
	}
}

func TestServiceUpdateValidation(t *testing.T) {
	store := newFakeStore()
	store.products["p-1"] = Product{ID: "p-1", Name: "Milk 1L", UnitPrice: decimal.NewFromInt(2)}
	svc := NewService(store)

	err := svc.Update(context.Background(), Product{ID: "p-1", Name: "", UnitPrice: decimal.NewFromInt(2)})
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.Empty(t, store.updated)

	err = svc.Update(context.Background(), Product{ID: "p-1", Name: "Milk 1L", UnitPrice: decimal.NewFromInt(3)})
	require.NoError(t, err)
	require.Len(t, store.updated, 1)
}

func TestServiceLookupEmptyID(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.Lookup(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceDeleteOutcome(t *testing.T) {
	store := newFakeStore()
	store.products["stocked"] = Product{ID: "stocked", Name: "Rice 5kg", UnitPrice: decimal.NewFromInt(10), Stock: 4}
	store.products["empty"] = Product{ID: "empty", Name: "Seasonal", UnitPrice: decimal.NewFromInt(1), Stock: 0}
	svc := NewService(store)

	out, err := svc.Delete(context.Background(), "stocked")
	require.NoError(t, err)
	assert.Equal(t, "stock_zero", out.Action)
	assert.Equal(t, 0, store.products["stocked"].Stock)

	out, err = svc.Delete(context.Background(), "empty")
	require.NoError(t, err)
	assert.Equal(t, "deleted", out.Action)
	_, ok := store.products["empty"]
	assert.False(t, ok)
}
