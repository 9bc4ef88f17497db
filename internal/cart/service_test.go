package cart

import (
	"context"
	"testing"

	"chandra-dukan-be/internal/order"
	"chandra-dukan-be/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) ListByUser(ctx context.Context, userID int64) ([]*CartItem, error) {
	args := m.Called(ctx, userID)
	if items := args.Get(0); items != nil {
		return items.([]*CartItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Upsert(ctx context.Context, userID, productID int64, quantity int) error {
	return m.Called(ctx, userID, productID, quantity).Error(0)
}

func (m *mockRepo) Remove(ctx context.Context, userID, productID int64) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *mockRepo) Clear(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) List(ctx context.Context, opts product.ListOptions) ([]*product.Product, int64, error) {
	args := m.Called(ctx, opts)
	return nil, 0, args.Error(2)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*product.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]*product.Product, error) {
	args := m.Called(ctx, ids)
	if p := args.Get(0); p != nil {
		return p.(map[int64]*product.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) Create(ctx context.Context, input product.CreateInput) (*product.Product, error) {
	args := m.Called(ctx, input)
	if p := args.Get(0); p != nil {
		return p.(*product.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, id int64, input product.UpdateInput) (*product.Product, error) {
	args := m.Called(ctx, id, input)
	if p := args.Get(0); p != nil {
		return p.(*product.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) AdjustStock(ctx context.Context, id int64, delta int) error {
	return m.Called(ctx, id, delta).Error(0)
}

func (m *mockProductRepo) Deactivate(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

var testPricing = order.PricingRules{FreeDeliveryThreshold: 500, DeliveryCharge: 40}

func cartItem(productID int64, qty int, price float64) *CartItem {
	return &CartItem{
		ID:        productID,
		UserID:    7,
		ProductID: productID,
		Quantity:  qty,
		Product:   &product.Product{ID: productID, Name: "Atta 5kg", Price: price, Stock: 50, Active: true},
	}
}

func TestGet(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty cart", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, new(mockProductRepo), testPricing)

		repo.On("ListByUser", ctx, int64(7)).Return(nil, nil)

		s, err := svc.Get(ctx, 7)
		require.NoError(t, err)
		assert.NotNil(t, s.Items)
		assert.Empty(t, s.Items)
		assert.Zero(t, s.Subtotal)
		assert.Zero(t, s.DeliveryCharge)
		assert.Zero(t, s.Total)
	})

	t.Run("Below free delivery threshold", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, new(mockProductRepo), testPricing)

		repo.On("ListByUser", ctx, int64(7)).
			Return([]*CartItem{cartItem(1, 2, 120), cartItem(2, 1, 40)}, nil)

		s, err := svc.Get(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, 280.0, s.Subtotal)
		assert.Equal(t, 40.0, s.DeliveryCharge)
		assert.Equal(t, 320.0, s.Total)
	})

	t.Run("Free delivery at threshold", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, new(mockProductRepo), testPricing)

		repo.On("ListByUser", ctx, int64(7)).
			Return([]*CartItem{cartItem(1, 2, 250)}, nil)

		s, err := svc.Get(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, 500.0, s.Subtotal)
		assert.Zero(t, s.DeliveryCharge)
		assert.Equal(t, 500.0, s.Total)
	})
}

func TestSetItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Adds item and returns summary", func(t *testing.T) {
		repo := new(mockRepo)
		productRepo := new(mockProductRepo)
		svc := NewService(repo, productRepo, testPricing)

		productRepo.On("GetByID", ctx, int64(1)).
			Return(&product.Product{ID: 1, Name: "Atta 5kg", Price: 250, Stock: 10, Active: true}, nil)
		repo.On("Upsert", ctx, int64(7), int64(1), 2).Return(nil)
		repo.On("ListByUser", ctx, int64(7)).
			Return([]*CartItem{cartItem(1, 2, 250)}, nil)

		s, err := svc.SetItem(ctx, 7, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, 500.0, s.Total)
		repo.AssertExpectations(t)
	})

	t.Run("Non-positive quantity", func(t *testing.T) {
		svc := NewService(new(mockRepo), new(mockProductRepo), testPricing)
		_, err := svc.SetItem(ctx, 7, 1, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("Inactive product", func(t *testing.T) {
		repo := new(mockRepo)
		productRepo := new(mockProductRepo)
		svc := NewService(repo, productRepo, testPricing)

		productRepo.On("GetByID", ctx, int64(1)).
			Return(&product.Product{ID: 1, Name: "Atta 5kg", Price: 250, Stock: 10, Active: false}, nil)

		_, err := svc.SetItem(ctx, 7, 1, 1)
		assert.ErrorIs(t, err, product.ErrProductInactive)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Insufficient stock names the product", func(t *testing.T) {
		productRepo := new(mockProductRepo)
		svc := NewService(new(mockRepo), productRepo, testPricing)

		productRepo.On("GetByID", ctx, int64(1)).
			Return(&product.Product{ID: 1, Name: "Atta 5kg", Price: 250, Stock: 1, Active: true}, nil)

		_, err := svc.SetItem(ctx, 7, 1, 3)
		assert.ErrorIs(t, err, product.ErrInsufficientStock)
		assert.Contains(t, err.Error(), "Atta 5kg")
	})

	t.Run("Unknown product", func(t *testing.T) {
		productRepo := new(mockProductRepo)
		svc := NewService(new(mockRepo), productRepo, testPricing)

		productRepo.On("GetByID", ctx, int64(42)).Return(nil, product.ErrProductNotFound)

		_, err := svc.SetItem(ctx, 7, 42, 1)
		assert.ErrorIs(t, err, product.ErrProductNotFound)
	})
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Removes and recomputes", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, new(mockProductRepo), testPricing)

		repo.On("Remove", ctx, int64(7), int64(1)).Return(nil)
		repo.On("ListByUser", ctx, int64(7)).Return(nil, nil)

		s, err := svc.RemoveItem(ctx, 7, 1)
		require.NoError(t, err)
		assert.Empty(t, s.Items)
	})

	t.Run("Missing item", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, new(mockProductRepo), testPricing)

		repo.On("Remove", ctx, int64(7), int64(1)).Return(ErrCartItemNotFound)

		_, err := svc.RemoveItem(ctx, 7, 1)
		assert.ErrorIs(t, err, ErrCartItemNotFound)
	})
}

func TestClear(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, new(mockProductRepo), testPricing)

	repo.On("Clear", context.Background(), int64(7)).Return(nil)
	assert.NoError(t, svc.Clear(context.Background(), 7))
}
