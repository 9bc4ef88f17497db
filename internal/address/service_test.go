package address

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetByUserID(ctx context.Context, userID int64) ([]*Address, error) {
	args := m.Called(ctx, userID)
	if a := args.Get(0); a != nil {
		return a.([]*Address), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Address, error) {
	args := m.Called(ctx, id)
	if a := args.Get(0); a != nil {
		return a.(*Address), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Create(ctx context.Context, addr *Address) error {
	return m.Called(ctx, addr).Error(0)
}

func (m *mockRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) ClearDefault(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockRepo) SetDefault(ctx context.Context, userID int64, addressID uuid.UUID) error {
	return m.Called(ctx, userID, addressID).Error(0)
}

func validInput() CreateAddressInput {
	return CreateAddressInput{
		Name:        "Ramesh Kumar",
		Phone:       "+91 98765 43210",
		AddressLine: "12 Gandhi Road",
		City:        "Gorakhpur",
		Pincode:     "273001",
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo)

		repo.On("Create", ctx, mock.MatchedBy(func(a *Address) bool {
			return a.UserID == 7 && a.Phone == "9876543210" &&
				a.IsActive && !a.IsDefault
		})).Return(nil)

		addr, err := svc.Create(ctx, 7, validInput())
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, addr.ID)
		assert.Equal(t, "273001", addr.Pincode)
		repo.AssertNotCalled(t, "ClearDefault", mock.Anything, mock.Anything)
	})

	t.Run("Default address clears the previous one first", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo)

		input := validInput()
		input.SetAsDefault = true

		repo.On("ClearDefault", ctx, int64(7)).Return(nil)
		repo.On("Create", ctx, mock.MatchedBy(func(a *Address) bool {
			return a.IsDefault
		})).Return(nil)

		_, err := svc.Create(ctx, 7, input)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Missing fields", func(t *testing.T) {
		svc := NewService(new(mockRepo))

		input := validInput()
		input.AddressLine = "   "

		_, err := svc.Create(ctx, 7, input)
		assert.ErrorIs(t, err, ErrAddressIncomplete)
	})

	t.Run("Bad phone", func(t *testing.T) {
		svc := NewService(new(mockRepo))

		input := validInput()
		input.Phone = "12345"

		_, err := svc.Create(ctx, 7, input)
		assert.ErrorIs(t, err, ErrAddressIncomplete)
	})

	t.Run("Bad pincode", func(t *testing.T) {
		svc := NewService(new(mockRepo))

		for _, pin := range []string{"2730", "27300a", "2730011"} {
			input := validInput()
			input.Pincode = pin

			_, err := svc.Create(ctx, 7, input)
			assert.ErrorIs(t, err, ErrInvalidPincode, "pincode %q", pin)
		}
	})
}

func TestSetDefault(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Owner switches default", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo)

		repo.On("GetByID", ctx, id).Return(&Address{ID: id, UserID: 7}, nil)
		repo.On("ClearDefault", ctx, int64(7)).Return(nil)
		repo.On("SetDefault", ctx, int64(7), id).Return(nil)

		require.NoError(t, svc.SetDefault(ctx, 7, id.String()))
		repo.AssertExpectations(t)
	})

	t.Run("Stranger forbidden", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo)

		repo.On("GetByID", ctx, id).Return(&Address{ID: id, UserID: 7}, nil)

		assert.ErrorIs(t, svc.SetDefault(ctx, 99, id.String()), ErrForbidden)
	})

	t.Run("Malformed id treated as not found", func(t *testing.T) {
		svc := NewService(new(mockRepo))
		assert.ErrorIs(t, svc.SetDefault(ctx, 7, "not-a-uuid"), ErrAddressNotFound)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Owner deletes", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo)

		repo.On("GetByID", ctx, id).Return(&Address{ID: id, UserID: 7}, nil)
		repo.On("Deactivate", ctx, id).Return(nil)

		require.NoError(t, svc.Delete(ctx, 7, id.String()))
		repo.AssertExpectations(t)
	})

	t.Run("Stranger forbidden", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo)

		repo.On("GetByID", ctx, id).Return(&Address{ID: id, UserID: 7}, nil)

		assert.ErrorIs(t, svc.Delete(ctx, 99, id.String()), ErrForbidden)
		repo.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything)
	})

	t.Run("Unknown address", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo)

		repo.On("GetByID", ctx, id).Return(nil, ErrAddressNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, 7, id.String()), ErrAddressNotFound)
	})
}
