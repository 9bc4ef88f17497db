package user

import (
	"context"
	"testing"
	"time"

	"chandra-dukan-be/internal/otp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 1
		u.Active = true
	}
	return args.Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetByPhone(ctx context.Context, phone string) (*User, error) {
	args := m.Called(ctx, phone)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) OrderPlaced(ctx context.Context, phone, orderNumber string, total float64) error {
	return m.Called(ctx, phone, orderNumber, total).Error(0)
}

func (m *mockNotifier) OrderStatusChanged(ctx context.Context, phone, orderNumber, status string) error {
	return m.Called(ctx, phone, orderNumber, status).Error(0)
}

func (m *mockNotifier) SendOTP(ctx context.Context, phone, code string) error {
	return m.Called(ctx, phone, code).Error(0)
}

func existingUser(t *testing.T) *User {
	t.Helper()
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	return &User{
		ID:           7,
		Name:         "Ramesh Kumar",
		Phone:        "9876543210",
		PasswordHash: &hash,
		Role:         RoleUser,
		Active:       true,
	}
}

func TestRegister(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, otp.NewStore(time.Minute), new(mockNotifier))

		repo.On("Create", ctx, mock.MatchedBy(func(u *User) bool {
			return u.Name == "Ramesh Kumar" && u.Phone == "9876543210" && u.Role == RoleUser
		})).Return(nil)

		res, err := svc.Register(ctx, RegisterInput{
			Name:     "  Ramesh Kumar  ",
			Phone:    "+91 98765 43210",
			Password: "secret123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, int64(1), res.User.ID)
		assert.NotNil(t, res.User.PasswordHash)
		repo.AssertExpectations(t)
	})

	t.Run("Name required", func(t *testing.T) {
		svc := NewService(new(mockRepo), otp.NewStore(time.Minute), new(mockNotifier))
		_, err := svc.Register(ctx, RegisterInput{Name: "  ", Phone: "9876543210", Password: "secret123"})
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("Invalid phone", func(t *testing.T) {
		svc := NewService(new(mockRepo), otp.NewStore(time.Minute), new(mockNotifier))
		_, err := svc.Register(ctx, RegisterInput{Name: "Ramesh", Phone: "12345", Password: "secret123"})
		assert.ErrorIs(t, err, ErrInvalidPhone)
	})

	t.Run("Weak password", func(t *testing.T) {
		svc := NewService(new(mockRepo), otp.NewStore(time.Minute), new(mockNotifier))
		_, err := svc.Register(ctx, RegisterInput{Name: "Ramesh", Phone: "9876543210", Password: "abc"})
		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("Duplicate phone", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, otp.NewStore(time.Minute), new(mockNotifier))

		repo.On("Create", ctx, mock.Anything).Return(ErrPhoneExists)

		_, err := svc.Register(ctx, RegisterInput{Name: "Ramesh", Phone: "9876543210", Password: "secret123"})
		assert.ErrorIs(t, err, ErrPhoneExists)
	})
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, otp.NewStore(time.Minute), new(mockNotifier))

		repo.On("GetByPhone", ctx, "9876543210").Return(existingUser(t), nil)

		res, err := svc.Login(ctx, LoginInput{Phone: "98765 43210", Password: "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, int64(7), res.User.ID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, otp.NewStore(time.Minute), new(mockNotifier))

		repo.On("GetByPhone", ctx, "9876543210").Return(existingUser(t), nil)

		_, err := svc.Login(ctx, LoginInput{Phone: "9876543210", Password: "wrong-pass"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown phone maps to invalid credentials", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, otp.NewStore(time.Minute), new(mockNotifier))

		repo.On("GetByPhone", ctx, "9876543210").Return(nil, ErrUserNotFound)

		_, err := svc.Login(ctx, LoginInput{Phone: "9876543210", Password: "secret123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("OTP-only account has no password", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, otp.NewStore(time.Minute), new(mockNotifier))

		u := existingUser(t)
		u.PasswordHash = nil
		repo.On("GetByPhone", ctx, "9876543210").Return(u, nil)

		_, err := svc.Login(ctx, LoginInput{Phone: "9876543210", Password: "secret123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRequestOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("Issues code to registered phone", func(t *testing.T) {
		repo := new(mockRepo)
		notifier := new(mockNotifier)
		store := otp.NewStore(time.Minute)
		svc := NewService(repo, store, notifier)

		repo.On("GetByPhone", ctx, "9876543210").Return(existingUser(t), nil)

		var sent string
		notifier.On("SendOTP", ctx, "9876543210", mock.Anything).
			Run(func(args mock.Arguments) { sent = args.String(2) }).
			Return(nil)

		require.NoError(t, svc.RequestOTP(ctx, "9876543210"))
		assert.Len(t, sent, 6)
		assert.True(t, store.Consume("9876543210", sent))
	})

	t.Run("Unknown phone succeeds silently", func(t *testing.T) {
		repo := new(mockRepo)
		notifier := new(mockNotifier)
		svc := NewService(repo, otp.NewStore(time.Minute), notifier)

		repo.On("GetByPhone", ctx, "9999999999").Return(nil, ErrUserNotFound)

		assert.NoError(t, svc.RequestOTP(ctx, "9999999999"))
		notifier.AssertNotCalled(t, "SendOTP", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Invalid phone rejected", func(t *testing.T) {
		svc := NewService(new(mockRepo), otp.NewStore(time.Minute), new(mockNotifier))
		assert.ErrorIs(t, svc.RequestOTP(ctx, "12"), ErrInvalidPhone)
	})

	t.Run("Delivery failure is not surfaced", func(t *testing.T) {
		repo := new(mockRepo)
		notifier := new(mockNotifier)
		svc := NewService(repo, otp.NewStore(time.Minute), notifier)

		repo.On("GetByPhone", ctx, "9876543210").Return(existingUser(t), nil)
		notifier.On("SendOTP", ctx, "9876543210", mock.Anything).Return(assert.AnError)

		assert.NoError(t, svc.RequestOTP(ctx, "9876543210"))
	})
}

func TestVerifyOTP(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	t.Run("Valid code logs in", func(t *testing.T) {
		repo := new(mockRepo)
		store := otp.NewStore(time.Minute)
		svc := NewService(repo, store, new(mockNotifier))

		code, err := store.Generate("9876543210")
		require.NoError(t, err)

		repo.On("GetByPhone", ctx, "9876543210").Return(existingUser(t), nil)

		res, err := svc.VerifyOTP(ctx, "+91 9876543210", code)
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, int64(7), res.User.ID)
	})

	t.Run("Wrong code", func(t *testing.T) {
		store := otp.NewStore(time.Minute)
		svc := NewService(new(mockRepo), store, new(mockNotifier))

		_, err := store.Generate("9876543210")
		require.NoError(t, err)

		_, err = svc.VerifyOTP(ctx, "9876543210", "000000x")
		assert.ErrorIs(t, err, ErrInvalidOTP)
	})

	t.Run("Code cannot be replayed", func(t *testing.T) {
		repo := new(mockRepo)
		store := otp.NewStore(time.Minute)
		svc := NewService(repo, store, new(mockNotifier))

		code, err := store.Generate("9876543210")
		require.NoError(t, err)

		repo.On("GetByPhone", ctx, "9876543210").Return(existingUser(t), nil)

		_, err = svc.VerifyOTP(ctx, "9876543210", code)
		require.NoError(t, err)

		_, err = svc.VerifyOTP(ctx, "9876543210", code)
		assert.ErrorIs(t, err, ErrInvalidOTP)
	})
}
