package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/stretchr/testify/mock"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
	"storefront/internal/usecase"
)

// =====================
// Mock: UserRepository
// =====================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	args := m.Called(ctx, role)
	u, _ := args.Get(0).([]model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) IncrementTokenVersion(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

// =====================
// Mock: ProductRepository
// =====================

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]model.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) ListBySeller(ctx context.Context, sellerID string) ([]model.Product, error) {
	args := m.Called(ctx, sellerID)
	p, _ := args.Get(0).([]model.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ repository.ProductRepository = (*MockProductRepository)(nil)

// =====================
// Mock: AuthValidator / PasswordVerifier / AccessTokenIssuer
// =====================

type MockAuthValidator struct {
	mock.Mock
}

func (m *MockAuthValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	args := m.Called(ctx, email, password)
	return args.Error(0)
}

func (m *MockAuthValidator) ValidateRegister(ctx context.Context, name, email, password string, role model.Role) error {
	args := m.Called(ctx, name, email, password, role)
	return args.Error(0)
}

var _ usecase.AuthValidator = (*MockAuthValidator)(nil)

type MockPasswordVerifier struct {
	mock.Mock
}

func (m *MockPasswordVerifier) Verify(plain string, hashed string) bool {
	args := m.Called(plain, hashed)
	return args.Bool(0)
}

type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(plain string) (string, error) {
	args := m.Called(plain)
	return args.String(0), args.Error(1)
}

type MockAccessTokenIssuer struct {
	mock.Mock
}

func (m *MockAccessTokenIssuer) Issue(userID string, role model.Role, tokenVersion int, now time.Time) (string, time.Time, error) {
	args := m.Called(userID, role, tokenVersion, now)
	exp, _ := args.Get(1).(time.Time)
	return args.String(0), exp, args.Error(2)
}

// =====================
// 固定の時計・連番ID
// =====================

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type seqIDGen struct{ n int }

func (g *seqIDGen) NewID() string {
	g.n++
	return "id" + strconv.Itoa(g.n)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func httpStatus(err error) int {
	he, ok := usecase.AsHTTPError(err)
	if !ok {
		return 0
	}
	return he.Status
}

func redirectOf(err error) string {
	he, ok := usecase.AsHTTPError(err)
	if !ok {
		return ""
	}
	return he.Redirect
}
