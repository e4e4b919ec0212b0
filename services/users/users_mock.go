package users

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"github.com/kayceeDev/altschooltestingBE/models"
)

// MockUsersService is a mock implementation of the UsersService interface
type MockUsersService struct {
	mock.Mock
}

func (m *MockUsersService) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUsersService) CreateUser(ctx context.Context, fields *models.UserFields) (*models.User, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUsersService) UpdateUser(
	ctx context.Context,
	id string,
	fields *models.UserFields,
) (mo.Option[*models.User], error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(mo.Option[*models.User]), args.Error(1)
}

func (m *MockUsersService) DeleteUser(ctx context.Context, id string) (mo.Option[*models.User], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(mo.Option[*models.User]), args.Error(1)
}

// MockUsersRepository is a mock implementation of the UsersRepository interface
type MockUsersRepository struct {
	mock.Mock
}

func (m *MockUsersRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUsersRepository) CreateUser(ctx context.Context, fields *models.UserFields) (*models.User, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUsersRepository) UpdateUser(
	ctx context.Context,
	id string,
	fields *models.UserFields,
) (mo.Option[*models.User], error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(mo.Option[*models.User]), args.Error(1)
}

func (m *MockUsersRepository) DeleteUser(ctx context.Context, id string) (mo.Option[*models.User], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(mo.Option[*models.User]), args.Error(1)
}
