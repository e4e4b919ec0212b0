package users

import (
	"context"
	"errors"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kayceeDev/altschooltestingBE/models"
	"github.com/kayceeDev/altschooltestingBE/services"
)

var _ services.UsersService = (*UsersService)(nil)
var _ services.UsersService = (*MockUsersService)(nil)

func strPtr(s string) *string {
	return &s
}

var testUser = &models.User{
	ID:    primitive.NewObjectID(),
	Name:  models.StringValue("Ada"),
	Email: models.StringValue("ada@example.com"),
}

func TestUsersService_ListUsers(t *testing.T) {
	tests := []struct {
		name           string
		mockSetup      func(*MockUsersRepository)
		expectedResult []*models.User
		expectedError  string
	}{
		{
			name: "success - returns users",
			mockSetup: func(m *MockUsersRepository) {
				m.On("ListUsers", mock.Anything).Return([]*models.User{testUser}, nil)
			},
			expectedResult: []*models.User{testUser},
		},
		{
			name: "success - empty collection",
			mockSetup: func(m *MockUsersRepository) {
				m.On("ListUsers", mock.Anything).Return([]*models.User{}, nil)
			},
			expectedResult: []*models.User{},
		},
		{
			name: "error - repository failure is passed through",
			mockSetup: func(m *MockUsersRepository) {
				m.On("ListUsers", mock.Anything).Return(nil, errors.New("server selection error"))
			},
			expectedError: "server selection error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockUsersRepository{}
			tt.mockSetup(repo)
			service := NewUsersService(repo)

			result, err := service.ListUsers(context.Background())

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Equal(t, tt.expectedError, err.Error())
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedResult, result)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestUsersService_CreateUser(t *testing.T) {
	fields := &models.UserFields{Name: mo.Some(strPtr("Ada"))}

	t.Run("success", func(t *testing.T) {
		repo := &MockUsersRepository{}
		repo.On("CreateUser", mock.Anything, fields).Return(testUser, nil).Once()

		user, err := NewUsersService(repo).CreateUser(context.Background(), fields)
		require.NoError(t, err)
		assert.Equal(t, testUser, user)
		repo.AssertExpectations(t)
	})

	t.Run("error", func(t *testing.T) {
		repo := &MockUsersRepository{}
		repo.On("CreateUser", mock.Anything, fields).Return(nil, errors.New("duplicate key")).Once()

		user, err := NewUsersService(repo).CreateUser(context.Background(), fields)
		require.Error(t, err)
		assert.Nil(t, user)
		assert.Equal(t, "duplicate key", err.Error())
		repo.AssertExpectations(t)
	})
}

func TestUsersService_UpdateUser(t *testing.T) {
	id := testUser.ID.Hex()
	fields := &models.UserFields{Email: mo.Some(strPtr("new@example.com"))}

	tests := []struct {
		name          string
		mockSetup     func(*MockUsersRepository)
		expectPresent bool
		expectedError string
	}{
		{
			name: "found",
			mockSetup: func(m *MockUsersRepository) {
				m.On("UpdateUser", mock.Anything, id, fields).Return(mo.Some(testUser), nil)
			},
			expectPresent: true,
		},
		{
			name: "not found",
			mockSetup: func(m *MockUsersRepository) {
				m.On("UpdateUser", mock.Anything, id, fields).Return(mo.None[*models.User](), nil)
			},
		},
		{
			name: "error",
			mockSetup: func(m *MockUsersRepository) {
				m.On("UpdateUser", mock.Anything, id, fields).Return(mo.None[*models.User](), errors.New("boom"))
			},
			expectedError: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockUsersRepository{}
			tt.mockSetup(repo)

			result, err := NewUsersService(repo).UpdateUser(context.Background(), id, fields)

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Equal(t, tt.expectedError, err.Error())
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expectPresent, result.IsPresent())
			repo.AssertExpectations(t)
		})
	}
}

func TestUsersService_DeleteUser(t *testing.T) {
	id := testUser.ID.Hex()

	tests := []struct {
		name          string
		mockSetup     func(*MockUsersRepository)
		expectPresent bool
		expectedError string
	}{
		{
			name: "found",
			mockSetup: func(m *MockUsersRepository) {
				m.On("DeleteUser", mock.Anything, id).Return(mo.Some(testUser), nil)
			},
			expectPresent: true,
		},
		{
			name: "not found",
			mockSetup: func(m *MockUsersRepository) {
				m.On("DeleteUser", mock.Anything, id).Return(mo.None[*models.User](), nil)
			},
		},
		{
			name: "error",
			mockSetup: func(m *MockUsersRepository) {
				m.On("DeleteUser", mock.Anything, id).Return(mo.None[*models.User](), errors.New("boom"))
			},
			expectedError: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockUsersRepository{}
			tt.mockSetup(repo)

			result, err := NewUsersService(repo).DeleteUser(context.Background(), id)

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Equal(t, tt.expectedError, err.Error())
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expectPresent, result.IsPresent())
			repo.AssertExpectations(t)
		})
	}
}
