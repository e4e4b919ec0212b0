package users

import (
	"context"
	"log"

	"github.com/samber/mo"

	"github.com/kayceeDev/altschooltestingBE/models"
	"github.com/kayceeDev/altschooltestingBE/utils"
)

// UsersRepository is the datastore surface the service depends on
type UsersRepository interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	CreateUser(ctx context.Context, fields *models.UserFields) (*models.User, error)
	UpdateUser(ctx context.Context, id string, fields *models.UserFields) (mo.Option[*models.User], error)
	DeleteUser(ctx context.Context, id string) (mo.Option[*models.User], error)
}

type UsersService struct {
	usersRepo UsersRepository
}

func NewUsersService(repo UsersRepository) *UsersService {
	utils.AssertInvariant(repo != nil, "users repository is nil")
	return &UsersService{usersRepo: repo}
}

func (s *UsersService) ListUsers(ctx context.Context) ([]*models.User, error) {
	log.Printf("📋 Starting to list users")

	users, err := s.usersRepo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	log.Printf("📋 Completed successfully - listed %d users", len(users))
	return users, nil
}

func (s *UsersService) CreateUser(ctx context.Context, fields *models.UserFields) (*models.User, error) {
	log.Printf("📋 Starting to create user")

	user, err := s.usersRepo.CreateUser(ctx, fields)
	if err != nil {
		return nil, err
	}
	utils.AssertInvariant(!user.ID.IsZero(), "created user has no identifier")

	log.Printf("📋 Completed successfully - created user with ID: %s", user.ID.Hex())
	return user, nil
}

func (s *UsersService) UpdateUser(
	ctx context.Context,
	id string,
	fields *models.UserFields,
) (mo.Option[*models.User], error) {
	log.Printf("📋 Starting to update user with ID: %s", id)

	user, err := s.usersRepo.UpdateUser(ctx, id, fields)
	if err != nil {
		return mo.None[*models.User](), err
	}

	if user.IsPresent() {
		log.Printf("📋 Completed successfully - updated user with ID: %s", id)
	} else {
		log.Printf("📋 Completed successfully - user not found with ID: %s", id)
	}
	return user, nil
}

func (s *UsersService) DeleteUser(ctx context.Context, id string) (mo.Option[*models.User], error) {
	log.Printf("📋 Starting to delete user with ID: %s", id)

	user, err := s.usersRepo.DeleteUser(ctx, id)
	if err != nil {
		return mo.None[*models.User](), err
	}

	if user.IsPresent() {
		log.Printf("📋 Completed successfully - deleted user with ID: %s", id)
	} else {
		log.Printf("📋 Completed successfully - user not found with ID: %s", id)
	}
	return user, nil
}
