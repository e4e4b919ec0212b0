package testutils

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/joho/godotenv"
	"github.com/samber/mo"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kayceeDev/altschooltestingBE/config"
	"github.com/kayceeDev/altschooltestingBE/db"
	"github.com/kayceeDev/altschooltestingBE/models"
)

// LoadTestConfig loads datastore configuration for integration tests from environment variables
func LoadTestConfig() (*config.AppConfig, error) {
	_ = godotenv.Load("../.env.test") // From a package directory
	_ = godotenv.Load(".env.test")    // From root directory
	_ = godotenv.Load()

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is not set")
	}

	return &config.AppConfig{
		MongoURI:      mongoURI,
		MongoDatabase: os.Getenv("MONGODB_DATABASE"),
	}, nil
}

// RequireTestConfig skips the test when no integration datastore is configured
func RequireTestConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	cfg, err := LoadTestConfig()
	if err != nil {
		t.Skipf("⚠️ Skipping integration test: %v", err)
	}
	return cfg
}

// InMemoryUsersRepository stores users in process memory, preserving insertion order
type InMemoryUsersRepository struct {
	mu    sync.Mutex
	users []*models.User
	err   error
	calls int
}

func NewInMemoryUsersRepository() *InMemoryUsersRepository {
	return &InMemoryUsersRepository{}
}

// FailWith makes every following call return err; nil restores normal behavior
func (r *InMemoryUsersRepository) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Calls returns the number of repository calls made so far
func (r *InMemoryUsersRepository) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func (r *InMemoryUsersRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++

	if r.err != nil {
		return nil, r.err
	}

	users := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, copyUser(user))
	}
	return users, nil
}

func (r *InMemoryUsersRepository) CreateUser(ctx context.Context, fields *models.UserFields) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++

	if r.err != nil {
		return nil, r.err
	}

	user := fields.NewUser()
	user.ID = primitive.NewObjectID()
	r.users = append(r.users, user)
	return copyUser(user), nil
}

func (r *InMemoryUsersRepository) UpdateUser(
	ctx context.Context,
	id string,
	fields *models.UserFields,
) (mo.Option[*models.User], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++

	if r.err != nil {
		return mo.None[*models.User](), r.err
	}

	index, err := r.indexOf(id)
	if err != nil || index < 0 {
		return mo.None[*models.User](), err
	}

	fields.Apply(r.users[index])
	return mo.Some(copyUser(r.users[index])), nil
}

func (r *InMemoryUsersRepository) DeleteUser(ctx context.Context, id string) (mo.Option[*models.User], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++

	if r.err != nil {
		return mo.None[*models.User](), r.err
	}

	index, err := r.indexOf(id)
	if err != nil || index < 0 {
		return mo.None[*models.User](), err
	}

	deleted := r.users[index]
	r.users = append(r.users[:index], r.users[index+1:]...)
	return mo.Some(deleted), nil
}

func (r *InMemoryUsersRepository) indexOf(id string) (int, error) {
	objectID, err := db.ParseObjectID(id)
	if err != nil {
		return -1, err
	}
	for i, user := range r.users {
		if user.ID == objectID {
			return i, nil
		}
	}
	return -1, nil
}

func copyUser(user *models.User) *models.User {
	clone := *user
	return &clone
}
