package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/mo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kayceeDev/altschooltestingBE/core"
	"github.com/kayceeDev/altschooltestingBE/models"
)

const usersCollection = "users"

type MongoUsersRepository struct {
	conn *Connection
}

func NewMongoUsersRepository(conn *Connection) *MongoUsersRepository {
	return &MongoUsersRepository{conn: conn}
}

func (r *MongoUsersRepository) collection() (*mongo.Collection, error) {
	database, err := r.conn.Database()
	if err != nil {
		return nil, err
	}
	return database.Collection(usersCollection), nil
}

func (r *MongoUsersRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	cursor, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := []*models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	return users, nil
}

func (r *MongoUsersRepository) CreateUser(ctx context.Context, fields *models.UserFields) (*models.User, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user := fields.NewUser()
	user.ID = primitive.NewObjectID()

	if _, err := coll.InsertOne(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// UpdateUser applies the supplied fields and returns the post-update document.
// An empty field set performs a plain lookup.
func (r *MongoUsersRepository) UpdateUser(
	ctx context.Context,
	id string,
	fields *models.UserFields,
) (mo.Option[*models.User], error) {
	objectID, err := ParseObjectID(id)
	if err != nil {
		return mo.None[*models.User](), err
	}

	coll, err := r.collection()
	if err != nil {
		return mo.None[*models.User](), fmt.Errorf("failed to update user: %w", err)
	}

	filter := bson.D{{Key: "_id", Value: objectID}}

	var result *mongo.SingleResult
	if fields.IsEmpty() {
		result = coll.FindOne(ctx, filter)
	} else {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		result = coll.FindOneAndUpdate(ctx, filter, updateDocument(fields), opts)
	}

	return decodeSingleResult(result, "failed to update user")
}

// DeleteUser removes the document and returns it as it was before deletion
func (r *MongoUsersRepository) DeleteUser(ctx context.Context, id string) (mo.Option[*models.User], error) {
	objectID, err := ParseObjectID(id)
	if err != nil {
		return mo.None[*models.User](), err
	}

	coll, err := r.collection()
	if err != nil {
		return mo.None[*models.User](), fmt.Errorf("failed to delete user: %w", err)
	}

	result := coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: objectID}})
	return decodeSingleResult(result, "failed to delete user")
}

// CastError reports an identifier that is not a valid ObjectID
type CastError struct {
	Value string
}

func (e *CastError) Error() string {
	return fmt.Sprintf(`Cast to ObjectId failed for value "%s" (type string) at path "_id" for model "User"`, e.Value)
}

func (e *CastError) Unwrap() error {
	return core.ErrInvalidID
}

// ParseObjectID casts a path identifier to an ObjectID
func ParseObjectID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, &CastError{Value: id}
	}
	return objectID, nil
}

// updateDocument sets every supplied attribute; explicit nulls are stored as null
func updateDocument(fields *models.UserFields) bson.D {
	setDoc := bson.D{}
	for _, change := range fields.Changes() {
		var value any
		if change.Value != nil {
			value = *change.Value
		}
		setDoc = append(setDoc, bson.E{Key: change.Field, Value: value})
	}
	return bson.D{{Key: "$set", Value: setDoc}}
}

func decodeSingleResult(result *mongo.SingleResult, action string) (mo.Option[*models.User], error) {
	user := &models.User{}
	if err := result.Decode(user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return mo.None[*models.User](), nil
		}
		return mo.None[*models.User](), fmt.Errorf("%s: %w", action, err)
	}
	return mo.Some(user), nil
}
