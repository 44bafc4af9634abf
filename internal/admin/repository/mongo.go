package repository

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fekuna/storefront-service/internal/model"
)

const adminCollection = "admins"

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(adminCollection)}
}

// EnsureIndexes creates the unique email index. It is safe to call on every start.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("admins_email_unique"),
	})
	return errors.Wrap(err, "admin.MongoRepository.EnsureIndexes")
}

func (r *MongoRepository) Create(ctx context.Context, a *model.Admin) error {
	_, err := r.coll.InsertOne(ctx, a)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: email is already registered", model.ErrAlreadyExists)
	}
	return errors.Wrap(err, "admin.MongoRepository.Create")
}

func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var a model.Admin
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "admin.MongoRepository.FindByEmail")
	}
	return &a, nil
}
