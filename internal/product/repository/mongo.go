package repository

import (
	"context"
	"fmt"
	"regexp"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fekuna/storefront-service/internal/model"
	"github.com/fekuna/storefront-service/internal/product/dto"
)

const productCollection = "products"

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(productCollection)}
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "active", Value: 1}, {Key: "category", Value: 1}}},
	})
	return errors.Wrap(err, "product.MongoRepository.EnsureIndexes")
}

func (r *MongoRepository) Create(ctx context.Context, p *model.Product) error {
	_, err := r.coll.InsertOne(ctx, p)
	return errors.Wrap(err, "product.MongoRepository.Create")
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "product.MongoRepository.FindByID")
	}
	return &p, nil
}

func (r *MongoRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, error) {
	filter := bson.M{"active": true}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.FeaturedOnly {
		filter["featured"] = true
	}
	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
			bson.M{"category": pattern},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "product.MongoRepository.FindAll")
	}

	products := []model.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, errors.Wrap(err, "product.MongoRepository.FindAll.Decode")
	}
	return products, nil
}

func (r *MongoRepository) Update(ctx context.Context, p *model.Product) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return errors.Wrap(err, "product.MongoRepository.Update")
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: product %s", model.ErrNotFound, p.ID)
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return errors.Wrap(err, "product.MongoRepository.Delete")
}

func (r *MongoRepository) CountActive(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"active": true})
	if err != nil {
		return 0, errors.Wrap(err, "product.MongoRepository.CountActive")
	}
	return int(n), nil
}
