package repository

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fekuna/storefront-service/internal/category/dto"
	"github.com/fekuna/storefront-service/internal/model"
)

type MongoRepository struct {
	products *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{products: db.Collection("products")}
}

func (r *MongoRepository) FindActive(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, error) {
	match := bson.M{"active": true, "category": bson.M{"$ne": ""}}
	if f.FeaturedOnly {
		match["featured"] = true
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": "$category", "product_count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cur, err := r.products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "category.MongoRepository.FindActive")
	}

	categories := []model.Category{}
	if err := cur.All(ctx, &categories); err != nil {
		return nil, errors.Wrap(err, "category.MongoRepository.FindActive.Decode")
	}
	return categories, nil
}
