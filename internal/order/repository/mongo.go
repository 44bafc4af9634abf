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

const orderCollection = "orders"

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(orderCollection)}
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	return errors.Wrap(err, "order.MongoRepository.EnsureIndexes")
}

func (r *MongoRepository) Create(ctx context.Context, o *model.Order) error {
	_, err := r.coll.InsertOne(ctx, o)
	return errors.Wrap(err, "order.MongoRepository.Create")
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "order.MongoRepository.FindByID")
	}
	return &o, nil
}

func (r *MongoRepository) FindAll(ctx context.Context) ([]model.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "order.MongoRepository.FindAll")
	}

	orders := []model.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, errors.Wrap(err, "order.MongoRepository.FindAll.Decode")
	}
	return orders, nil
}

func (r *MongoRepository) Update(ctx context.Context, o *model.Order) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": o.ID},
		bson.M{"$set": bson.M{"status": o.Status, "notes": o.Notes}},
	)
	if err != nil {
		return errors.Wrap(err, "order.MongoRepository.Update")
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: order %s", model.ErrNotFound, o.ID)
	}
	return nil
}

func (r *MongoRepository) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, errors.Wrap(err, "order.MongoRepository.Count")
	}
	return int(n), nil
}

func (r *MongoRepository) CountByStatus(ctx context.Context, status model.OrderStatus) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, errors.Wrap(err, "order.MongoRepository.CountByStatus")
	}
	return int(n), nil
}

func (r *MongoRepository) SumTotal(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$total"}}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, errors.Wrap(err, "order.MongoRepository.SumTotal")
	}

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, errors.Wrap(err, "order.MongoRepository.SumTotal.Decode")
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
