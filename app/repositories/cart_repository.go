package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aamirkhan2478/elite-market-backend/app/models"
	"github.com/aamirkhan2478/elite-market-backend/pkg/metrics"
	"github.com/aamirkhan2478/elite-market-backend/pkg/pagination"
)

// CartRepository persists cart entries.
type CartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{coll: db.Collection("carts")}
}

// cartProductLookup resolves the product reference, category included.
var cartProductLookup = []bson.M{
	{"$lookup": bson.M{
		"from":         "products",
		"localField":   "product",
		"foreignField": "_id",
		"as":           "product",
		"pipeline": []bson.M{
			{"$lookup": bson.M{
				"from":         "categories",
				"localField":   "category",
				"foreignField": "_id",
				"as":           "category",
			}},
			{"$unwind": bson.M{"path": "$category", "preserveNullAndEmptyArrays": true}},
		},
	}},
	{"$unwind": bson.M{"path": "$product", "preserveNullAndEmptyArrays": true}},
}

func (r *CartRepository) Create(ctx context.Context, cart *models.Cart) error {
	defer metrics.ObserveDBQuery("insert", time.Now())

	now := time.Now()
	cart.CreatedAt = now
	cart.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, cart)
	if err != nil {
		return err
	}
	cart.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *CartRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Cart, error) {
	defer metrics.ObserveDBQuery("find", time.Now())

	var cart models.Cart
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// ListByUser returns one page of a user's cart entries, newest first,
// with products resolved and the total entry count.
func (r *CartRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, p pagination.Params) ([]models.PopulatedCart, int64, error) {
	defer metrics.ObserveDBQuery("aggregate", time.Now())

	filter := bson.M{"user": userID}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	pipeline := append([]bson.M{
		{"$match": filter},
		{"$sort": bson.M{"createdAt": -1}},
		{"$skip": p.Skip()},
		{"$limit": p.Limit},
	}, cartProductLookup...)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	carts := []models.PopulatedCart{}
	if err := cursor.All(ctx, &carts); err != nil {
		return nil, 0, err
	}
	return carts, total, nil
}

func (r *CartRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	defer metrics.ObserveDBQuery("update", time.Now())

	fields["updatedAt"] = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.ObserveDBQuery("delete", time.Now())

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByUser removes every cart entry belonging to a user; used when an
// account is deleted.
func (r *CartRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	defer metrics.ObserveDBQuery("delete", time.Now())

	_, err := r.coll.DeleteMany(ctx, bson.M{"user": userID})
	return err
}
