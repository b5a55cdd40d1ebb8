package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aamirkhan2478/elite-market-backend/app/models"
	"github.com/aamirkhan2478/elite-market-backend/pkg/metrics"
	"github.com/aamirkhan2478/elite-market-backend/pkg/pagination"
)

// ProductRepository persists catalog products.
type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection("products")}
}

// categoryLookup resolves the category reference into an embedded document.
var categoryLookup = []bson.M{
	{"$lookup": bson.M{
		"from":         "categories",
		"localField":   "category",
		"foreignField": "_id",
		"as":           "category",
	}},
	{"$unwind": bson.M{"path": "$category", "preserveNullAndEmptyArrays": true}},
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	defer metrics.ObserveDBQuery("insert", time.Now())

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, product)
	if err != nil {
		return err
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID returns one product with its category resolved.
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.PopulatedProduct, error) {
	defer metrics.ObserveDBQuery("aggregate", time.Now())

	pipeline := append([]bson.M{{"$match": bson.M{"_id": id}}}, categoryLookup...)
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.PopulatedProduct
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrNotFound
	}
	return &products[0], nil
}

// FindRaw returns one product without resolving references.
func (r *ProductRepository) FindRaw(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	defer metrics.ObserveDBQuery("find", time.Now())

	var product models.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ProductFilter narrows a product listing. Search matches the name
// case-insensitively and takes precedence over the category filter, the
// same way the storefront search box behaves.
type ProductFilter struct {
	Search     string
	Categories []primitive.ObjectID
}

func (f ProductFilter) query() bson.M {
	if f.Search != "" {
		return bson.M{"name": bson.M{"$regex": f.Search, "$options": "i"}}
	}
	if len(f.Categories) > 0 {
		return bson.M{"category": bson.M{"$in": f.Categories}}
	}
	return bson.M{}
}

// List returns one page of products matching the filter, newest first,
// with categories resolved and the total count.
func (r *ProductRepository) List(ctx context.Context, f ProductFilter, p pagination.Params) ([]models.PopulatedProduct, int64, error) {
	defer metrics.ObserveDBQuery("aggregate", time.Now())

	filter := f.query()

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	pipeline := append([]bson.M{
		{"$match": filter},
		{"$sort": bson.M{"createdAt": -1}},
		{"$skip": p.Skip()},
		{"$limit": p.Limit},
	}, categoryLookup...)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	products := []models.PopulatedProduct{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Featured returns up to limit featured products.
func (r *ProductRepository) Featured(ctx context.Context, limit int64) ([]models.PopulatedProduct, error) {
	defer metrics.ObserveDBQuery("aggregate", time.Now())

	pipeline := append([]bson.M{
		{"$match": bson.M{"isFeatured": true}},
		{"$sort": bson.M{"createdAt": -1}},
		{"$limit": limit},
	}, categoryLookup...)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.PopulatedProduct{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Count returns the total number of products.
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	defer metrics.ObserveDBQuery("find", time.Now())
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
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

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
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

// DecrementStock atomically subtracts qty from countInStock. The store
// applies the $inc as a single operation, so concurrent decrements never
// interleave a stale read with a write. Stock may go negative; sellers
// reconcile oversold quantities out of band.
func (r *ProductRepository) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) (*models.Product, error) {
	defer metrics.ObserveDBQuery("update", time.Now())

	var product models.Product
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"countInStock": -qty},
			"$set": bson.M{"updatedAt": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// IncrementStock adds qty back to countInStock; used to compensate a
// partially failed order.
func (r *ProductRepository) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	defer metrics.ObserveDBQuery("update", time.Now())

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"countInStock": qty},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	return err
}
