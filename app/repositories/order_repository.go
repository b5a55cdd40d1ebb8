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

// OrderRepository persists orders and their line items. Line items live in
// their own collection and are referenced by id from the order document.
type OrderRepository struct {
	orders *mongo.Collection
	items  *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{
		orders: db.Collection("orders"),
		items:  db.Collection("order_items"),
	}
}

// orderLookup resolves line items (with product and category) and the
// buyer (projected to id and name) into the order document.
var orderLookup = []bson.M{
	{"$lookup": bson.M{
		"from":         "order_items",
		"localField":   "orderItems",
		"foreignField": "_id",
		"as":           "orderItems",
		"pipeline": []bson.M{
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
		},
	}},
	{"$lookup": bson.M{
		"from":         "users",
		"localField":   "user",
		"foreignField": "_id",
		"as":           "user",
		"pipeline": []bson.M{
			{"$project": bson.M{"_id": 1, "name": 1}},
		},
	}},
	{"$unwind": bson.M{"path": "$user", "preserveNullAndEmptyArrays": true}},
}

// ─── Line items ───────────────────────────────────────────────────────────────

// InsertItem persists one order line item.
func (r *OrderRepository) InsertItem(ctx context.Context, item *models.OrderItem) error {
	defer metrics.ObserveDBQuery("insert", time.Now())

	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	res, err := r.items.InsertOne(ctx, item)
	if err != nil {
		return err
	}
	item.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// DeleteItems removes the given line items; used for cascade delete and
// compensation after a partial placement failure.
func (r *OrderRepository) DeleteItems(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	defer metrics.ObserveDBQuery("delete", time.Now())

	_, err := r.items.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return err
}

// ItemsTotal computes the order total for the given line items as the sum
// of quantity times the product's current price. The $unwind drops lines
// whose product was deleted after placement started, so the priced count
// is checked against len(ids); a mismatch yields ErrProductMissing rather
// than a silently understated total.
func (r *OrderRepository) ItemsTotal(ctx context.Context, ids []primitive.ObjectID) (float64, error) {
	defer metrics.ObserveDBQuery("aggregate", time.Now())

	pipeline := []bson.M{
		{"$match": bson.M{"_id": bson.M{"$in": ids}}},
		{"$lookup": bson.M{
			"from":         "products",
			"localField":   "product",
			"foreignField": "_id",
			"as":           "product",
		}},
		{"$unwind": "$product"},
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": bson.M{"$multiply": []any{"$quantity", "$product.price"}}},
			"count": bson.M{"$sum": 1},
		}},
	}

	cursor, err := r.items.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var out []struct {
		Total float64 `bson:"total"`
		Count int64   `bson:"count"`
	}
	if err := cursor.All(ctx, &out); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	if len(out) == 0 || out[0].Count != int64(len(ids)) {
		return 0, ErrProductMissing
	}
	return out[0].Total, nil
}

// ─── Orders ───────────────────────────────────────────────────────────────────

// Insert persists the order document itself.
func (r *OrderRepository) Insert(ctx context.Context, order *models.Order) error {
	defer metrics.ObserveDBQuery("insert", time.Now())

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}

	res, err := r.orders.InsertOne(ctx, order)
	if err != nil {
		return err
	}
	order.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID returns one order with line items and buyer resolved.
func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.PopulatedOrder, error) {
	defer metrics.ObserveDBQuery("aggregate", time.Now())

	pipeline := append([]bson.M{{"$match": bson.M{"_id": id}}}, orderLookup...)
	cursor, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.PopulatedOrder
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrNotFound
	}
	return &orders[0], nil
}

// FindRaw returns an order without resolving references.
func (r *OrderRepository) FindRaw(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	defer metrics.ObserveDBQuery("find", time.Now())

	var order models.Order
	err := r.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns one page of all orders, newest first, with the total count.
func (r *OrderRepository) List(ctx context.Context, p pagination.Params) ([]models.PopulatedOrder, int64, error) {
	return r.list(ctx, bson.M{}, p)
}

// ListByUser returns one page of a single user's orders, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, p pagination.Params) ([]models.PopulatedOrder, int64, error) {
	return r.list(ctx, bson.M{"user": userID}, p)
}

func (r *OrderRepository) list(ctx context.Context, filter bson.M, p pagination.Params) ([]models.PopulatedOrder, int64, error) {
	defer metrics.ObserveDBQuery("aggregate", time.Now())

	total, err := r.orders.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	pipeline := append([]bson.M{
		{"$match": filter},
		{"$sort": bson.M{"createdAt": -1}},
		{"$skip": p.Skip()},
		{"$limit": p.Limit},
	}, orderLookup...)

	cursor, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	orders := []models.PopulatedOrder{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus sets the order's fulfilment status.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	defer metrics.ObserveDBQuery("update", time.Now())

	res, err := r.orders.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an order and cascades to its line items.
func (r *OrderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	order, err := r.FindRaw(ctx, id)
	if err != nil {
		return err
	}

	if err := r.DeleteItems(ctx, order.OrderItems); err != nil {
		return err
	}

	defer metrics.ObserveDBQuery("delete", time.Now())
	res, err := r.orders.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// TotalSales sums totalPrice over all orders.
func (r *OrderRepository) TotalSales(ctx context.Context) (float64, error) {
	defer metrics.ObserveDBQuery("aggregate", time.Now())

	cursor, err := r.orders.Aggregate(ctx, []bson.M{
		{"$group": bson.M{
			"_id":        nil,
			"totalsales": bson.M{"$sum": "$totalPrice"},
		}},
	})
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var out []struct {
		TotalSales float64 `bson:"totalsales"`
	}
	if err := cursor.All(ctx, &out); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].TotalSales, nil
}

// Count returns the total number of orders.
func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	defer metrics.ObserveDBQuery("find", time.Now())
	return r.orders.CountDocuments(ctx, bson.M{})
}
