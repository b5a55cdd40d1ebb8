package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aamirkhan2478/elite-market-backend/app/models"
	"github.com/aamirkhan2478/elite-market-backend/app/repositories"
	"github.com/aamirkhan2478/elite-market-backend/app/services"
	"github.com/aamirkhan2478/elite-market-backend/pkg/queue"
)

// ─── Mocks ────────────────────────────────────────────────────────────────────

type mockOrderStore struct{ mock.Mock }

func (m *mockOrderStore) InsertItem(ctx context.Context, item *models.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockOrderStore) DeleteItems(ctx context.Context, ids []primitive.ObjectID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *mockOrderStore) ItemsTotal(ctx context.Context, ids []primitive.ObjectID) (float64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockOrderStore) Insert(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockOrderStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockProductStock struct{ mock.Mock }

func (m *mockProductStock) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) (*models.Product, error) {
	args := m.Called(ctx, id, qty)
	if p, ok := args.Get(0).(*models.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductStock) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	args := m.Called(ctx, id, qty)
	return args.Error(0)
}

type mockUserReader struct{ mock.Mock }

func (m *mockUserReader) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type captureBroadcaster struct {
	mu     sync.Mutex
	events []any
}

func (b *captureBroadcaster) BroadcastJSON(v any) {
	b.mu.Lock()
	b.events = append(b.events, v)
	b.mu.Unlock()
}

// assignItemID stands in for the repository generating the document id.
func assignItemID(args mock.Arguments) {
	item := args.Get(1).(*models.OrderItem)
	item.ID = primitive.NewObjectID()
}

// ─── Tests ────────────────────────────────────────────────────────────────────

func TestPlaceOrder(t *testing.T) {
	orders := new(mockOrderStore)
	products := new(mockProductStock)
	users := new(mockUserReader)

	productA := primitive.NewObjectID()
	productB := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	orders.On("InsertItem", mock.Anything, mock.Anything).Run(assignItemID).Return(nil)
	products.On("DecrementStock", mock.Anything, productA, 2).Return(&models.Product{Price: 10}, nil)
	products.On("DecrementStock", mock.Anything, productB, 1).Return(&models.Product{Price: 5}, nil)
	orders.On("ItemsTotal", mock.Anything, mock.Anything).Return(25.0, nil)
	orders.On("Insert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Order).ID = primitive.NewObjectID()
	}).Return(nil)
	users.On("FindByID", mock.Anything, userID).Return(&models.User{
		ID: userID, Name: "Jane", Email: "jane@example.com",
	}, nil)

	events := &captureBroadcaster{}
	var dispatched []queue.Job

	svc := services.NewOrderService(orders, products, users)
	svc.Events = events
	svc.Dispatch = func(job queue.Job) error {
		dispatched = append(dispatched, job)
		return nil
	}

	order, err := svc.PlaceOrder(context.Background(), userID, services.PlaceOrderInput{
		Items: []services.OrderItemInput{
			{Quantity: 2, Size: "M", Color: "black", Product: productA},
			{Quantity: 1, Size: "L", Color: "white", Product: productB},
		},
		ShippingAddress: "12 Main St",
		City:            "Karachi",
		Zip:             "74000",
		Phone:           "03001234567",
	})

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, 25.0, order.TotalPrice)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, userID, order.User)
	assert.Len(t, order.OrderItems, 2)

	assert.Len(t, events.events, 1)
	assert.Len(t, dispatched, 1)

	orders.AssertExpectations(t)
	products.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestPlaceOrderItemFailureCompensates(t *testing.T) {
	orders := new(mockOrderStore)
	products := new(mockProductStock)

	goodProduct := primitive.NewObjectID()
	badProduct := primitive.NewObjectID()

	orders.On("InsertItem", mock.Anything, mock.MatchedBy(func(i *models.OrderItem) bool {
		return i.Product == goodProduct
	})).Run(assignItemID).Return(nil)
	orders.On("InsertItem", mock.Anything, mock.MatchedBy(func(i *models.OrderItem) bool {
		return i.Product == badProduct
	})).Return(errors.New("write failed"))

	products.On("DecrementStock", mock.Anything, goodProduct, 1).Return(&models.Product{Price: 10}, nil)

	// Compensation: restore the good line's stock, delete its item.
	products.On("IncrementStock", mock.Anything, goodProduct, 1).Return(nil)
	orders.On("DeleteItems", mock.Anything, mock.Anything).Return(nil)

	svc := services.NewOrderService(orders, products, nil)
	svc.Dispatch = nil

	order, err := svc.PlaceOrder(context.Background(), primitive.NewObjectID(), services.PlaceOrderInput{
		Items: []services.OrderItemInput{
			{Quantity: 1, Product: goodProduct},
			{Quantity: 1, Product: badProduct},
		},
	})

	assert.Nil(t, order)
	assert.ErrorIs(t, err, services.ErrOrderIncomplete)

	orders.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	orders.AssertExpectations(t)
	products.AssertExpectations(t)
}

func TestPlaceOrderStockFailureCompensates(t *testing.T) {
	orders := new(mockOrderStore)
	products := new(mockProductStock)

	product := primitive.NewObjectID()

	orders.On("InsertItem", mock.Anything, mock.Anything).Run(assignItemID).Return(nil)
	products.On("DecrementStock", mock.Anything, product, 3).
		Return(nil, errors.New("insufficient stock"))
	orders.On("DeleteItems", mock.Anything, mock.Anything).Return(nil)

	svc := services.NewOrderService(orders, products, nil)
	svc.Dispatch = nil

	order, err := svc.PlaceOrder(context.Background(), primitive.NewObjectID(), services.PlaceOrderInput{
		Items: []services.OrderItemInput{{Quantity: 3, Product: product}},
	})

	assert.Nil(t, order)
	assert.ErrorIs(t, err, services.ErrOrderIncomplete)

	// The decrement never succeeded, so stock must not be restored.
	products.AssertNotCalled(t, "IncrementStock", mock.Anything, mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	orders.AssertExpectations(t)
	products.AssertExpectations(t)
}

func TestPlaceOrderPricingFailureCompensates(t *testing.T) {
	orders := new(mockOrderStore)
	products := new(mockProductStock)

	product := primitive.NewObjectID()

	orders.On("InsertItem", mock.Anything, mock.Anything).Run(assignItemID).Return(nil)
	products.On("DecrementStock", mock.Anything, product, 2).Return(&models.Product{Price: 10}, nil)

	// The product vanished between the decrement and pricing.
	orders.On("ItemsTotal", mock.Anything, mock.Anything).
		Return(0.0, repositories.ErrProductMissing)

	products.On("IncrementStock", mock.Anything, product, 2).Return(nil)
	orders.On("DeleteItems", mock.Anything, mock.Anything).Return(nil)

	svc := services.NewOrderService(orders, products, nil)
	svc.Dispatch = nil

	order, err := svc.PlaceOrder(context.Background(), primitive.NewObjectID(), services.PlaceOrderInput{
		Items: []services.OrderItemInput{{Quantity: 2, Product: product}},
	})

	assert.Nil(t, order)
	assert.ErrorIs(t, err, repositories.ErrProductMissing)

	orders.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	orders.AssertExpectations(t)
	products.AssertExpectations(t)
}

func TestSetStatusBroadcasts(t *testing.T) {
	orders := new(mockOrderStore)
	id := primitive.NewObjectID()
	orders.On("UpdateStatus", mock.Anything, id, "shipped").Return(nil)

	events := &captureBroadcaster{}
	svc := services.NewOrderService(orders, new(mockProductStock), nil)
	svc.Events = events

	require.NoError(t, svc.SetStatus(context.Background(), id, "shipped"))

	require.Len(t, events.events, 1)
	event := events.events[0].(map[string]any)
	assert.Equal(t, "order.status", event["event"])
	assert.Equal(t, id.Hex(), event["orderId"])
	assert.Equal(t, "shipped", event["status"])
	orders.AssertExpectations(t)
}

func TestSetStatusFailureDoesNotBroadcast(t *testing.T) {
	orders := new(mockOrderStore)
	id := primitive.NewObjectID()
	orders.On("UpdateStatus", mock.Anything, id, "shipped").Return(repositories.ErrNotFound)

	events := &captureBroadcaster{}
	svc := services.NewOrderService(orders, new(mockProductStock), nil)
	svc.Events = events

	assert.ErrorIs(t, svc.SetStatus(context.Background(), id, "shipped"), repositories.ErrNotFound)
	assert.Empty(t, events.events)
}

func TestDeleteOrder(t *testing.T) {
	orders := new(mockOrderStore)
	id := primitive.NewObjectID()
	orders.On("Delete", mock.Anything, id).Return(nil)

	events := &captureBroadcaster{}
	svc := services.NewOrderService(orders, new(mockProductStock), nil)
	svc.Events = events

	require.NoError(t, svc.DeleteOrder(context.Background(), id))

	require.Len(t, events.events, 1)
	event := events.events[0].(map[string]any)
	assert.Equal(t, "order.deleted", event["event"])
	assert.Equal(t, id.Hex(), event["orderId"])
	orders.AssertExpectations(t)
}
