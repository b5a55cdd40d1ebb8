package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aamirkhan2478/elite-market-backend/app/jobs"
	"github.com/aamirkhan2478/elite-market-backend/app/models"
	"github.com/aamirkhan2478/elite-market-backend/pkg/logger"
	"github.com/aamirkhan2478/elite-market-backend/pkg/metrics"
	"github.com/aamirkhan2478/elite-market-backend/pkg/queue"
)

// ErrOrderIncomplete means one or more line items could not be persisted,
// so the order was not created.
var ErrOrderIncomplete = errors.New("services: order could not be placed")

// OrderStore is the slice of the order repository the service needs.
type OrderStore interface {
	InsertItem(ctx context.Context, item *models.OrderItem) error
	DeleteItems(ctx context.Context, ids []primitive.ObjectID) error
	ItemsTotal(ctx context.Context, ids []primitive.ObjectID) (float64, error)
	Insert(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProductStock is the slice of the product repository the service needs.
type ProductStock interface {
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) (*models.Product, error)
	IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
}

// OrderReader loads the buyer for post-placement notification.
type OrderReader interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// Broadcaster pushes order events to connected dashboards.
type Broadcaster interface {
	BroadcastJSON(v any)
}

// OrderItemInput is one validated line of a placement request.
type OrderItemInput struct {
	Quantity int
	Size     string
	Color    string
	Product  primitive.ObjectID
}

// PlaceOrderInput is the validated placement payload.
type PlaceOrderInput struct {
	Items           []OrderItemInput
	ShippingAddress string
	City            string
	Zip             string
	Phone           string
}

// OrderService implements order placement and deletion.
type OrderService struct {
	orders   OrderStore
	products ProductStock
	users    OrderReader

	// Events receives order lifecycle broadcasts: order.placed,
	// order.status, order.deleted. Nil disables broadcasting.
	Events Broadcaster

	// Dispatch enqueues the confirmation email job. Defaults to
	// queue.Dispatch; tests swap it out.
	Dispatch func(job queue.Job) error
}

func NewOrderService(orders OrderStore, products ProductStock, users OrderReader) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		users:    users,
		Dispatch: queue.Dispatch,
	}
}

// placedItem records what one worker accomplished, for compensation.
type placedItem struct {
	itemID      primitive.ObjectID
	product     primitive.ObjectID
	qty         int
	decremented bool
}

// PlaceOrder persists every line item concurrently, decrements stock,
// prices the order from the products' current prices, and creates the
// order document. If any line item fails, the already-persisted items and
// stock decrements are rolled back best-effort and no order is created.
func (s *OrderService) PlaceOrder(ctx context.Context, userID primitive.ObjectID, in PlaceOrderInput) (*models.Order, error) {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		placed  = make([]placedItem, 0, len(in.Items))
		itemIDs = make([]primitive.ObjectID, len(in.Items))
		itemErr error
	)

	for i, line := range in.Items {
		wg.Add(1)
		go func(i int, line OrderItemInput) {
			defer wg.Done()

			item := &models.OrderItem{
				Quantity: line.Quantity,
				Size:     line.Size,
				Color:    line.Color,
				Product:  line.Product,
			}
			rec := placedItem{product: line.Product, qty: line.Quantity}

			if err := s.orders.InsertItem(ctx, item); err != nil {
				mu.Lock()
				itemErr = fmt.Errorf("insert item for product %s: %w", line.Product.Hex(), err)
				mu.Unlock()
				return
			}
			rec.itemID = item.ID
			itemIDs[i] = item.ID

			if _, err := s.products.DecrementStock(ctx, line.Product, line.Quantity); err != nil {
				mu.Lock()
				itemErr = fmt.Errorf("decrement stock for product %s: %w", line.Product.Hex(), err)
				placed = append(placed, rec)
				mu.Unlock()
				return
			}
			rec.decremented = true

			mu.Lock()
			placed = append(placed, rec)
			mu.Unlock()
		}(i, line)
	}
	wg.Wait()

	if itemErr != nil {
		metrics.OrderItemsFailed.Inc()
		s.compensate(placed)
		logger.WithCtx(ctx).Error("order placement failed", "error", itemErr)
		return nil, ErrOrderIncomplete
	}

	total, err := s.orders.ItemsTotal(ctx, itemIDs)
	if err != nil {
		s.compensate(placed)
		return nil, err
	}

	order := &models.Order{
		OrderItems:      itemIDs,
		ShippingAddress: in.ShippingAddress,
		City:            in.City,
		Zip:             in.Zip,
		Phone:           in.Phone,
		TotalPrice:      total,
		Status:          models.OrderStatusPending,
		User:            userID,
	}
	if err := s.orders.Insert(ctx, order); err != nil {
		s.compensate(placed)
		return nil, err
	}

	metrics.OrdersPlaced.Inc()
	s.notify(ctx, order)
	return order, nil
}

// compensate undoes partial placement work: deletes persisted line items
// and restores decremented stock. Failures here are logged, not returned;
// the compensation log is the operator's cue to reconcile by hand.
func (s *OrderService) compensate(placed []placedItem) {
	ctx := context.Background()

	var itemIDs []primitive.ObjectID
	for _, rec := range placed {
		if !rec.itemID.IsZero() {
			itemIDs = append(itemIDs, rec.itemID)
		}
		if rec.decremented {
			if err := s.products.IncrementStock(ctx, rec.product, rec.qty); err != nil {
				logger.Error("order compensation: restore stock",
					"product", rec.product.Hex(), "qty", rec.qty, "error", err)
			}
		}
	}
	if err := s.orders.DeleteItems(ctx, itemIDs); err != nil {
		logger.Error("order compensation: delete items", "count", len(itemIDs), "error", err)
	}
}

// broadcast pushes one lifecycle event to the hub, if any is attached.
func (s *OrderService) broadcast(event map[string]any) {
	if s.Events != nil {
		s.Events.BroadcastJSON(event)
	}
}

// notify broadcasts the placement and queues the confirmation email.
// Both are best-effort; the order is already durable.
func (s *OrderService) notify(ctx context.Context, order *models.Order) {
	s.broadcast(map[string]any{
		"event":      "order.placed",
		"orderId":    order.ID.Hex(),
		"totalPrice": order.TotalPrice,
		"status":     order.Status,
	})

	if s.Dispatch == nil || s.users == nil {
		return
	}
	buyer, err := s.users.FindByID(ctx, order.User)
	if err != nil {
		logger.WithCtx(ctx).Warn("order confirmation: load buyer", "error", err)
		return
	}
	if err := s.Dispatch(jobs.NewOrderConfirmation(order, buyer)); err != nil {
		logger.WithCtx(ctx).Warn("order confirmation: dispatch", "error", err)
	}
}

// SetStatus updates the fulfilment status and broadcasts the change.
func (s *OrderService) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.broadcast(map[string]any{
		"event":   "order.status",
		"orderId": id.Hex(),
		"status":  status,
	})
	return nil
}

// DeleteOrder removes an order and its line items, then broadcasts the
// removal.
func (s *OrderService) DeleteOrder(ctx context.Context, id primitive.ObjectID) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.broadcast(map[string]any{
		"event":   "order.deleted",
		"orderId": id.Hex(),
	})
	return nil
}
