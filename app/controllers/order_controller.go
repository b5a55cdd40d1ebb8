package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aamirkhan2478/elite-market-backend/app/middleware"
	"github.com/aamirkhan2478/elite-market-backend/app/repositories"
	"github.com/aamirkhan2478/elite-market-backend/app/services"
	"github.com/aamirkhan2478/elite-market-backend/pkg/ctx"
	"github.com/aamirkhan2478/elite-market-backend/pkg/logger"
	"github.com/aamirkhan2478/elite-market-backend/pkg/pagination"
)

// OrderController covers order placement, reads and fulfilment.
type OrderController struct {
	service *services.OrderService
	orders  *repositories.OrderRepository
}

func NewOrderController(service *services.OrderService, orders *repositories.OrderRepository) *OrderController {
	return &OrderController{service: service, orders: orders}
}

type orderItemJSON struct {
	Quantity int    `json:"quantity"`
	Size     string `json:"size"`
	Color    string `json:"color"`
	Product  string `json:"product"`
}

type orderInput struct {
	OrderItems      []orderItemJSON `json:"orderItems" validate:"required"`
	ShippingAddress string          `json:"shippingAddress" validate:"required"`
	City            string          `json:"city" validate:"required"`
	Zip             string          `json:"zip" validate:"required"`
	Phone           string          `json:"phone" validate:"required,digits=11" message:"Mobile must be a number and equal to 11 numbers"`
}

// AddOrder handles POST /api/order/add-order. The buyer comes from the
// session; the total is computed server-side from current product prices.
func (oc *OrderController) AddOrder(c *ctx.Context) {
	user, ok := middleware.UserFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	var in orderInput
	if !c.BindJSON(&in) {
		return
	}

	items := make([]services.OrderItemInput, 0, len(in.OrderItems))
	for i, line := range in.OrderItems {
		if line.Quantity < 1 {
			c.Error(http.StatusBadRequest,
				fmt.Sprintf("The quantity of order item %d must be at least 1.", i+1))
			return
		}
		productID, err := primitive.ObjectIDFromHex(line.Product)
		if err != nil {
			c.Error(http.StatusBadRequest,
				fmt.Sprintf("The product of order item %d must be a valid identifier.", i+1))
			return
		}
		items = append(items, services.OrderItemInput{
			Quantity: line.Quantity,
			Size:     line.Size,
			Color:    line.Color,
			Product:  productID,
		})
	}

	_, err := oc.service.PlaceOrder(c.Context(), user.ID, services.PlaceOrderInput{
		Items:           items,
		ShippingAddress: in.ShippingAddress,
		City:            in.City,
		Zip:             in.Zip,
		Phone:           in.Phone,
	})
	if err != nil {
		if errors.Is(err, services.ErrOrderIncomplete) {
			c.ServerError()
			return
		}
		logger.WithCtx(c.Context()).Error("add order", "error", err)
		c.ServerError()
		return
	}

	c.Created("Order placed successfully")
}

// ShowOrders handles GET /api/order/show-orders (admin), newest first.
func (oc *OrderController) ShowOrders(c *ctx.Context) {
	p := pagination.FromRequest(c.R)
	orders, total, err := oc.orders.List(c.Context(), p)
	if err != nil {
		logger.WithCtx(c.Context()).Error("show orders", "error", err)
		c.ServerError()
		return
	}
	c.Success(p.Wrap(orders, total))
}

// ShowOrder handles GET /api/order/show-order/{id}. Users may read only
// their own orders; admins may read any.
func (oc *OrderController) ShowOrder(c *ctx.Context) {
	user, ok := middleware.UserFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	id, ok := c.ObjectIDParam("id")
	if !ok {
		c.NotFound("Order not found")
		return
	}

	order, err := oc.orders.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.NotFound("Order not found")
			return
		}
		logger.WithCtx(c.Context()).Error("show order", "error", err)
		c.ServerError()
		return
	}
	if !user.IsAdmin && (order.User == nil || order.User.ID != user.ID) {
		c.Forbidden()
		return
	}

	c.Success(order)
}

type orderStatusInput struct {
	Status string `json:"status" validate:"required,in=pending,shipped,delivered"`
}

// UpdateOrderStatus handles PUT /api/order/update-order/{id} (admin).
// Returns the updated order.
func (oc *OrderController) UpdateOrderStatus(c *ctx.Context) {
	id, ok := c.ObjectIDParam("id")
	if !ok {
		c.NotFound("Order not found")
		return
	}

	var in orderStatusInput
	if !c.BindJSON(&in) {
		return
	}

	if err := oc.service.SetStatus(c.Context(), id, in.Status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.NotFound("Order not found")
			return
		}
		logger.WithCtx(c.Context()).Error("update order status", "error", err)
		c.ServerError()
		return
	}

	order, err := oc.orders.FindByID(c.Context(), id)
	if err != nil {
		logger.WithCtx(c.Context()).Error("update order status: reload", "error", err)
		c.ServerError()
		return
	}
	c.Success(order)
}

// DeleteOrder handles DELETE /api/order/delete-order/{id} (admin). Line
// items are removed with the order.
func (oc *OrderController) DeleteOrder(c *ctx.Context) {
	id, ok := c.ObjectIDParam("id")
	if !ok {
		c.JSON(http.StatusNotFound, map[string]any{"success": false, "message": "order not found!"})
		return
	}

	if err := oc.service.DeleteOrder(c.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, map[string]any{"success": false, "message": "order not found!"})
			return
		}
		logger.WithCtx(c.Context()).Error("delete order", "error", err)
		c.ServerError()
		return
	}

	c.JSON(http.StatusOK, map[string]any{"success": true, "message": "The order is deleted"})
}

// TotalSales handles GET /api/order/total-sales (admin).
func (oc *OrderController) TotalSales(c *ctx.Context) {
	total, err := oc.orders.TotalSales(c.Context())
	if err != nil {
		logger.WithCtx(c.Context()).Error("total sales", "error", err)
		c.ServerError()
		return
	}
	c.JSON(http.StatusOK, map[string]float64{"totalsales": total})
}

// CountOrders handles GET /api/order/count-order (admin).
func (oc *OrderController) CountOrders(c *ctx.Context) {
	count, err := oc.orders.Count(c.Context())
	if err != nil {
		logger.WithCtx(c.Context()).Error("count orders", "error", err)
		c.ServerError()
		return
	}
	c.JSON(http.StatusOK, map[string]int64{"count": count})
}

// UserOrders handles GET /api/order/user-orders/{userid} (admin).
func (oc *OrderController) UserOrders(c *ctx.Context) {
	userID, ok := c.ObjectIDParam("userid")
	if !ok {
		c.NotFound("User not found")
		return
	}

	p := pagination.FromRequest(c.R)
	orders, total, err := oc.orders.ListByUser(c.Context(), userID, p)
	if err != nil {
		logger.WithCtx(c.Context()).Error("user orders", "error", err)
		c.ServerError()
		return
	}
	c.Success(p.Wrap(orders, total))
}
