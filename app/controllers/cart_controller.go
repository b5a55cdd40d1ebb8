package controllers

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aamirkhan2478/elite-market-backend/app/middleware"
	"github.com/aamirkhan2478/elite-market-backend/app/models"
	"github.com/aamirkhan2478/elite-market-backend/app/repositories"
	"github.com/aamirkhan2478/elite-market-backend/pkg/ctx"
	"github.com/aamirkhan2478/elite-market-backend/pkg/logger"
	"github.com/aamirkhan2478/elite-market-backend/pkg/pagination"
)

// CartController covers the authenticated user's cart.
type CartController struct {
	carts    *repositories.CartRepository
	products *repositories.ProductRepository
}

func NewCartController(carts *repositories.CartRepository, products *repositories.ProductRepository) *CartController {
	return &CartController{carts: carts, products: products}
}

type cartInput struct {
	Quantity   int     `json:"quantity" validate:"required,gt=0"`
	TotalPrice float64 `json:"totalPrice" validate:"required,numeric"`
	Size       string  `json:"size" validate:"nullable"`
	Color      string  `json:"color" validate:"nullable"`
	Product    string  `json:"product" validate:"required,objectid"`
}

// AddCart handles POST /api/cart/add-cart. The owner comes from the
// session, never from the body.
func (cc *CartController) AddCart(c *ctx.Context) {
	user, ok := middleware.UserFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	var in cartInput
	if !c.BindJSON(&in) {
		return
	}

	productID, _ := primitive.ObjectIDFromHex(in.Product)
	if _, err := cc.products.FindRaw(c.Context(), productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.Error(http.StatusBadRequest, "Product does not exist")
			return
		}
		logger.WithCtx(c.Context()).Error("add cart: product check", "error", err)
		c.ServerError()
		return
	}

	cart := &models.Cart{
		Quantity:   in.Quantity,
		TotalPrice: in.TotalPrice,
		Size:       in.Size,
		Color:      in.Color,
		Product:    productID,
		User:       user.ID,
	}
	if err := cc.carts.Create(c.Context(), cart); err != nil {
		logger.WithCtx(c.Context()).Error("add cart", "error", err)
		c.ServerError()
		return
	}

	c.Created("Your product has been added to your cart")
}

// DeleteCart handles DELETE /api/cart/delete-cart/{id}. Users can remove
// only their own entries; admins can remove any.
func (cc *CartController) DeleteCart(c *ctx.Context) {
	user, ok := middleware.UserFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	id, ok := c.ObjectIDParam("id")
	if !ok {
		c.NotFound("Cart Data not found")
		return
	}

	cart, err := cc.carts.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.NotFound("Cart Data not found")
			return
		}
		logger.WithCtx(c.Context()).Error("delete cart: load", "error", err)
		c.ServerError()
		return
	}
	if cart.User != user.ID && !user.IsAdmin {
		c.Forbidden()
		return
	}

	if err := cc.carts.Delete(c.Context(), id); err != nil {
		logger.WithCtx(c.Context()).Error("delete cart", "error", err)
		c.ServerError()
		return
	}

	c.Message("Cart Data deleted successfully")
}

// ShowCartData handles GET /api/cart/show-cart-data — one page of the
// caller's own cart with products resolved and the page's running total.
func (cc *CartController) ShowCartData(c *ctx.Context) {
	user, ok := middleware.UserFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	p := pagination.FromRequest(c.R)
	cart, total, err := cc.carts.ListByUser(c.Context(), user.ID, p)
	if err != nil {
		logger.WithCtx(c.Context()).Error("show cart", "error", err)
		c.ServerError()
		return
	}

	c.JSON(http.StatusOK, cartPayload(cart, p.Wrap(cart, total)))
}

// cartPayload shapes the cart page: entries, the page's running total,
// and next/previous descriptors only when those pages exist.
func cartPayload(cart []models.PopulatedCart, page pagination.Result) map[string]any {
	var totalAmount float64
	for _, item := range cart {
		if item.Product != nil {
			totalAmount += item.Product.Price * float64(item.Quantity)
		}
	}

	payload := map[string]any{
		"cart":        cart,
		"totalAmount": totalAmount,
	}
	if page.Next != nil {
		payload["next"] = page.Next
	}
	if page.Previous != nil {
		payload["previous"] = page.Previous
	}
	return payload
}
