// Package routes wires the HTTP route table to the controllers.
package routes

import (
	"github.com/aamirkhan2478/elite-market-backend/app/controllers"
	"github.com/aamirkhan2478/elite-market-backend/app/middleware"
	"github.com/aamirkhan2478/elite-market-backend/app/repositories"
	"github.com/aamirkhan2478/elite-market-backend/pkg/ctx"
	"github.com/aamirkhan2478/elite-market-backend/pkg/router"
)

// Controllers bundles everything Register needs.
type Controllers struct {
	Users      *controllers.UserController
	Categories *controllers.CategoryController
	Products   *controllers.ProductController
	Carts      *controllers.CartController
	Orders     *controllers.OrderController
	GraphQL    *controllers.GraphQLController
}

// Register mounts the /api route table. Catalog reads are public;
// everything touching a session requires auth, and store management
// requires an admin account.
func Register(r *router.Router, c Controllers, users *repositories.UserRepository) {
	authed := middleware.Auth(users)

	api := r.Group("/api")

	user := api.Group("/user")
	user.Post("/signup", "user.signup", ctx.Wrap(c.Users.Signup))
	user.Post("/login", "user.login", ctx.Wrap(c.Users.Login))
	user.Get("/get-user", "user.show", ctx.Wrap(c.Users.GetUser), authed)
	user.Put("/update-user/{id}", "user.update", ctx.Wrap(c.Users.UpdateUser), authed)
	user.Put("/change-password/{id}", "user.change-password", ctx.Wrap(c.Users.ChangePassword), authed)
	user.Delete("/delete-account/{id}", "user.delete", ctx.Wrap(c.Users.DeleteAccount), authed)
	user.Post("/profile-picture", "user.profile-picture", ctx.Wrap(c.Users.ProfilePicture), authed)
	user.Get("/show-users", "user.index", ctx.Wrap(c.Users.ShowUsers), authed, middleware.Admin)
	user.Get("/count-user", "user.count", ctx.Wrap(c.Users.CountUsers), authed, middleware.Admin)

	category := api.Group("/category")
	category.Get("/show-categories", "category.index", ctx.Wrap(c.Categories.ShowCategories))
	category.Get("/show-category/{id}", "category.show", ctx.Wrap(c.Categories.ShowCategory))
	category.Post("/add-category", "category.store", ctx.Wrap(c.Categories.AddCategory), authed, middleware.Admin)
	category.Put("/update-category/{id}", "category.update", ctx.Wrap(c.Categories.UpdateCategory), authed, middleware.Admin)
	category.Delete("/delete-category/{id}", "category.destroy", ctx.Wrap(c.Categories.DeleteCategory), authed, middleware.Admin)

	product := api.Group("/product")
	product.Get("/show-products", "product.index", ctx.Wrap(c.Products.ShowProducts))
	product.Get("/show-product/{id}", "product.show", ctx.Wrap(c.Products.ShowProduct))
	product.Get("/featured-products/{count}", "product.featured", ctx.Wrap(c.Products.FeaturedProducts))
	product.Post("/add-product", "product.store", ctx.Wrap(c.Products.AddProduct), authed, middleware.Admin)
	product.Put("/update-product/{id}", "product.update", ctx.Wrap(c.Products.UpdateProduct), authed, middleware.Admin)
	product.Delete("/delete-product/{id}", "product.destroy", ctx.Wrap(c.Products.DeleteProduct), authed, middleware.Admin)
	product.Get("/count-product", "product.count", ctx.Wrap(c.Products.CountProducts), authed, middleware.Admin)
	product.Put("/image-gallery/{id}", "product.gallery", ctx.Wrap(c.Products.ImageGallery), authed, middleware.Admin)

	cart := api.Group("/cart", authed)
	cart.Post("/add-cart", "cart.store", ctx.Wrap(c.Carts.AddCart))
	cart.Delete("/delete-cart/{id}", "cart.destroy", ctx.Wrap(c.Carts.DeleteCart))
	cart.Get("/show-cart-data", "cart.index", ctx.Wrap(c.Carts.ShowCartData))

	order := api.Group("/order", authed)
	order.Post("/add-order", "order.store", ctx.Wrap(c.Orders.AddOrder))
	order.Get("/show-order/{id}", "order.show", ctx.Wrap(c.Orders.ShowOrder))
	order.Get("/show-orders", "order.index", ctx.Wrap(c.Orders.ShowOrders), middleware.Admin)
	order.Put("/update-order/{id}", "order.update", ctx.Wrap(c.Orders.UpdateOrderStatus), middleware.Admin)
	order.Delete("/delete-order/{id}", "order.destroy", ctx.Wrap(c.Orders.DeleteOrder), middleware.Admin)
	order.Get("/total-sales", "order.total-sales", ctx.Wrap(c.Orders.TotalSales), middleware.Admin)
	order.Get("/count-order", "order.count", ctx.Wrap(c.Orders.CountOrders), middleware.Admin)
	order.Get("/user-orders/{userid}", "order.user-orders", ctx.Wrap(c.Orders.UserOrders), middleware.Admin)

	api.Post("/graphql", "graphql.query", ctx.Wrap(c.GraphQL.Query))
}
