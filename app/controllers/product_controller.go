package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aamirkhan2478/elite-market-backend/app/models"
	"github.com/aamirkhan2478/elite-market-backend/app/repositories"
	"github.com/aamirkhan2478/elite-market-backend/pkg/cache"
	"github.com/aamirkhan2478/elite-market-backend/pkg/ctx"
	"github.com/aamirkhan2478/elite-market-backend/pkg/logger"
	"github.com/aamirkhan2478/elite-market-backend/pkg/pagination"
	"github.com/aamirkhan2478/elite-market-backend/pkg/storage"
)

// ProductController covers catalog product CRUD and media.
type ProductController struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
}

func NewProductController(products *repositories.ProductRepository, categories *repositories.CategoryRepository) *ProductController {
	return &ProductController{products: products, categories: categories}
}

type productInput struct {
	Name         string   `json:"name" validate:"required"`
	Price        float64  `json:"price" validate:"required,numeric"`
	Description  string   `json:"description" validate:"required"`
	Image        string   `json:"image" validate:"nullable,url"`
	Images       []string `json:"images" validate:"nullable"`
	Category     string   `json:"category" validate:"required,objectid"`
	Brand        string   `json:"brand" validate:"nullable"`
	Colors       []string `json:"colors" validate:"nullable"`
	Sizes        []string `json:"sizes" validate:"nullable"`
	CountInStock *int     `json:"countInStock" validate:"required"`
	IsFeatured   *bool    `json:"isFeatured" validate:"required"`
}

// featuredCachePrefix namespaces the per-count featured listings so that
// every product write can forget them all in one sweep.
const featuredCachePrefix = "products:featured:"

func featuredCacheKey(count int64) string {
	return fmt.Sprintf("%s%d", featuredCachePrefix, count)
}

// AddProduct handles POST /api/product/add-product (admin).
func (pc *ProductController) AddProduct(c *ctx.Context) {
	var in productInput
	if !c.BindJSON(&in) {
		return
	}

	if *in.CountInStock < 0 {
		c.Error(http.StatusBadRequest, "The countInStock must be at least 0.")
		return
	}

	categoryID, _ := primitive.ObjectIDFromHex(in.Category)
	exists, err := pc.categories.Exists(c.Context(), categoryID)
	if err != nil {
		logger.WithCtx(c.Context()).Error("add product: category check", "error", err)
		c.ServerError()
		return
	}
	if !exists {
		c.Error(http.StatusBadRequest, "Category does not exist")
		return
	}

	product := &models.Product{
		Name:         in.Name,
		Price:        in.Price,
		Description:  in.Description,
		Image:        in.Image,
		Images:       in.Images,
		Brand:        in.Brand,
		Colors:       in.Colors,
		Sizes:        in.Sizes,
		Category:     categoryID,
		CountInStock: *in.CountInStock,
		IsFeatured:   in.IsFeatured != nil && *in.IsFeatured,
	}
	if err := pc.products.Create(c.Context(), product); err != nil {
		logger.WithCtx(c.Context()).Error("add product", "error", err)
		c.ServerError()
		return
	}

	cache.ForgetPrefix(featuredCachePrefix) //nolint:errcheck
	c.Created("Product added successfully")
}

// ShowProducts handles GET /api/product/show-products (public).
// ?search=name filters by name; ?categories=id,id filters by category.
func (pc *ProductController) ShowProducts(c *ctx.Context) {
	p := pagination.FromRequest(c.R)

	filter := repositories.ProductFilter{Search: c.Query("search")}
	if raw := c.DefaultQuery("categories", c.Query("category")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := primitive.ObjectIDFromHex(strings.TrimSpace(part))
			if err != nil {
				c.Error(http.StatusBadRequest, "Invalid category identifier")
				return
			}
			filter.Categories = append(filter.Categories, id)
		}
	}

	products, total, err := pc.products.List(c.Context(), filter, p)
	if err != nil {
		logger.WithCtx(c.Context()).Error("show products", "error", err)
		c.ServerError()
		return
	}
	c.Success(p.Wrap(products, total))
}

// ShowProduct handles GET /api/product/show-product/{id} (public).
func (pc *ProductController) ShowProduct(c *ctx.Context) {
	id, ok := c.ObjectIDParam("id")
	if !ok {
		c.NotFound("Product not found")
		return
	}

	product, err := pc.products.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.NotFound("Product not found")
			return
		}
		logger.WithCtx(c.Context()).Error("show product", "error", err)
		c.ServerError()
		return
	}
	c.Success(product)
}

// UpdateProduct handles PUT /api/product/update-product/{id} (admin).
func (pc *ProductController) UpdateProduct(c *ctx.Context) {
	id, ok := c.ObjectIDParam("id")
	if !ok {
		c.NotFound("Product not found")
		return
	}

	var in productInput
	if !c.BindJSON(&in) {
		return
	}
	if *in.CountInStock < 0 {
		c.Error(http.StatusBadRequest, "The countInStock must be at least 0.")
		return
	}

	categoryID, _ := primitive.ObjectIDFromHex(in.Category)
	exists, err := pc.categories.Exists(c.Context(), categoryID)
	if err != nil {
		logger.WithCtx(c.Context()).Error("update product: category check", "error", err)
		c.ServerError()
		return
	}
	if !exists {
		c.Error(http.StatusBadRequest, "Category does not exist")
		return
	}

	fields := bson.M{
		"name":         in.Name,
		"price":        in.Price,
		"description":  in.Description,
		"image":        in.Image,
		"images":       in.Images,
		"brand":        in.Brand,
		"colors":       in.Colors,
		"sizes":        in.Sizes,
		"category":     categoryID,
		"countInStock": *in.CountInStock,
		"isFeatured":   in.IsFeatured != nil && *in.IsFeatured,
	}

	if err := pc.products.Update(c.Context(), id, fields); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.Error(http.StatusBadRequest, "Product does not exist")
			return
		}
		logger.WithCtx(c.Context()).Error("update product", "error", err)
		c.ServerError()
		return
	}

	cache.ForgetPrefix(featuredCachePrefix) //nolint:errcheck
	c.Message("Product updated successfully")
}

// DeleteProduct handles DELETE /api/product/delete-product/{id} (admin).
func (pc *ProductController) DeleteProduct(c *ctx.Context) {
	id, ok := c.ObjectIDParam("id")
	if !ok {
		c.NotFound("Product not found")
		return
	}

	if err := pc.products.Delete(c.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.NotFound("Product not found")
			return
		}
		logger.WithCtx(c.Context()).Error("delete product", "error", err)
		c.ServerError()
		return
	}

	cache.ForgetPrefix(featuredCachePrefix) //nolint:errcheck
	c.Message("Product deleted successfully")
}

// CountProducts handles GET /api/product/count-product (admin).
func (pc *ProductController) CountProducts(c *ctx.Context) {
	count, err := pc.products.Count(c.Context())
	if err != nil {
		logger.WithCtx(c.Context()).Error("count products", "error", err)
		c.ServerError()
		return
	}
	c.JSON(http.StatusOK, map[string]int64{"count": count})
}

// FeaturedProducts handles GET /api/product/featured-products/{count}
// (public). The window is small and read-heavy, so it sits in Redis.
func (pc *ProductController) FeaturedProducts(c *ctx.Context) {
	count, err := strconv.ParseInt(c.Param("count"), 10, 64)
	if err != nil || count < 1 {
		count = 10
	}

	key := featuredCacheKey(count)
	var cached []models.PopulatedProduct
	if cache.Get(key, &cached) {
		c.Success(cached)
		return
	}

	products, err := pc.products.Featured(c.Context(), count)
	if err != nil {
		logger.WithCtx(c.Context()).Error("featured products", "error", err)
		c.ServerError()
		return
	}

	cache.Set(key, products, 5*time.Minute) //nolint:errcheck
	c.Success(products)
}

// ImageGallery handles PUT /api/product/image-gallery/{id} (admin,
// multipart field "images"). Uploaded files land on the configured disk
// and their URLs replace the product's gallery.
func (pc *ProductController) ImageGallery(c *ctx.Context) {
	id, ok := c.ObjectIDParam("id")
	if !ok {
		c.NotFound("Product not found")
		return
	}

	if _, err := pc.products.FindRaw(c.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.NotFound("Product not found")
			return
		}
		logger.WithCtx(c.Context()).Error("image gallery: load", "error", err)
		c.ServerError()
		return
	}

	if err := c.R.ParseMultipartForm(32 << 20); err != nil {
		c.Error(http.StatusBadRequest, "File not found")
		return
	}
	files := c.R.MultipartForm.File["images"]
	if len(files) == 0 {
		c.Error(http.StatusBadRequest, "File not found")
		return
	}

	var urls []string
	for i, header := range files {
		f, err := header.Open()
		if err != nil {
			c.Error(http.StatusBadRequest, "File not found")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			logger.WithCtx(c.Context()).Error("image gallery: read", "error", err)
			c.ServerError()
			return
		}

		path := fmt.Sprintf("uploads/products/%s-%d-%d%s",
			id.Hex(), time.Now().UnixNano(), i, filepath.Ext(header.Filename))
		if err := storage.Put(path, data); err != nil {
			logger.WithCtx(c.Context()).Error("image gallery: store", "error", err)
			c.ServerError()
			return
		}
		urls = append(urls, storage.URL(path))
	}

	if err := pc.products.Update(c.Context(), id, bson.M{"images": urls}); err != nil {
		logger.WithCtx(c.Context()).Error("image gallery: update", "error", err)
		c.ServerError()
		return
	}

	cache.ForgetPrefix(featuredCachePrefix) //nolint:errcheck
	c.JSON(http.StatusOK, map[string]any{"message": "Gallery updated successfully", "images": urls})
}
