package controllers

import (
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/aamirkhan2478/elite-market-backend/app/models"
	"github.com/aamirkhan2478/elite-market-backend/app/repositories"
	"github.com/aamirkhan2478/elite-market-backend/pkg/cache"
	"github.com/aamirkhan2478/elite-market-backend/pkg/ctx"
	"github.com/aamirkhan2478/elite-market-backend/pkg/logger"
	"github.com/aamirkhan2478/elite-market-backend/pkg/pagination"
)

const categoriesCacheKey = "categories:list"

// CategoryController covers catalog category CRUD.
type CategoryController struct {
	categories *repositories.CategoryRepository
}

func NewCategoryController(categories *repositories.CategoryRepository) *CategoryController {
	return &CategoryController{categories: categories}
}

type categoryInput struct {
	Name  string `json:"name" validate:"required"`
	Icon  string `json:"icon" validate:"nullable"`
	Color string `json:"color" validate:"nullable"`
	Image string `json:"image" validate:"nullable,url"`
}

// AddCategory handles POST /api/category/add-category (admin).
func (cc *CategoryController) AddCategory(c *ctx.Context) {
	var in categoryInput
	if !c.BindJSON(&in) {
		return
	}

	category := &models.Category{
		Name:  in.Name,
		Icon:  in.Icon,
		Color: in.Color,
		Image: in.Image,
	}
	if err := cc.categories.Create(c.Context(), category); err != nil {
		logger.WithCtx(c.Context()).Error("add category", "error", err)
		c.ServerError()
		return
	}

	cache.Forget(categoriesCacheKey) //nolint:errcheck
	c.Created("Category added successfully")
}

// ShowCategories handles GET /api/category/show-categories (public).
// The first page is served from Redis when warm; writes invalidate it.
func (cc *CategoryController) ShowCategories(c *ctx.Context) {
	p := pagination.FromRequest(c.R)

	defaultPage := p.Page == pagination.DefaultPage && p.Limit == pagination.DefaultLimit
	if defaultPage {
		var cached pagination.Result
		if cache.Get(categoriesCacheKey, &cached) {
			c.Success(cached)
			return
		}
	}

	categories, total, err := cc.categories.List(c.Context(), p)
	if err != nil {
		logger.WithCtx(c.Context()).Error("show categories", "error", err)
		c.ServerError()
		return
	}

	result := p.Wrap(categories, total)
	if defaultPage {
		cache.Set(categoriesCacheKey, result, 5*time.Minute) //nolint:errcheck
	}
	c.Success(result)
}

// ShowCategory handles GET /api/category/show-category/{id} (public).
func (cc *CategoryController) ShowCategory(c *ctx.Context) {
	id, ok := c.ObjectIDParam("id")
	if !ok {
		c.NotFound("Category not found")
		return
	}

	category, err := cc.categories.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.NotFound("Category not found")
			return
		}
		logger.WithCtx(c.Context()).Error("show category", "error", err)
		c.ServerError()
		return
	}
	c.Success(category)
}

// UpdateCategory handles PUT /api/category/update-category/{id} (admin).
func (cc *CategoryController) UpdateCategory(c *ctx.Context) {
	id, ok := c.ObjectIDParam("id")
	if !ok {
		c.NotFound("Category not found")
		return
	}

	var in categoryInput
	if !c.BindJSON(&in) {
		return
	}

	fields := bson.M{
		"name":  in.Name,
		"icon":  in.Icon,
		"color": in.Color,
	}
	if in.Image != "" {
		fields["image"] = in.Image
	}

	if err := cc.categories.Update(c.Context(), id, fields); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.NotFound("Category not found")
			return
		}
		logger.WithCtx(c.Context()).Error("update category", "error", err)
		c.ServerError()
		return
	}

	cache.Forget(categoriesCacheKey) //nolint:errcheck
	c.Message("Category updated successfully")
}

// DeleteCategory handles DELETE /api/category/delete-category/{id} (admin).
func (cc *CategoryController) DeleteCategory(c *ctx.Context) {
	id, ok := c.ObjectIDParam("id")
	if !ok {
		c.NotFound("Category not found")
		return
	}

	if err := cc.categories.Delete(c.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.NotFound("Category not found")
			return
		}
		logger.WithCtx(c.Context()).Error("delete category", "error", err)
		c.ServerError()
		return
	}

	cache.Forget(categoriesCacheKey) //nolint:errcheck
	c.JSON(http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}
