// Package graph exposes a read-only GraphQL view of the catalog, as an
// alternative to the REST listing endpoints for storefront clients that
// want to shape their own queries.
package graph

import (
	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aamirkhan2478/elite-market-backend/app/repositories"
	"github.com/aamirkhan2478/elite-market-backend/pkg/pagination"
)

// categoryType mirrors models.Category.
var categoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Category",
	Fields: graphql.Fields{
		"id":    &graphql.Field{Type: graphql.ID},
		"name":  &graphql.Field{Type: graphql.String},
		"icon":  &graphql.Field{Type: graphql.String},
		"color": &graphql.Field{Type: graphql.String},
		"image": &graphql.Field{Type: graphql.String},
	},
})

// productType mirrors models.PopulatedProduct.
var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.ID},
		"name":         &graphql.Field{Type: graphql.String},
		"description":  &graphql.Field{Type: graphql.String},
		"image":        &graphql.Field{Type: graphql.String},
		"images":       &graphql.Field{Type: graphql.NewList(graphql.String)},
		"brand":        &graphql.Field{Type: graphql.String},
		"price":        &graphql.Field{Type: graphql.Float},
		"colors":       &graphql.Field{Type: graphql.NewList(graphql.String)},
		"sizes":        &graphql.Field{Type: graphql.NewList(graphql.String)},
		"category":     &graphql.Field{Type: categoryType},
		"countInStock": &graphql.Field{Type: graphql.Int},
		"isFeatured":   &graphql.Field{Type: graphql.Boolean},
	},
})

// NewSchema builds the catalog schema over the given repositories.
func NewSchema(products *repositories.ProductRepository, categories *repositories.CategoryRepository) (graphql.Schema, error) {
	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"search":   &graphql.ArgumentConfig{Type: graphql.String},
					"category": &graphql.ArgumentConfig{Type: graphql.ID},
					"page":     &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"limit":    &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter := repositories.ProductFilter{}
					if s, ok := p.Args["search"].(string); ok {
						filter.Search = s
					}
					if raw, ok := p.Args["category"].(string); ok && raw != "" {
						id, err := primitive.ObjectIDFromHex(raw)
						if err != nil {
							return nil, err
						}
						filter.Categories = append(filter.Categories, id)
					}
					params := pagination.Params{
						Page:  int64(p.Args["page"].(int)),
						Limit: int64(p.Args["limit"].(int)),
					}
					if params.Page < 1 {
						params.Page = pagination.DefaultPage
					}
					if params.Limit < 1 {
						params.Limit = pagination.DefaultLimit
					}
					items, _, err := products.List(p.Context, filter, params)
					return items, err
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := primitive.ObjectIDFromHex(p.Args["id"].(string))
					if err != nil {
						return nil, nil // malformed id reads as absent
					}
					product, err := products.FindByID(p.Context, id)
					if err == repositories.ErrNotFound {
						return nil, nil
					}
					return product, err
				},
			},
			"categories": &graphql.Field{
				Type: graphql.NewList(categoryType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					items, _, err := categories.List(p.Context, pagination.Params{
						Page:  pagination.DefaultPage,
						Limit: 100,
					})
					return items, err
				},
			},
			"featuredProducts": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"count": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					count := int64(p.Args["count"].(int))
					if count < 1 {
						count = 10
					}
					return products.Featured(p.Context, count)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: rootQuery})
}
