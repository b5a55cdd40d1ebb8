package controllers

import (
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/aamirkhan2478/elite-market-backend/app/graph"
	"github.com/aamirkhan2478/elite-market-backend/app/repositories"
	appctx "github.com/aamirkhan2478/elite-market-backend/pkg/ctx"
)

// GraphQLController serves the read-only catalog schema.
type GraphQLController struct {
	schema graphql.Schema
}

func NewGraphQLController(products *repositories.ProductRepository, categories *repositories.CategoryRepository) (*GraphQLController, error) {
	schema, err := graph.NewSchema(products, categories)
	if err != nil {
		return nil, err
	}
	return &GraphQLController{schema: schema}, nil
}

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Query executes a GraphQL query. Mutations are not part of the schema,
// so the endpoint is safe to expose without authentication.
func (gc *GraphQLController) Query(c *appctx.Context) {
	var req graphqlRequest
	if ok := c.BindJSON(&req); !ok {
		return
	}
	if req.Query == "" {
		c.Error(http.StatusBadRequest, "Query is required")
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         gc.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        c.Context(),
	})
	c.JSON(http.StatusOK, result)
}
