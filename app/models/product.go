package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog item. Category holds the referenced category id;
// list and detail reads resolve it into PopulatedProduct.
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	Images       []string           `bson:"images,omitempty" json:"images,omitempty"`
	Brand        string             `bson:"brand,omitempty" json:"brand,omitempty"`
	Price        float64            `bson:"price" json:"price"`
	Colors       []string           `bson:"colors,omitempty" json:"colors,omitempty"`
	Sizes        []string           `bson:"sizes,omitempty" json:"sizes,omitempty"`
	Category     primitive.ObjectID `bson:"category" json:"category"`
	CountInStock int                `bson:"countInStock" json:"countInStock"`
	IsFeatured   bool               `bson:"isFeatured" json:"isFeatured"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PopulatedProduct is a product with its category document resolved.
type PopulatedProduct struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	Images       []string           `bson:"images,omitempty" json:"images,omitempty"`
	Brand        string             `bson:"brand,omitempty" json:"brand,omitempty"`
	Price        float64            `bson:"price" json:"price"`
	Colors       []string           `bson:"colors,omitempty" json:"colors,omitempty"`
	Sizes        []string           `bson:"sizes,omitempty" json:"sizes,omitempty"`
	Category     *Category          `bson:"category,omitempty" json:"category,omitempty"`
	CountInStock int                `bson:"countInStock" json:"countInStock"`
	IsFeatured   bool               `bson:"isFeatured" json:"isFeatured"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
