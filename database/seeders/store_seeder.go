package seeders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aamirkhan2478/elite-market-backend/config"
	"github.com/aamirkhan2478/elite-market-backend/pkg/auth"
)

func init() {
	Register("admin-user", SeedAdminUser)
	Register("categories", SeedCategories)
}

// SeedAdminUser creates the initial administrator account. Idempotent:
// an existing account with the same email is left untouched so a repeat
// run never resets a changed password.
func SeedAdminUser(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	email := config.Get("ADMIN_EMAIL", "admin@elitemarket.app")

	count, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(config.Get("ADMIN_PASSWORD", "ChangeMe@123"))
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = db.Collection("users").InsertOne(ctx, bson.M{
		"name":      "Store Admin",
		"email":     email,
		"password":  hash,
		"address":   "",
		"mobile":    "",
		"isAdmin":   true,
		"createdAt": now,
		"updatedAt": now,
	})
	return err
}

// SeedCategories upserts a starter set of catalog categories by name.
func SeedCategories(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	starter := []struct {
		name, icon, color string
	}{
		{"Electronics", "devices", "#1e88e5"},
		{"Clothing", "checkroom", "#43a047"},
		{"Footwear", "steps", "#fb8c00"},
		{"Home & Kitchen", "kitchen", "#8e24aa"},
		{"Beauty", "spa", "#d81b60"},
	}

	coll := db.Collection("categories")
	now := time.Now()
	for _, c := range starter {
		_, err := coll.UpdateOne(ctx,
			bson.M{"name": c.name},
			bson.M{
				"$set":         bson.M{"icon": c.icon, "color": c.color, "updatedAt": now},
				"$setOnInsert": bson.M{"name": c.name, "createdAt": now},
			},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
