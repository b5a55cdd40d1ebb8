// Package models defines the documents stored in MongoDB.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered customer or administrator.
// The password hash never serializes to JSON.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Address   string             `bson:"address" json:"address"`
	Mobile    string             `bson:"mobile" json:"mobile"`
	Pic       string             `bson:"pic,omitempty" json:"pic,omitempty"`
	IsAdmin   bool               `bson:"isAdmin" json:"isAdmin"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserRef is the trimmed projection of a user embedded in order reads.
type UserRef struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	Name string             `bson:"name" json:"name"`
}

// Ref returns the trimmed projection of u.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name}
}
