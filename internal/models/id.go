package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewID returns a new record identifier. Both stores use the hex form of a
// Mongo ObjectID so ids look the same whichever backend is configured.
func NewID() string {
	return primitive.NewObjectID().Hex()
}
