package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	SavedDbName  = "wanderly"
	SavedColName = "saved_packages"
)

type SavedItem struct {
	PackageID string    `bson:"package_id" json:"package_id"`
	AddedAt   time.Time `bson:"added_at" json:"added_at"`
}

// SavedList is a user's wishlist of packages, one document per user.
type SavedList struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID    uuid.UUID            `bson:"user_id" json:"user_id" validate:"required"`
	Items     map[string]SavedItem `bson:"items" json:"items"`
	CreatedAt time.Time            `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt time.Time            `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

type SavedRepo interface {
	SavePackage(ctx context.Context, userId uuid.UUID, packageId string) (*SavedList, error)
	UnsavePackage(ctx context.Context, userId uuid.UUID, packageId string) error
	GetSavedByUserID(ctx context.Context, userId uuid.UUID) (*SavedList, error)
}

func (mdb *MongodbRepo) SavePackage(ctx context.Context, userId uuid.UUID, packageId string) (*SavedList, error) {
	col, err := mdb.GetCollection(ctx, SavedDbName, SavedColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	now := time.Now()
	filter := bson.M{"user_id": userId}

	update := bson.M{
		"$set": bson.M{
			"updated_at": now,
			fmt.Sprintf("items.%s", packageId): SavedItem{
				PackageID: packageId,
				AddedAt:   now,
			},
		},
		"$setOnInsert": bson.M{
			"user_id":    userId,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result SavedList
	err = col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result)
	if err != nil {
		return nil, fmt.Errorf("error upserting saved package: %v", err)
	}

	return &result, nil
}

func (mdb *MongodbRepo) UnsavePackage(ctx context.Context, userId uuid.UUID, packageId string) error {
	col, err := mdb.GetCollection(ctx, SavedDbName, SavedColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{"user_id": userId}
	update := bson.M{
		"$unset": bson.M{
			fmt.Sprintf("items.%s", packageId): "",
		},
		"$set": bson.M{
			"updated_at": time.Now(),
		},
	}

	_, err = col.UpdateOne(ctx, filter, update)
	return err
}

func (mdb *MongodbRepo) GetSavedByUserID(ctx context.Context, userId uuid.UUID) (*SavedList, error) {
	col, err := mdb.GetCollection(ctx, SavedDbName, SavedColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var saved SavedList
	err = col.FindOne(ctx, bson.M{"user_id": userId}).Decode(&saved)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// A user with nothing saved yet gets an empty list, not an error
		return &SavedList{UserID: userId, Items: map[string]SavedItem{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error loading saved packages: %v", err)
	}

	return &saved, nil
}
