package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	VisitorsDbName  = "wanderly"
	VisitorsColName = "package_visitors"
)

// Visitor marks that a user opened a package's detail page. At most one
// record exists per (package, user) pair; the unique index makes the insert
// idempotent.
type Visitor struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PackageID string             `bson:"package_id" json:"package_id" validate:"required"`
	UserID    string             `bson:"user_id" json:"user_id" validate:"required"`
	ViewedAt  time.Time          `bson:"viewed_at" json:"viewed_at"`
}

type VisitorStats struct {
	PackageID     string `json:"package_id"`
	TotalVisitors int64  `json:"total_visitors"`
}

type VisitorsRepo interface {
	RecordVisit(ctx context.Context, packageId, userId string) error
	GetVisitorStats(ctx context.Context, packageId string) (*VisitorStats, error)
	EnsureVisitorIndexes(ctx context.Context) error
}

// EnsureVisitorIndexes creates the unique (package_id, user_id) index that
// backs the idempotent insert.
func (mdb *MongodbRepo) EnsureVisitorIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(ctx, VisitorsDbName, VisitorsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	_, err = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "package_id", Value: 1},
			{Key: "user_id", Value: 1},
		},
		Options: options.Index().
			SetUnique(true).
			SetName("package_user_unique"),
	})
	if err != nil {
		return fmt.Errorf("error creating visitor indexes: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) RecordVisit(ctx context.Context, packageId, userId string) error {
	col, err := mdb.GetCollection(ctx, VisitorsDbName, VisitorsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{"package_id": packageId, "user_id": userId}
	update := bson.M{
		"$setOnInsert": bson.M{
			"package_id": packageId,
			"user_id":    userId,
			"viewed_at":  time.Now(),
		},
	}

	_, err = col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("error recording visit: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) GetVisitorStats(ctx context.Context, packageId string) (*VisitorStats, error) {
	col, err := mdb.GetCollection(ctx, VisitorsDbName, VisitorsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	total, err := col.CountDocuments(ctx, bson.M{"package_id": packageId})
	if err != nil {
		return nil, fmt.Errorf("error counting visitors: %v", err)
	}

	return &VisitorStats{PackageID: packageId, TotalVisitors: total}, nil
}
