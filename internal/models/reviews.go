package models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ReviewDbName  = "wanderly"
	ReviewColName = "guide_reviews"
)

// GuideReview rates a guide 1-5 after a trip. The guide's displayed ranking
// is the average of these.
type GuideReview struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    uuid.UUID          `bson:"user_id" json:"user_id"`
	GuideID   uuid.UUID          `bson:"guide_id" json:"guide_id"`
	Rating    int                `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type ReviewsRepo interface {
	CreateReview(ctx context.Context, review *GuideReview) (*GuideReview, error)
	GetReviewsByGuide(ctx context.Context, guideId uuid.UUID) ([]*GuideReview, error)
	GetGuideRanking(ctx context.Context, guideId uuid.UUID) (float64, error)
}

func (r *GuideReview) BeforeCreate() error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	return nil
}

func (r GuideReview) ValidateReview() error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	if r.UserID == uuid.Nil {
		return fmt.Errorf("invalid user ID")
	}
	if r.GuideID == uuid.Nil {
		return fmt.Errorf("invalid guide ID")
	}
	return nil
}

func (mdb *MongodbRepo) CreateReview(ctx context.Context, review *GuideReview) (*GuideReview, error) {
	if err := review.ValidateReview(); err != nil {
		return nil, err
	}
	if err := review.BeforeCreate(); err != nil {
		return nil, err
	}
	review.CreatedAt = time.Now()

	col, err := mdb.GetCollection(ctx, ReviewDbName, ReviewColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if _, err := col.InsertOne(ctx, review); err != nil {
		return nil, fmt.Errorf("error inserting review: %v", err)
	}
	return review, nil
}

func (mdb *MongodbRepo) GetReviewsByGuide(ctx context.Context, guideId uuid.UUID) ([]*GuideReview, error) {
	col, err := mdb.GetCollection(ctx, ReviewDbName, ReviewColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	cursor, err := col.Find(ctx, bson.M{"guide_id": guideId})
	if err != nil {
		return nil, fmt.Errorf("error finding reviews: %v", err)
	}
	defer cursor.Close(ctx)

	var reviews []*GuideReview
	for cursor.Next(ctx) {
		var rev GuideReview
		if err := cursor.Decode(&rev); err != nil {
			return nil, fmt.Errorf("error decoding review: %v", err)
		}
		reviews = append(reviews, &rev)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return reviews, nil
}

// GetGuideRanking averages the guide's ratings. No reviews yields 0.
func (mdb *MongodbRepo) GetGuideRanking(ctx context.Context, guideId uuid.UUID) (float64, error) {
	reviews, err := mdb.GetReviewsByGuide(ctx, guideId)
	if err != nil {
		return 0, err
	}
	if len(reviews) == 0 {
		return 0, nil
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews)), nil
}
