package reviews

import (
	"context"

	"carecamps/models"
	"carecamps/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	Reviews *mongo.Collection
}

func NewStore(reviews *mongo.Collection) *Store {
	return &Store{Reviews: reviews}
}

// Upsert replaces-or-inserts the review keyed by findingKey.
func (s *Store) Upsert(ctx context.Context, review models.Review) (bool, error) {
	review.ID = primitive.NilObjectID
	res, err := s.Reviews.UpdateOne(ctx,
		bson.M{"findingKey": review.FindingKey},
		bson.M{"$set": review},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

func (s *Store) List(ctx context.Context) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	return utils.FindAndDecode[models.Review](ctx, s.Reviews, bson.M{}, opts)
}
