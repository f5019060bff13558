package stats

import (
	"context"

	"carecamps/models"
	"carecamps/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GlobalStats is the landing-page summary payload.
type GlobalStats struct {
	TotalCamps        int64         `json:"totalCamps"`
	TotalParticipants int64         `json:"totalParticipants"`
	ActiveCamps       []models.Camp `json:"activeCamps"`
}

// UserStats is the per-user dashboard payload: the user's registrations
// and their payments that an admin has confirmed.
type UserStats struct {
	Registrations []models.Registration `json:"registrations"`
	Payments      []models.Payment      `json:"payments"`
}

type Store struct {
	Camps         *mongo.Collection
	Registrations *mongo.Collection
	Payments      *mongo.Collection
}

func NewStore(camps, registrations, payments *mongo.Collection) *Store {
	return &Store{Camps: camps, Registrations: registrations, Payments: payments}
}

// Global computes the landing-page stats: a fast approximate camp
// count, the participant sum reduced server-side, and the camps that
// have at least one participant.
func (s *Store) Global(ctx context.Context) (*GlobalStats, error) {
	total, err := s.Camps.EstimatedDocumentCount(ctx)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$participantCount"},
		}}},
	}
	cursor, err := s.Camps.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sums []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &sums); err != nil {
		return nil, err
	}
	var participants int64
	if len(sums) > 0 {
		participants = sums[0].Total
	}

	active, err := utils.FindAndDecode[models.Camp](ctx, s.Camps,
		bson.M{"participantCount": bson.M{"$gt": 0}},
		options.Find().SetSort(bson.D{{Key: "participantCount", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}

	return &GlobalStats{
		TotalCamps:        total,
		TotalParticipants: participants,
		ActiveCamps:       active,
	}, nil
}

// User gathers the per-user stats. The payment filter matches the
// string "Confirmed"; the original compared against boolean true there,
// which matched nothing (see DESIGN.md).
func (s *Store) User(ctx context.Context, email string) (*UserStats, error) {
	regs, err := utils.FindAndDecode[models.Registration](ctx, s.Registrations,
		bson.M{"participantEmail": email})
	if err != nil {
		return nil, err
	}

	payments, err := utils.FindAndDecode[models.Payment](ctx, s.Payments,
		bson.M{"paidBy": email, "confirmationStatus": models.StatusConfirmed})
	if err != nil {
		return nil, err
	}

	return &UserStats{Registrations: regs, Payments: payments}, nil
}

// Professionals projects camps down to presenter identity. The "since"
// field is derived from the ObjectID's embedded creation time.
func (s *Store) Professionals(ctx context.Context) ([]models.Professional, error) {
	opts := options.Find().SetProjection(bson.M{
		"professionalName": 1,
		"campName":         1,
		"location":         1,
	})
	pros, err := utils.FindAndDecode[models.Professional](ctx, s.Camps, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	for i := range pros {
		pros[i].Since = pros[i].ID.Timestamp().Format("January 2006")
	}
	return pros, nil
}
