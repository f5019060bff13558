package registrations

import (
	"context"

	"carecamps/models"
	"carecamps/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PageSize is the registration/payment listing page size.
const PageSize = 10

var searchFields = []string{"campName", "participantEmail", "participantName"}

// Query captures one registration listing request. ParticipantEmail
// empty means the admin view over all rows.
type Query struct {
	Key              string
	ParticipantEmail string
	Skip             int64
	Limit            int64
}

type Store struct {
	Registrations *mongo.Collection
	Camps         *mongo.Collection
}

func NewStore(registrations, camps *mongo.Collection) *Store {
	return &Store{Registrations: registrations, Camps: camps}
}

func (q Query) filter() bson.M {
	owner := bson.M{}
	if q.ParticipantEmail != "" {
		owner = bson.M{"participantEmail": q.ParticipantEmail}
	}
	return utils.And(utils.SearchFilter(q.Key, searchFields...), owner)
}

// Upsert replaces-or-inserts the registration keyed by findingKey and,
// when the call actually inserted, increments the camp's participant
// counter. The original service incremented on every call, so editing a
// registration double-counted; conditioning on the insert is a
// deliberate divergence (see DESIGN.md). The two writes are not wrapped
// in a transaction: a failed increment after a successful upsert leaves
// the counter behind by one, an accepted inconsistency window.
func (s *Store) Upsert(ctx context.Context, reg models.Registration) (inserted bool, err error) {
	reg.ID = primitive.NilObjectID
	res, err := s.Registrations.UpdateOne(ctx,
		bson.M{"findingKey": reg.FindingKey},
		bson.M{"$set": reg},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, err
	}
	if res.UpsertedCount == 0 {
		return false, nil
	}

	if oid, idErr := primitive.ObjectIDFromHex(reg.CampID); idErr == nil {
		_, err = s.Camps.UpdateOne(ctx,
			bson.M{"_id": oid},
			bson.M{"$inc": bson.M{"participantCount": 1}},
		)
	}
	return true, err
}

func (s *Store) List(ctx context.Context, q Query) ([]models.Registration, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	if q.Limit > 0 {
		opts.SetSkip(q.Skip).SetLimit(q.Limit)
	}
	return utils.FindAndDecode[models.Registration](ctx, s.Registrations, q.filter(), opts)
}

func (s *Store) Count(ctx context.Context, q Query) (int64, error) {
	return s.Registrations.CountDocuments(ctx, q.filter())
}

func (s *Store) Get(ctx context.Context, id string) (*models.Registration, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var reg models.Registration
	err = s.Registrations.FindOne(ctx, bson.M{"_id": oid}).Decode(&reg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (s *Store) GetByFindingKey(ctx context.Context, findingKey string) (*models.Registration, error) {
	var reg models.Registration
	err := s.Registrations.FindOne(ctx, bson.M{"findingKey": findingKey}).Decode(&reg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	res, err := s.Registrations.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Confirm sets confirmationStatus exactly once: the filter only matches
// while the field is still absent, so a repeat call modifies nothing.
func (s *Store) Confirm(ctx context.Context, findingKey string) (int64, error) {
	return s.setOnce(ctx, findingKey, "confirmationStatus", models.StatusConfirmed)
}

// MarkPaid sets paymentStatus with the same exactly-once contract.
func (s *Store) MarkPaid(ctx context.Context, findingKey string) (int64, error) {
	return s.setOnce(ctx, findingKey, "paymentStatus", models.StatusPaid)
}

func (s *Store) setOnce(ctx context.Context, findingKey, field, value string) (int64, error) {
	res, err := s.Registrations.UpdateOne(ctx,
		bson.M{"findingKey": findingKey, field: bson.M{"$exists": false}},
		bson.M{"$set": bson.M{field: value}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
