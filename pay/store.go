package pay

import (
	"context"

	"carecamps/models"
	"carecamps/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PageSize matches the registration listing page size.
const PageSize = 10

// Query captures one payment history request.
type Query struct {
	Key    string
	PaidBy string
	Skip   int64
	Limit  int64
}

type Store struct {
	Payments *mongo.Collection
}

func NewStore(payments *mongo.Collection) *Store {
	return &Store{Payments: payments}
}

func (q Query) filter() bson.M {
	owner := bson.M{}
	if q.PaidBy != "" {
		owner = bson.M{"paidBy": q.PaidBy}
	}
	return utils.And(utils.SearchFilter(q.Key, "campName"), owner)
}

// Insert appends a payment record; payments are never updated in place.
func (s *Store) Insert(ctx context.Context, payment models.Payment) (primitive.ObjectID, error) {
	res, err := s.Payments.InsertOne(ctx, payment)
	if err != nil {
		return primitive.NilObjectID, err
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid, nil
}

func (s *Store) List(ctx context.Context, q Query) ([]models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	if q.Limit > 0 {
		opts.SetSkip(q.Skip).SetLimit(q.Limit)
	}
	return utils.FindAndDecode[models.Payment](ctx, s.Payments, q.filter(), opts)
}

func (s *Store) Count(ctx context.Context, q Query) (int64, error) {
	return s.Payments.CountDocuments(ctx, q.filter())
}
