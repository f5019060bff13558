package camps

import (
	"context"

	"carecamps/models"
	"carecamps/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PageSize is the camp listing page size the client paginates with.
const PageSize = 6

// searchFields are the columns the free-text searchKey matches against.
var searchFields = []string{"campName", "location", "professionalName", "dateTime"}

// SearchQuery captures one camp listing request.
type SearchQuery struct {
	Key       string
	SortField string
	Owner     string // restrict to addedBy == Owner when set
	Skip      int64
	Limit     int64
}

type Store struct {
	Camps *mongo.Collection
}

func NewStore(camps *mongo.Collection) *Store {
	return &Store{Camps: camps}
}

func (q SearchQuery) filter() bson.M {
	owner := bson.M{}
	if q.Owner != "" {
		owner = bson.M{"addedBy": q.Owner}
	}
	return utils.And(utils.SearchFilter(q.Key, searchFields...), owner)
}

// Search runs the paginated camp listing. Sorting is ascending on the
// requested field, except participantCount which always sorts
// descending so poorly attended camps land last.
func (s *Store) Search(ctx context.Context, q SearchQuery) ([]models.Camp, error) {
	sort := utils.ParseSort(q.SortField, nil, map[string]bool{"participantCount": true})

	opts := options.Find().SetSkip(q.Skip).SetLimit(q.Limit)
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	return utils.FindAndDecode[models.Camp](ctx, s.Camps, q.filter(), opts)
}

// Count is the companion to Search for page-count computation; same
// filter, no pagination.
func (s *Store) Count(ctx context.Context, q SearchQuery) (int64, error) {
	return s.Camps.CountDocuments(ctx, q.filter())
}

// Popular returns the top camps by participant count.
func (s *Store) Popular(ctx context.Context, limit int64) ([]models.Camp, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "participantCount", Value: -1}}).
		SetLimit(limit)
	return utils.FindAndDecode[models.Camp](ctx, s.Camps, bson.M{}, opts)
}

// Get returns nil with no error when the id is malformed or unknown.
func (s *Store) Get(ctx context.Context, id string) (*models.Camp, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var camp models.Camp
	err = s.Camps.FindOne(ctx, bson.M{"_id": oid}).Decode(&camp)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &camp, nil
}

func (s *Store) Insert(ctx context.Context, camp models.Camp) (primitive.ObjectID, error) {
	res, err := s.Camps.InsertOne(ctx, camp)
	if err != nil {
		return primitive.NilObjectID, err
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid, nil
}

func (s *Store) Update(ctx context.Context, id string, fields bson.M) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	res, err := s.Camps.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	res, err := s.Camps.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
