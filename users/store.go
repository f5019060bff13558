package users

import (
	"context"

	"carecamps/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the users collection access layer.
type Store struct {
	Users *mongo.Collection
}

func NewStore(users *mongo.Collection) *Store {
	return &Store{Users: users}
}

// Upsert replaces-or-inserts the profile document keyed by email. At
// most one document per email exists after the call; concurrent upserts
// to the same email are last-write-wins.
func (s *Store) Upsert(ctx context.Context, email string, fields bson.M) (matched, upserted int64, err error) {
	res, err := s.Users.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": fields},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.UpsertedCount, nil
}

// Update applies a partial profile update; no insert on miss.
func (s *Store) Update(ctx context.Context, email string, fields bson.M) (int64, error) {
	res, err := s.Users.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": fields})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// FindByEmail returns nil with no error when the user does not exist;
// callers interpret the miss.
func (s *Store) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.Users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// IsAdmin implements middleware.AdminChecker. A missing user or a
// missing role field both mean member.
func (s *Store) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return user != nil && user.Role == models.RoleAdmin, nil
}
