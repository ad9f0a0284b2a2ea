package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoAccountService struct {
	usersCol    *mongo.Collection
	profilesCol *mongo.Collection
	postsCol    *mongo.Collection
}

func NewMongoAccountService(db *mongo.Database) *MongoAccountService {
	return &MongoAccountService{
		usersCol:    db.Collection("users"),
		profilesCol: db.Collection("profiles"),
		postsCol:    db.Collection("posts"),
	}
}

// DeleteAccount deletes all data owned by the given user:
// 1) posts, 2) profile, 3) the user record itself.
// The order matters: documents referencing the user must be gone before the
// user is, so a partial failure leaves an orphaned account rather than
// dangling posts. The steps are not transactional; that window is accepted.
func (s *MongoAccountService) DeleteAccount(ctx context.Context, userID string) error {
	if _, err := s.postsCol.DeleteMany(ctx, bson.M{"user": userID}); err != nil {
		return err
	}
	if _, err := s.profilesCol.DeleteOne(ctx, bson.M{"user": userID}); err != nil {
		return err
	}
	if _, err := s.usersCol.DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		return err
	}
	return nil
}
