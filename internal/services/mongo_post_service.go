package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devlink/backend/internal/models"
)

type MongoPostService struct {
	postsCol *mongo.Collection
	users    UserService
}

func NewMongoPostService(ctx context.Context, db *mongo.Database, users UserService) *MongoPostService {
	col := db.Collection("posts")

	// Best-effort indexes.
	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: -1}}},
	})

	return &MongoPostService{postsCol: col, users: users}
}

func (s *MongoPostService) Create(ctx context.Context, userID string, req *models.CreatePostRequest) (*models.Post, error) {
	// Snapshot name/avatar at creation time.
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:       uuid.New().String(),
		Text:     req.Text,
		Name:     user.Name,
		Avatar:   user.Avatar,
		UserID:   userID,
		Likes:    []models.Like{},
		Comments: []models.Comment{},
		Date:     time.Now(),
	}

	if _, err := s.postsCol.InsertOne(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *MongoPostService) List(ctx context.Context) ([]*models.Post, error) {
	cur, err := s.postsCol.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*models.Post, 0)
	for cur.Next(ctx) {
		var post models.Post
		if err := cur.Decode(&post); err != nil {
			return nil, err
		}
		out = append(out, &post)
	}
	return out, cur.Err()
}

func (s *MongoPostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := s.postsCol.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		// A malformed id matches nothing and lands here too.
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *MongoPostService) Delete(ctx context.Context, userID, postID string) error {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrNotPostOwner
	}

	_, err = s.postsCol.DeleteOne(ctx, bson.M{"_id": postID})
	return err
}

func (s *MongoPostService) Like(ctx context.Context, userID, postID string) ([]models.Like, error) {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	for _, like := range post.Likes {
		if like.UserID == userID {
			return nil, ErrAlreadyLiked
		}
	}

	_, err = s.postsCol.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{
		"$push": bson.M{"likes": bson.M{"$each": []models.Like{{UserID: userID}}, "$position": 0}},
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return updated.Likes, nil
}

func (s *MongoPostService) Unlike(ctx context.Context, userID, postID string) ([]models.Like, error) {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	liked := false
	for _, like := range post.Likes {
		if like.UserID == userID {
			liked = true
			break
		}
	}
	if !liked {
		return nil, ErrNotLiked
	}

	_, err = s.postsCol.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{
		"$pull": bson.M{"likes": bson.M{"user": userID}},
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return updated.Likes, nil
}

func (s *MongoPostService) AddComment(ctx context.Context, userID, postID string, req *models.CreateCommentRequest) ([]models.Comment, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:     uuid.New().String(),
		UserID: userID,
		Text:   req.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
		Date:   time.Now(),
	}

	res, err := s.postsCol.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{
		"$push": bson.M{"comments": bson.M{"$each": []models.Comment{comment}, "$position": 0}},
	})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrPostNotFound
	}

	updated, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return updated.Comments, nil
}

func (s *MongoPostService) DeleteComment(ctx context.Context, userID, postID, commentID string) ([]models.Comment, error) {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	found := false
	for _, comment := range post.Comments {
		if comment.ID == commentID {
			if comment.UserID != userID {
				return nil, ErrNotCommentOwner
			}
			found = true
			break
		}
	}
	if !found {
		return nil, ErrCommentNotFound
	}

	_, err = s.postsCol.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{
		"$pull": bson.M{"comments": bson.M{"id": commentID}},
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return updated.Comments, nil
}
