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

type MongoProfileService struct {
	profilesCol *mongo.Collection
	usersCol    *mongo.Collection
}

func NewMongoProfileService(ctx context.Context, db *mongo.Database) *MongoProfileService {
	col := db.Collection("profiles")

	// Best-effort indexes. The unique owner index is what keeps concurrent
	// upserts for one user from producing two profiles.
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &MongoProfileService{
		profilesCol: col,
		usersCol:    db.Collection("users"),
	}
}

// attachOwner fills prof.Owner from the users collection, best effort.
func (s *MongoProfileService) attachOwner(ctx context.Context, prof *models.Profile) {
	var user models.User
	if err := s.usersCol.FindOne(ctx, bson.M{"_id": prof.UserID}).Decode(&user); err == nil {
		prof.Owner = &models.ProfileUser{ID: user.ID, Name: user.Name, Avatar: user.Avatar}
	}
}

func (s *MongoProfileService) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var prof models.Profile
	if err := s.profilesCol.FindOne(ctx, bson.M{"user": userID}).Decode(&prof); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	s.attachOwner(ctx, &prof)
	return &prof, nil
}

func (s *MongoProfileService) GetAll(ctx context.Context) ([]*models.Profile, error) {
	cur, err := s.profilesCol.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*models.Profile, 0)
	userIDs := make([]string, 0)
	for cur.Next(ctx) {
		var prof models.Profile
		if err := cur.Decode(&prof); err != nil {
			return nil, err
		}
		out = append(out, &prof)
		userIDs = append(userIDs, prof.UserID)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	// One owner-info fetch for the whole page.
	if len(userIDs) > 0 {
		ucur, err := s.usersCol.Find(ctx, bson.M{"_id": bson.M{"$in": userIDs}}, options.Find().SetProjection(bson.M{
			"_id":    1,
			"name":   1,
			"avatar": 1,
		}))
		if err != nil {
			return nil, err
		}
		defer ucur.Close(ctx)

		owners := make(map[string]*models.ProfileUser)
		for ucur.Next(ctx) {
			var user models.User
			if err := ucur.Decode(&user); err != nil {
				return nil, err
			}
			owners[user.ID] = &models.ProfileUser{ID: user.ID, Name: user.Name, Avatar: user.Avatar}
		}
		if err := ucur.Err(); err != nil {
			return nil, err
		}
		for _, prof := range out {
			prof.Owner = owners[prof.UserID]
		}
	}

	return out, nil
}

func (s *MongoProfileService) Upsert(ctx context.Context, userID string, req *models.UpsertProfileRequest) (*models.Profile, error) {
	set := bson.M{
		"status": req.Status,
		"skills": models.ParseSkills(req.Skills),
	}
	if req.Company != nil {
		set["company"] = *req.Company
	}
	if req.Website != nil {
		set["website"] = *req.Website
	}
	if req.Location != nil {
		set["location"] = *req.Location
	}
	if req.Bio != nil {
		set["bio"] = *req.Bio
	}
	if req.GithubUsername != nil {
		set["githubusername"] = *req.GithubUsername
	}
	// Social links merge individually, untouched fields survive.
	if req.Youtube != nil {
		set["social.youtube"] = *req.Youtube
	}
	if req.Twitter != nil {
		set["social.twitter"] = *req.Twitter
	}
	if req.Facebook != nil {
		set["social.facebook"] = *req.Facebook
	}
	if req.Linkedin != nil {
		set["social.linkedin"] = *req.Linkedin
	}
	if req.Instagram != nil {
		set["social.instagram"] = *req.Instagram
	}

	setOnInsert := bson.M{
		"_id":        uuid.New().String(),
		"user":       userID,
		"experience": []models.Experience{},
		"education":  []models.Education{},
		"date":       time.Now(),
	}

	_, err := s.profilesCol.UpdateOne(
		ctx,
		bson.M{"user": userID},
		bson.M{"$set": set, "$setOnInsert": setOnInsert},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		// If a concurrent upsert inserted first, the unique owner index
		// rejects our insert; retry as a plain update against the winner.
		if mongo.IsDuplicateKeyError(err) {
			_, err = s.profilesCol.UpdateOne(ctx, bson.M{"user": userID}, bson.M{"$set": set})
		}
		if err != nil {
			return nil, err
		}
	}

	return s.GetByUserID(ctx, userID)
}

func (s *MongoProfileService) AddExperience(ctx context.Context, userID string, req *models.ExperienceRequest) (*models.Profile, error) {
	exp := models.Experience{
		ID:          uuid.New().String(),
		Company:     req.Company,
		Title:       req.Title,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}

	// Prepend: most-recent-first.
	res, err := s.profilesCol.UpdateOne(ctx, bson.M{"user": userID}, bson.M{
		"$push": bson.M{"experience": bson.M{"$each": []models.Experience{exp}, "$position": 0}},
	})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrProfileNotFound
	}

	return s.GetByUserID(ctx, userID)
}

func (s *MongoProfileService) RemoveExperience(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	// Pulling an absent entry matches the profile and changes nothing,
	// which is exactly the intended no-op behavior.
	res, err := s.profilesCol.UpdateOne(ctx, bson.M{"user": userID}, bson.M{
		"$pull": bson.M{"experience": bson.M{"id": entryID}},
	})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrProfileNotFound
	}

	return s.GetByUserID(ctx, userID)
}

func (s *MongoProfileService) AddEducation(ctx context.Context, userID string, req *models.EducationRequest) (*models.Profile, error) {
	edu := models.Education{
		ID:           uuid.New().String(),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}

	res, err := s.profilesCol.UpdateOne(ctx, bson.M{"user": userID}, bson.M{
		"$push": bson.M{"education": bson.M{"$each": []models.Education{edu}, "$position": 0}},
	})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrProfileNotFound
	}

	return s.GetByUserID(ctx, userID)
}

func (s *MongoProfileService) RemoveEducation(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	res, err := s.profilesCol.UpdateOne(ctx, bson.M{"user": userID}, bson.M{
		"$pull": bson.M{"education": bson.M{"id": entryID}},
	})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrProfileNotFound
	}

	return s.GetByUserID(ctx, userID)
}
