package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlink/backend/internal/models"
)

func newProfileFixture(t *testing.T) (*MemoryProfileService, string) {
	t.Helper()
	users := NewMemoryUserService()
	user, err := users.Register(context.Background(), &models.RegisterRequest{
		Name:     "Profile Owner",
		Email:    "owner@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return NewMemoryProfileService(users), user.ID
}

func strPtr(s string) *string { return &s }

func TestUpsertCreatesThenMerges(t *testing.T) {
	svc, userID := newProfileFixture(t)
	ctx := context.Background()

	first, err := svc.Upsert(ctx, userID, &models.UpsertProfileRequest{
		Status:  "Developer",
		Skills:  "html, css, js",
		Company: strPtr("Acme"),
		Twitter: strPtr("https://twitter.com/owner"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"html", "css", "js"}, first.Skills)
	assert.Equal(t, "Acme", first.Company)

	second, err := svc.Upsert(ctx, userID, &models.UpsertProfileRequest{
		Status:  "Senior Developer",
		Skills:  "go",
		Youtube: strPtr("https://youtube.com/@owner"),
	})
	require.NoError(t, err)

	// One document per owner; omitted fields survive the merge.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Acme", second.Company)
	assert.Equal(t, "https://twitter.com/owner", second.Social.Twitter)
	assert.Equal(t, "https://youtube.com/@owner", second.Social.Youtube)
	assert.Equal(t, []string{"go"}, second.Skills)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestParseSkills(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"html, css, js", []string{"html", "css", "js"}},
		{"go", []string{"go"}},
		{" go ,  mongo ", []string{"go", "mongo"}},
		{"go,,mongo,", []string{"go", "mongo"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, models.ParseSkills(tt.in), "input %q", tt.in)
	}
}

func TestAddExperiencePrepends(t *testing.T) {
	svc, userID := newProfileFixture(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, userID, &models.UpsertProfileRequest{Status: "Dev", Skills: "go"})
	require.NoError(t, err)

	from := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.AddExperience(ctx, userID, &models.ExperienceRequest{Title: "Engineer", Company: "First", From: from})
	require.NoError(t, err)
	prof, err := svc.AddExperience(ctx, userID, &models.ExperienceRequest{Title: "Senior", Company: "Second", From: from.AddDate(2, 0, 0)})
	require.NoError(t, err)

	require.Len(t, prof.Experience, 2)
	assert.Equal(t, "Second", prof.Experience[0].Company)
	assert.Equal(t, "First", prof.Experience[1].Company)
	assert.NotEmpty(t, prof.Experience[0].ID)
	assert.NotEqual(t, prof.Experience[0].ID, prof.Experience[1].ID)
}

func TestAddExperienceWithoutProfile(t *testing.T) {
	svc, userID := newProfileFixture(t)

	_, err := svc.AddExperience(context.Background(), userID, &models.ExperienceRequest{
		Title: "Engineer", Company: "Corp", From: time.Now(),
	})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestRemoveExperienceAbsentEntryIsNoOp(t *testing.T) {
	svc, userID := newProfileFixture(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, userID, &models.UpsertProfileRequest{Status: "Dev", Skills: "go"})
	require.NoError(t, err)
	withEntry, err := svc.AddExperience(ctx, userID, &models.ExperienceRequest{Title: "Engineer", Company: "Corp", From: time.Now()})
	require.NoError(t, err)

	prof, err := svc.RemoveExperience(ctx, userID, "no-such-id")
	require.NoError(t, err)
	assert.Equal(t, len(withEntry.Experience), len(prof.Experience))

	prof, err = svc.RemoveExperience(ctx, userID, withEntry.Experience[0].ID)
	require.NoError(t, err)
	assert.Len(t, prof.Experience, 0)
}

func TestEducationLifecycle(t *testing.T) {
	svc, userID := newProfileFixture(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, userID, &models.UpsertProfileRequest{Status: "Student", Skills: "go"})
	require.NoError(t, err)

	prof, err := svc.AddEducation(ctx, userID, &models.EducationRequest{
		School: "State University", Degree: "BSc", FieldOfStudy: "CS",
		From: time.Date(2015, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, prof.Education, 1)
	assert.Equal(t, "State University", prof.Education[0].School)

	prof, err = svc.RemoveEducation(ctx, userID, prof.Education[0].ID)
	require.NoError(t, err)
	assert.Len(t, prof.Education, 0)
}

func TestGetByUserIDNotFound(t *testing.T) {
	svc, _ := newProfileFixture(t)

	_, err := svc.GetByUserID(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestGetByUserIDAttachesOwner(t *testing.T) {
	svc, userID := newProfileFixture(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, userID, &models.UpsertProfileRequest{Status: "Dev", Skills: "go"})
	require.NoError(t, err)

	prof, err := svc.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, prof.Owner)
	assert.Equal(t, "Profile Owner", prof.Owner.Name)
	assert.NotEmpty(t, prof.Owner.Avatar)
}
