package models

import (
	"strings"
	"time"
)

// Profile is user-editable developer profile data stored in Mongo,
// keyed by the owning user's id (one profile per user).
type Profile struct {
	ID             string       `json:"id" bson:"_id"`
	UserID         string       `json:"user" bson:"user"`
	Owner          *ProfileUser `json:"owner,omitempty" bson:"-"`
	Company        string       `json:"company" bson:"company,omitempty"`
	Website        string       `json:"website" bson:"website,omitempty"`
	Location       string       `json:"location" bson:"location,omitempty"`
	Status         string       `json:"status" bson:"status"`
	Skills         []string     `json:"skills" bson:"skills"`
	Bio            string       `json:"bio" bson:"bio,omitempty"`
	GithubUsername string       `json:"githubusername" bson:"githubusername,omitempty"`
	Experience     []Experience `json:"experience" bson:"experience"`
	Education      []Education  `json:"education" bson:"education"`
	Social         Social       `json:"social" bson:"social"`
	Date           time.Time    `json:"date" bson:"date"`
}

// ProfileUser is the owner info attached to profiles on reads (never stored).
type ProfileUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type Experience struct {
	ID          string     `json:"id" bson:"id"`
	Company     string     `json:"company" bson:"company"`
	Title       string     `json:"title" bson:"title"`
	Location    string     `json:"location" bson:"location,omitempty"`
	From        time.Time  `json:"from" bson:"from"`
	To          *time.Time `json:"to" bson:"to,omitempty"`
	Current     bool       `json:"current" bson:"current"`
	Description string     `json:"description" bson:"description,omitempty"`
}

type Education struct {
	ID           string     `json:"id" bson:"id"`
	School       string     `json:"school" bson:"school"`
	Degree       string     `json:"degree" bson:"degree"`
	FieldOfStudy string     `json:"fieldofstudy" bson:"fieldofstudy"`
	From         time.Time  `json:"from" bson:"from"`
	To           *time.Time `json:"to" bson:"to,omitempty"`
	Current      bool       `json:"current" bson:"current"`
	Description  string     `json:"description" bson:"description,omitempty"`
}

type Social struct {
	Youtube   string `json:"youtube,omitempty" bson:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
}

// UpsertProfileRequest carries a partial profile update. Nil fields are left
// untouched on existing profiles. Skills arrives as a comma-separated string.
type UpsertProfileRequest struct {
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Status         string  `json:"status"`
	Skills         string  `json:"skills"`
	Bio            *string `json:"bio"`
	GithubUsername *string `json:"githubusername"`
	Youtube        *string `json:"youtube"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	Linkedin       *string `json:"linkedin"`
	Instagram      *string `json:"instagram"`
}

func (r *UpsertProfileRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Status == "" {
		errs = append(errs, FieldError{Field: "status", Msg: "Status is required"})
	}
	if strings.TrimSpace(r.Skills) == "" {
		errs = append(errs, FieldError{Field: "skills", Msg: "Skills is required"})
	}

	return errs
}

// ParseSkills splits the comma-separated skills string into a trimmed,
// order-preserving slice. Empty segments are dropped.
func ParseSkills(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

type ExperienceRequest struct {
	Company     string     `json:"company"`
	Title       string     `json:"title"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

func (r *ExperienceRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Title == "" {
		errs = append(errs, FieldError{Field: "title", Msg: "Title is required"})
	}
	if r.Company == "" {
		errs = append(errs, FieldError{Field: "company", Msg: "Company is required"})
	}
	if r.From.IsZero() {
		errs = append(errs, FieldError{Field: "from", Msg: "From date is required"})
	}

	return errs
}

type EducationRequest struct {
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

func (r *EducationRequest) Validate() []FieldError {
	var errs []FieldError

	if r.School == "" {
		errs = append(errs, FieldError{Field: "school", Msg: "School is required"})
	}
	if r.Degree == "" {
		errs = append(errs, FieldError{Field: "degree", Msg: "Degree is required"})
	}
	if r.FieldOfStudy == "" {
		errs = append(errs, FieldError{Field: "fieldofstudy", Msg: "Field of study is required"})
	}
	if r.From.IsZero() {
		errs = append(errs, FieldError{Field: "from", Msg: "From date is required"})
	}

	return errs
}
