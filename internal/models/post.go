package models

import "time"

// Post is a text post. Author name and avatar are snapshotted from the User
// at creation time; later user edits do not rewrite existing posts.
type Post struct {
	ID       string    `json:"id" bson:"_id"`
	Text     string    `json:"text" bson:"text"`
	Name     string    `json:"name" bson:"name"`
	Avatar   string    `json:"avatar" bson:"avatar,omitempty"`
	UserID   string    `json:"user" bson:"user"`
	Likes    []Like    `json:"likes" bson:"likes"`
	Comments []Comment `json:"comments" bson:"comments"`
	Date     time.Time `json:"date" bson:"date"`
}

type Like struct {
	UserID string `json:"user" bson:"user"`
}

type Comment struct {
	ID     string    `json:"id" bson:"id"`
	UserID string    `json:"user" bson:"user"`
	Text   string    `json:"text" bson:"text"`
	Name   string    `json:"name" bson:"name"`
	Avatar string    `json:"avatar" bson:"avatar,omitempty"`
	Date   time.Time `json:"date" bson:"date"`
}

type CreatePostRequest struct {
	Text string `json:"text"`
}

func (r *CreatePostRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Text == "" {
		errs = append(errs, FieldError{Field: "text", Msg: "Text is required"})
	}

	return errs
}

type CreateCommentRequest struct {
	Text string `json:"text"`
}

func (r *CreateCommentRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Text == "" {
		errs = append(errs, FieldError{Field: "text", Msg: "Text is required"})
	}

	return errs
}
