package models

import (
	"time"
)

type User struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password"`
	Avatar       string    `json:"avatar" bson:"avatar,omitempty"`
	Date         time.Time `json:"date" bson:"date"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (r *RegisterRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Name == "" {
		errs = append(errs, FieldError{Field: "name", Msg: "Name is required"})
	}
	if r.Email == "" {
		errs = append(errs, FieldError{Field: "email", Msg: "Please include a valid email"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Msg: "Password is required"})
	} else if len(r.Password) < 6 {
		errs = append(errs, FieldError{Field: "password", Msg: "Please enter a password with 6 or more characters"})
	}

	return errs
}

func (r *LoginRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Email == "" {
		errs = append(errs, FieldError{Field: "email", Msg: "Please include a valid email"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Msg: "Password is required"})
	}

	return errs
}
