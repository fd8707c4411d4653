package model

import (
	"strings"
	"time"
	"todoapp/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID             = "id"
	FieldUsername       = "username"
	FieldEmail          = "email"
	FieldFirstName      = "first_name"
	FieldLastName       = "last_name"
	FieldBio            = "bio"
	FieldProfilePicture = "profile_picture"
	FieldPassword       = "password"
	FieldConfirmPass    = "confirm_password"
	FieldIsActive       = "is_active"
	FieldDateJoined     = "date_joined"
	FieldLastLogin      = "last_login"
)

const (
	ConstraintUsername = "users_username_key"
	ConstraintEmail    = "users_email_key"
)

const (
	MessageNotFound         = "user not found"
	MessageUsernameExists   = "Username already exists"
	MessageEmailExists      = "Email already exists"
	MessagePasswordMismatch = "Passwords do not match"
)

type User struct {
	ID             string     `db:"id"`
	Username       string     `db:"username"`
	Email          string     `db:"email"`
	FirstName      string     `db:"first_name"`
	LastName       string     `db:"last_name"`
	Bio            string     `db:"bio"`
	ProfilePicture *string    `db:"profile_picture"`
	Password       *string    `db:"password"`
	IsActive       bool       `db:"is_active"`
	DateJoined     time.Time  `db:"date_joined"`
	LastLogin      *time.Time `db:"last_login"`
	model.Metadata
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u User) ShortName() string {
	return u.FirstName
}
