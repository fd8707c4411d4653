package dto

import (
	"strings"
	"todoapp/internal/domains/user/model"
	"todoapp/shared"
	"todoapp/shared/constant"
	gDto "todoapp/shared/dto"
	"todoapp/shared/failure"
	"todoapp/shared/timezone"

	"github.com/google/uuid"
)

// ActiveAll disables the activity filter on list requests.
const ActiveAll = "all"

type CreateUserRequest struct {
	Username        string  `json:"username"         validate:"required,notblank,max=150"   example:"testuser"`
	Email           string  `json:"email"            validate:"required,email,max=254"     example:"test@example.com"`
	FirstName       string  `json:"first_name"       validate:"required,notblank,max=150"   example:"Test"`
	LastName        string  `json:"last_name"        validate:"required,notblank,max=150"   example:"User"`
	Bio             string  `json:"bio"              validate:"max=500"`
	ProfilePicture  *string `json:"profile_picture"  validate:"omitnil,max=255"`
	Password        *string `json:"password"         validate:"omitnil,min=8,max=72"`
	ConfirmPassword *string `json:"confirm_password"`
}

// CheckPassword verifies that a supplied password was confirmed.
func (r *CreateUserRequest) CheckPassword() error {
	if r.Password == nil {
		return nil
	}

	if r.ConfirmPassword == nil || *r.ConfirmPassword != *r.Password {
		return failure.FieldError(model.FieldConfirmPass, model.MessagePasswordMismatch) //nolint:wrapcheck
	}

	return nil
}

func (r *CreateUserRequest) ToModel(actor string, hashedPassword *string) model.User {
	now := timezone.Now()

	user := model.User{
		ID:             uuid.NewString(),
		Username:       strings.TrimSpace(r.Username),
		Email:          strings.ToLower(strings.TrimSpace(r.Email)),
		FirstName:      strings.TrimSpace(r.FirstName),
		LastName:       strings.TrimSpace(r.LastName),
		Bio:            r.Bio,
		ProfilePicture: r.ProfilePicture,
		Password:       hashedPassword,
		IsActive:       true,
		DateJoined:     now,
	}
	user.Stamp(now, actor)

	return user
}

// UserRequest is the full representation accepted by PUT. Bio and picture
// are cleared when left out.
type UserRequest struct {
	Username       string  `json:"username"        validate:"required,notblank,max=150"`
	Email          string  `json:"email"           validate:"required,email,max=254"`
	FirstName      string  `json:"first_name"      validate:"required,notblank,max=150"`
	LastName       string  `json:"last_name"       validate:"required,notblank,max=150"`
	Bio            string  `json:"bio"             validate:"max=500"`
	ProfilePicture *string `json:"profile_picture" validate:"omitnil,max=255"`
	IsActive       *bool   `json:"is_active"`
}

func (r *UserRequest) ToUpdate() UpdateUserRequest {
	username, email := r.Username, r.Email
	firstName, lastName, bio := r.FirstName, r.LastName, r.Bio

	return UpdateUserRequest{
		Username:       &username,
		Email:          &email,
		FirstName:      &firstName,
		LastName:       &lastName,
		Bio:            &bio,
		ProfilePicture: r.ProfilePicture,
		IsActive:       r.IsActive,
		replace:        true,
	}
}

// UpdateUserRequest is a partial update; nil fields keep their value.
type UpdateUserRequest struct {
	Username       *string `json:"username"        validate:"omitnil,notblank,max=150"`
	Email          *string `json:"email"           validate:"omitnil,email,max=254"`
	FirstName      *string `json:"first_name"      validate:"omitnil,notblank,max=150"`
	LastName       *string `json:"last_name"       validate:"omitnil,notblank,max=150"`
	Bio            *string `json:"bio"             validate:"omitnil,max=500"`
	ProfilePicture *string `json:"profile_picture" validate:"omitnil,max=255"`
	IsActive       *bool   `json:"is_active"`

	replace bool
}

func (u *UpdateUserRequest) IsReplace() bool {
	return u.replace
}

func (u *UpdateUserRequest) IsEmpty() bool {
	return !u.replace && u.Username == nil && u.Email == nil && u.FirstName == nil &&
		u.LastName == nil && u.Bio == nil && u.ProfilePicture == nil && u.IsActive == nil
}

// Apply merges the update into a copy of user.
func (u *UpdateUserRequest) Apply(user model.User) model.User {
	if u.Username != nil {
		user.Username = strings.TrimSpace(*u.Username)
	}

	if u.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*u.Email))
	}

	if u.FirstName != nil {
		user.FirstName = strings.TrimSpace(*u.FirstName)
	}

	if u.LastName != nil {
		user.LastName = strings.TrimSpace(*u.LastName)
	}

	if u.Bio != nil {
		user.Bio = *u.Bio
	}

	if u.replace || u.ProfilePicture != nil {
		user.ProfilePicture = u.ProfilePicture
	}

	if u.IsActive != nil {
		user.IsActive = *u.IsActive
	}

	return user
}

// Columns returns the mutable columns of user for an update statement.
func Columns(user model.User, actor string) map[string]any {
	return shared.Audit(map[string]any{
		model.FieldUsername:       user.Username,
		model.FieldEmail:          user.Email,
		model.FieldFirstName:      user.FirstName,
		model.FieldLastName:       user.LastName,
		model.FieldBio:            user.Bio,
		model.FieldProfilePicture: user.ProfilePicture,
		model.FieldIsActive:       user.IsActive,
	}, actor)
}

// ListFilter narrows the user list. A nil Active returns every user.
type ListFilter struct {
	Active *bool
	Search string
}

func (f ListFilter) ToFilterGroup() gDto.FilterGroup {
	active := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	if f.Active != nil {
		active.Filters = append(active.Filters, gDto.Filter{
			Field:    model.FieldIsActive,
			Value:    *f.Active,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	search := gDto.FilterGroup{}
	if f.Search != "" {
		search = gDto.Search(f.Search, model.TableName,
			model.FieldUsername, model.FieldEmail, model.FieldFirstName, model.FieldLastName)
	}

	return gDto.And(active, search)
}

type UserResponse struct {
	ID             string  `json:"id"              example:"0b5e8a4e-2c1d-4c55-9d0e-3f2a7f4c9b11"`
	Username       string  `json:"username"        example:"testuser"`
	Email          string  `json:"email"           example:"test@example.com"`
	FirstName      string  `json:"first_name"      example:"Test"`
	LastName       string  `json:"last_name"       example:"User"`
	FullName       string  `json:"full_name"       example:"Test User"`
	Bio            string  `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
	IsActive       bool    `json:"is_active"       example:"true"`
	DateJoined     string  `json:"date_joined"`
	LastLogin      *string `json:"last_login"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Username = user.Username
	r.Email = user.Email
	r.FirstName = user.FirstName
	r.LastName = user.LastName
	r.FullName = user.FullName()
	r.Bio = user.Bio
	r.ProfilePicture = user.ProfilePicture
	r.IsActive = user.IsActive
	r.DateJoined = timezone.Format(user.DateJoined, constant.DateFormat)
	r.LastLogin = nil

	if user.LastLogin != nil {
		lastLogin := timezone.Format(*user.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}

	r.Metadata.FromModel(user.Metadata)
}

func FromModels(models []model.User) []UserResponse {
	res := make([]UserResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

type Statistics struct {
	TotalUsers    int `json:"total_users"    example:"10"`
	ActiveUsers   int `json:"active_users"   example:"8"`
	InactiveUsers int `json:"inactive_users" example:"2"`
}
