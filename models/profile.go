package models

import "time"

type Role string

const (
	RoleGuest Role = "guest"
	RoleHost  Role = "host"
)

// Profile is a marketplace account. Every account can book; hosts can also list.
type Profile struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	FullName     string    `bson:"fullName" json:"fullName"`
	PhoneNumber  string    `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	BirthDate    string    `bson:"birthDate,omitempty" json:"birthDate,omitempty"`
	AvatarURL    string    `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	Role         Role      `bson:"role" json:"role"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	TokenHash    string    `bson:"tokenHash,omitempty" json:"-"`
	FCMToken     string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest only touches the fields that are set.
type UpdateProfileRequest struct {
	FullName    *string `json:"fullName,omitempty" validate:"omitempty,min=1"`
	PhoneNumber *string `json:"phoneNumber,omitempty" validate:"omitempty,e164"`
	BirthDate   *string `json:"birthDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	AvatarURL   *string `json:"avatarUrl,omitempty" validate:"omitempty,url"`
	FCMToken    *string `json:"fcmToken,omitempty"`
}

type AuthResponse struct {
	Token   string   `json:"token"`
	Profile *Profile `json:"profile"`
}
