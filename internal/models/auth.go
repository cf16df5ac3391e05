package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campusdesk/feedback-api/internal/authz"
)

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResponse returns the issued tokens and user info.
type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
	User         UserInfo  `json:"user"`
	IssuedAt     time.Time `json:"issued_at"`
}

// RefreshTokenRequest exchanges a refresh token for a new access token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
	IP           string `json:"-"`
	UserAgent    string `json:"-"`
}

// RefreshTokenResponse returns the refreshed tokens.
type RefreshTokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
	IssuedAt     time.Time `json:"issued_at"`
}

// RegisterRequest is the student self-service registration payload.
// Department accepts a free-form branch label which is resolved on use.
type RegisterRequest struct {
	Username   string `json:"username" validate:"required,min=3"`
	Password   string `json:"password" validate:"required,min=6"`
	FullName   string `json:"full_name" validate:"required"`
	Department string `json:"department"`
	Year       int    `json:"year" validate:"omitempty,min=1,max=4"`
	StudentID  string `json:"student_id"`
}

// UserInfo describes the authenticated user in responses.
type UserInfo struct {
	ID            string   `json:"id"`
	Username      string   `json:"username"`
	FullName      string   `json:"full_name"`
	Role          string   `json:"role"`
	DepartmentIDs []string `json:"department_ids"`
	SubjectIDs    []string `json:"subject_ids"`
}

// JWTClaims is the access token payload. It carries the actor's scope
// memberships so policy decisions can be made straight from a session
// without a user lookup.
type JWTClaims struct {
	UserID        string   `json:"user_id"`
	Username      string   `json:"username"`
	Role          string   `json:"role"`
	DepartmentIDs []string `json:"department_ids,omitempty"`
	SubjectIDs    []string `json:"subject_ids,omitempty"`
	jwt.RegisteredClaims
}

// RawActor exposes the claims in the shape the policy layer normalizes from.
func (c *JWTClaims) RawActor() authz.RawUser {
	if c == nil {
		return authz.RawUser{}
	}
	return authz.RawUser{
		ID:            c.UserID,
		Username:      c.Username,
		Role:          c.Role,
		DepartmentIDs: c.DepartmentIDs,
		SubjectIDs:    c.SubjectIDs,
	}
}
