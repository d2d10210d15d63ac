package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// TB3Claims represents custom JWT claims for TB3 auth
type TB3Claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
