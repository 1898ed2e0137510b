package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims in a service token
type TokenClaims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope"`
}
