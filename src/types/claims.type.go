package types

import "github.com/golang-jwt/jwt/v5"

type Claims struct {
	Username  string `json:"username"`
	Role      Role   `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}
