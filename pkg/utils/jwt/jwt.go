package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// SessionDuration keeps the operator signed in across restarts; the
// token is stateless so nothing server-side expires with the process.
const SessionDuration = 30 * 24 * time.Hour

var jwtSecret = []byte(devSecret)

const devSecret = "agiliza-dev-secret"

// Init installs the signing secret from configuration. It must run
// before the first token is issued; an empty secret keeps the dev
// fallback, which is only acceptable outside production.
func Init(secret string) {
	if secret == "" {
		return
	}
	jwtSecret = []byte(secret)
}

func GenerateToken(userID uint, email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})

	return token.SignedString(jwtSecret)
}

func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, err
}
