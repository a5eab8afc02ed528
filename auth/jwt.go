package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"meeting-summaries-backend/internal/config"
)

func GenerateJWT(contactID uint64) (string, error) {
	claims := jwt.MapClaims{
		"contact_id": contactID,
		"exp":        time.Now().Add(time.Hour * 24 * 3).Unix(), // expires in 3 days
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

func VerifyJWT(tokenString string) (*jwt.Token, error) {
	// parse token
	jwtToken, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}

	// isValid
	if !jwtToken.Valid {
		return nil, errors.New("token invalid")
	}

	return jwtToken, nil
}

// ContactIDFromToken extracts the contact id claim.
func ContactIDFromToken(token *jwt.Token) (uint64, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("unexpected claims type")
	}
	raw, ok := claims["contact_id"].(float64)
	if !ok {
		return 0, errors.New("contact_id claim missing")
	}
	return uint64(raw), nil
}
