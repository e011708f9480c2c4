package auth

//go:generate mockgen -source=jwt.go -destination=jwt_mock.go -package=auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/shopspring/decimal"
)

const issuer = "squadhelp"

type JWTServiceInterface interface {
	GenerateJWT(profile Profile, expirationTime time.Time) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Profile is the part of the user that travels inside the token.
type Profile struct {
	UserID      int             `json:"userId"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	DisplayName string          `json:"displayName"`
	Avatar      string          `json:"avatar"`
	Email       string          `json:"email"`
	Role        string          `json:"role"`
	Balance     decimal.Decimal `json:"balance"`
	Rating      *float64        `json:"rating"`
}

type Claims struct {
	Profile
	jwt.StandardClaims
}

type JWTService struct {
	secretKey []byte
}

func NewJWTService(secret string) *JWTService {
	return &JWTService{secretKey: []byte(secret)}
}

func (s *JWTService) GenerateJWT(profile Profile, expirationTime time.Time) (string, error) {
	claims := Claims{
		Profile: profile,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
			IssuedAt:  time.Now().Unix(),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == 0 || claims.Issuer != issuer {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
