package jwt

import (
	"errors"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var ErrInvalidClaims = errors.New("token claims are missing or invalid")

type Service interface {
	GenerateAccessToken(caller user.Caller) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	now                       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                       time.Now,
	}
}

// GenerateAccessToken issues the bearer token the attendance API reads the caller from.
// Login lives in the HR core; this is used by the dev token command and tests.
func (j *JWTService) GenerateAccessToken(caller user.Caller) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = j.now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":     caller.UserID,
		"employee_id": caller.EmployeeID,
		"role":        string(caller.Role),
		"type":        "access",
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// CallerFromClaims builds the request caller from verified access-token claims.
func CallerFromClaims(claims map[string]interface{}) (*user.Caller, error) {
	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return nil, ErrInvalidClaims
	}

	userID, _ := claims["user_id"].(string)
	employeeID, _ := claims["employee_id"].(string)
	roleStr, _ := claims["role"].(string)

	role, ok := user.ParseRole(roleStr)
	if !ok || userID == "" || employeeID == "" {
		return nil, ErrInvalidClaims
	}

	return &user.Caller{UserID: userID, EmployeeID: employeeID, Role: role}, nil
}
