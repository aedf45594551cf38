package usecase

//go:generate mockgen -source=token_validator.go -destination=../../tests/mock/usecase/token_validator.go -package=usecasemock

import (
	"course-enrollment/internal/domain/user"
	"course-enrollment/internal/pkg/jwt"
)

// TokenValidator turns a bearer token into the caller identity used by the
// capability checks.
type TokenValidator interface {
	ValidateToken(tokenString string) (user.Caller, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (user.Caller, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return user.Caller{}, err
	}
	return user.NewCaller(claims.UserID, claims.Email, claims.Role)
}
