package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/qoloner/qoloner-api/internal/utils"
)

// SubmissionClaims are the claims carried by a submission token.
type SubmissionClaims struct {
	MasterID int `json:"master_id"`
	jwt.RegisteredClaims
}

// TokenService issues and validates the submission capability token handed
// to a master at registration. The token replaces the bare master id as the
// linkage between registration and listing submission: it is signed and
// expiring, not guessable.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService constructs a TokenService.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// IssueSubmissionToken signs a token authorizing listing submissions for
// the given master.
func (s *TokenService) IssueSubmissionToken(masterID int) (string, error) {
	now := time.Now()
	claims := SubmissionClaims{
		MasterID: masterID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "listing-submission",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ValidateSubmissionToken parses and verifies a token, returning the master
// id it authorizes. Any parse, signature, or expiry failure maps to
// utils.ErrInvalidToken.
func (s *TokenService) ValidateSubmissionToken(token string) (int, error) {
	parsed, err := jwt.ParseWithClaims(token, &SubmissionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, utils.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, utils.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*SubmissionClaims)
	if !ok || claims.MasterID <= 0 {
		return 0, utils.ErrInvalidToken
	}
	return claims.MasterID, nil
}
