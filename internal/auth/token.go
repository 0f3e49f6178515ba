package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// TokenTypeAccess authorizes API calls; TokenTypeRefresh is only
	// exchangeable for a new access token.
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// ErrInvalidToken indicates the token failed validation. Callers get no
// detail about why (missing, malformed, expired, bad signature).
var ErrInvalidToken = errors.New("invalid token")

// Claims are the JWT claims carried by both tokens of the pair.
type Claims struct {
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// Tokens mints and verifies the access/refresh token pair. Tokens are
// stateless and self-contained: validity is signature plus embedded expiry,
// so there is no server-side session state and no revocation.
type Tokens struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokens returns a token service signing with HS256.
func NewTokens(secret, issuer string, accessTTL, refreshTTL time.Duration) (*Tokens, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	return &Tokens{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// IssuePair mints a fresh access and refresh token for the given user.
func (t *Tokens) IssuePair(userID int64) (access, refresh string, err error) {
	access, err = t.mint(userID, TokenTypeAccess, t.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = t.mint(userID, TokenTypeRefresh, t.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Refresh exchanges a valid refresh token for a new access token.
// The refresh token itself is not rotated.
func (t *Tokens) Refresh(refreshToken string) (string, error) {
	claims, err := t.parse(refreshToken)
	if err != nil {
		return "", err
	}
	if claims.TokenType != TokenTypeRefresh {
		return "", ErrInvalidToken
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return "", ErrInvalidToken
	}
	return t.mint(userID, TokenTypeAccess, t.accessTTL)
}

// ResolvePrincipal verifies an access token and returns the embedded user ID.
// Refresh tokens are rejected here: they never authorize API calls.
func (t *Tokens) ResolvePrincipal(accessToken string) (int64, error) {
	claims, err := t.parse(accessToken)
	if err != nil {
		return 0, err
	}
	if claims.TokenType != TokenTypeAccess {
		return 0, ErrInvalidToken
	}
	return subjectID(claims)
}

// Verify introspects either token of the pair and returns the embedded user ID.
func (t *Tokens) Verify(token string) (int64, error) {
	claims, err := t.parse(token)
	if err != nil {
		return 0, err
	}
	if claims.TokenType != TokenTypeAccess && claims.TokenType != TokenTypeRefresh {
		return 0, ErrInvalidToken
	}
	return subjectID(claims)
}

func (t *Tokens) mint(userID int64, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *Tokens) parse(token string) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(tok *jwt.Token) (any, error) {
		if tok.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	}, jwt.WithIssuer(t.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func subjectID(claims *Claims) (int64, error) {
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}
