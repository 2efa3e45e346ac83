package auth

import (
	"fmt"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// TokenVerifier validates a raw JWT string and returns its claims.
type TokenVerifier interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// JWKSVerifier validates token signatures against the identity provider's
// JWKS endpoint. Key material is fetched and refreshed by keyfunc.
type JWKSVerifier struct {
	keyfunc keyfunc.Keyfunc
	issuer  string
	logger  *zap.Logger
}

// NewJWKSVerifier creates a verifier backed by the given JWKS URL.
// The issuer check is skipped when issuer is empty.
func NewJWKSVerifier(jwksURL, issuer string, logger *zap.Logger) (*JWKSVerifier, error) {
	if jwksURL == "" {
		return nil, fmt.Errorf("JWKS URL is required when verification is enabled")
	}

	kf, err := keyfunc.NewDefault([]string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWKS client: %w", err)
	}

	return &JWKSVerifier{
		keyfunc: kf,
		issuer:  issuer,
		logger:  logger,
	}, nil
}

// ValidateToken parses and verifies the token signature and registered claims.
func (v *JWKSVerifier) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, v.keyfunc.Keyfunc, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// UnverifiedVerifier parses tokens without signature validation.
// Only for local development against a stub identity provider.
type UnverifiedVerifier struct{}

// ValidateToken parses the token structure without verifying its signature.
func (v *UnverifiedVerifier) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

var (
	_ TokenVerifier = (*JWKSVerifier)(nil)
	_ TokenVerifier = (*UnverifiedVerifier)(nil)
)
