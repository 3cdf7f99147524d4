package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

// Claims are the token fields a principal is resolved from. Subject is the
// user id; ProfileID is the vendor or courier profile for those kinds.
type Claims struct {
	Kind      string `json:"kind"`
	ProfileID string `json:"profile_id,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 bearer tokens.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Resolve parses token and builds the principal it names.
func (a *Authenticator) Resolve(token string) (identity.Principal, error) {
	if len(a.secret) == 0 {
		return nil, errors.New("jwt secret is empty")
	}

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("invalid token")
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("subject: %w", err)
	}

	var profileID kernel.UUID
	if claims.ProfileID != "" {
		if profileID, err = kernel.UUIDFromString(claims.ProfileID); err != nil {
			return nil, fmt.Errorf("profile_id: %w", err)
		}
	}

	return identity.New(identity.Kind(strings.ToLower(claims.Kind)), userID, profileID)
}

// Sign issues a token for the given claims. Token issuance belongs to the
// identity service; this exists for tooling and tests.
func (a *Authenticator) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Middleware rejects requests without a valid bearer token. Browsers cannot
// set headers on websocket handshakes, so those alone may pass the token as
// the access_token query parameter.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token := bearerToken(ctx.Request())
			if token == "" {
				return errorResponse(ctx, http.StatusUnauthorized, "missing bearer token")
			}

			principal, err := a.Resolve(token)
			if err != nil {
				return errorResponse(ctx, http.StatusUnauthorized, "invalid token: "+err.Error())
			}

			ctx.Set(principalKey, principal)
			return next(ctx)
		}
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get(echo.HeaderAuthorization)
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	if websocket.IsWebSocketUpgrade(r) {
		return r.URL.Query().Get("access_token")
	}
	return ""
}

// principalOf returns the principal stored by Middleware, or nil.
func principalOf(ctx echo.Context) identity.Principal {
	p, _ := ctx.Get(principalKey).(identity.Principal)
	return p
}
