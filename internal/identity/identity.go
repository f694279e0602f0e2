package identity

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"messaging-back/internal/apperrors"
	"messaging-back/pkg/jwt"
)

const (
	SubjectClaim = "sub"
	AccessCookie = "access"
	TokenQuery   = "token"
)

// Verifier resolves a bearer credential to the user it was issued for.
type Verifier interface {
	Verify(ctx context.Context, token string) (uuid.UUID, error)
}

// JWTVerifier accepts ES256 tokens whose subject is the user uuid.
type JWTVerifier struct {
	publicKey *ecdsa.PublicKey
}

func NewJWTVerifier(publicKey *ecdsa.PublicKey) *JWTVerifier {
	return &JWTVerifier{publicKey: publicKey}
}

func (v *JWTVerifier) Verify(_ context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, apperrors.ErrTokenMissing
	}

	claims, err := jwt.ValidateToken(token, v.publicKey)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}

	sub, ok := claims[SubjectClaim].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: missing %s claim", apperrors.ErrTokenInvalid, SubjectClaim)
	}

	userID, err := uuid.Parse(sub)
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: malformed %s claim", apperrors.ErrTokenInvalid, SubjectClaim)
	}

	return userID, nil
}

// TokenFromRequest picks the credential from the access cookie or the Authorization header,
// in that order.
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(AccessCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}

// SocketTokenFromRequest is TokenFromRequest with a token query fallback. Browsers cannot
// set headers on a websocket handshake, so only the socket endpoint accepts it.
func SocketTokenFromRequest(r *http.Request) string {
	if token := TokenFromRequest(r); token != "" {
		return token
	}

	return r.URL.Query().Get(TokenQuery)
}
