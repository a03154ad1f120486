// Package identity resolves the per-request actor (who) and tenant (which
// family) from a verified bearer token, or from a development shim. The rest
// of the service trusts the resolved claims as given.
package identity

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the actor and tenant context attached to every request.
type Identity struct {
	Subject  string   `json:"sub"`
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	TenantID string   `json:"tenant"`
	Roles    []string `json:"roles"`
}

func (i *Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Resolver turns an incoming request into an Identity. Implementations are
// selected by configuration: TokenResolver in normal operation, MockResolver
// for local development.
type Resolver interface {
	Resolve(r *http.Request) (*Identity, error)
}

var (
	ErrNoAuthHeader  = errors.New("authorization header is required")
	ErrBadAuthFormat = errors.New("authorization header format must be Bearer {token}")
	ErrInvalidToken  = errors.New("invalid or expired token")
)

// TokenResolver validates HS256 bearer tokens and maps their claims,
// including the namespaced tenant/roles/email/name custom claims.
type TokenResolver struct {
	secret    []byte
	namespace string
}

func NewTokenResolver(secret, namespace string) *TokenResolver {
	return &TokenResolver{
		secret:    []byte(secret),
		namespace: strings.TrimSuffix(namespace, "/"),
	}
}

func (tr *TokenResolver) Resolve(r *http.Request) (*Identity, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, ErrNoAuthHeader
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, ErrBadAuthFormat
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return tr.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	email := tr.claimString(claims, "email")
	name := tr.claimString(claims, "name")
	if name == "" {
		name = email
	}

	return &Identity{
		Subject:  sub,
		Email:    email,
		Name:     name,
		TenantID: tr.claimString(claims, "tenant"),
		Roles:    tr.claimStrings(claims, "roles"),
	}, nil
}

// claimString reads a standard claim with the namespaced claim as fallback,
// the same precedence the token issuer rules use.
func (tr *TokenResolver) claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok && v != "" {
		return v
	}
	if v, ok := claims[tr.namespace+"/"+key].(string); ok {
		return v
	}
	return ""
}

func (tr *TokenResolver) claimStrings(claims jwt.MapClaims, key string) []string {
	raw, ok := claims[key]
	if !ok {
		raw, ok = claims[tr.namespace+"/"+key]
	}
	if !ok {
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// MockResolver is the local-only development shim: every request gets a
// fixed tenant and an admin role, no token needed. Never enable it in
// production.
type MockResolver struct {
	Tenant string
}

func (m *MockResolver) Resolve(r *http.Request) (*Identity, error) {
	ident := &Identity{
		Subject:  "auth0|mock-user",
		Email:    "dev@taskpilot.app",
		Name:     "Dev User",
		TenantID: m.Tenant,
		Roles:    []string{"admin"},
	}
	if v := r.Header.Get("X-Mock-Email"); v != "" {
		ident.Email = v
	}
	if v := r.Header.Get("X-Mock-Name"); v != "" {
		ident.Name = v
	}
	if v := r.Header.Get("X-Mock-Tenant"); v != "" {
		ident.TenantID = v
	}
	return ident, nil
}
