package api

import (
	"context"
	"encoding/json"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AnonymousOwnerPrefix marks generated owner identities.
const AnonymousOwnerPrefix = "anon-"

// ResolveOwnerID returns the current user's identity. It tries the subject
// claim of the configured access token first, then the auth endpoint, and
// finally generates an anonymous id so spot creation never requires sign-in.
func (c *Client) ResolveOwnerID(ctx context.Context) string {
	if sub := subjectFromToken(c.accessToken); sub != "" {
		return sub
	}

	if id, err := c.currentUserID(ctx); err == nil && id != "" {
		return id
	}

	return AnonymousOwnerPrefix + uuid.NewString()
}

// subjectFromToken extracts the sub claim without verifying the signature.
// The backend verifies tokens on every request; locally the claim is only a
// display identity.
func subjectFromToken(token string) string {
	if token == "" {
		return ""
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return ""
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}

// currentUserID asks the auth endpoint for the signed-in user.
func (c *Client) currentUserID(ctx context.Context) (string, error) {
	body, err := c.get(ctx, "/auth/v1/user")
	if err != nil {
		return "", err
	}

	var user struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &user); err != nil {
		return "", err
	}
	return user.ID, nil
}
