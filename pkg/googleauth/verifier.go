package googleauth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// Verifier validates a third-party identity token and yields the verified
// email address it carries.
type Verifier interface {
	VerifyEmail(ctx context.Context, token string) (string, error)
}

// GoogleVerifier validates Google-issued ID tokens against the configured
// OAuth client ID.
type GoogleVerifier struct {
	clientID string
}

// NewVerifier creates a new GoogleVerifier
func NewVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

// VerifyEmail validates the ID token signature and audience and returns the
// email claim.
func (v *GoogleVerifier) VerifyEmail(ctx context.Context, token string) (string, error) {
	payload, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return "", fmt.Errorf("failed to validate google token: %w", err)
	}

	email, ok := payload.Claims["email"].(string)
	if !ok || email == "" {
		return "", fmt.Errorf("google token has no email claim")
	}

	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return "", fmt.Errorf("google account email is not verified")
	}

	return email, nil
}
