package dispatcher

import (
	"context"
	"time"

	"github.com/MKhiriev/go-api-dispatch/models"
)

// Authenticator resolves a request token into an authentication outcome.
// Implementations must be safe for concurrent use.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) models.AuthResult
}

// AuthenticatorFunc adapts an ordinary function to [Authenticator].
type AuthenticatorFunc func(ctx context.Context, token string) models.AuthResult

// Authenticate implements [Authenticator].
func (f AuthenticatorFunc) Authenticate(ctx context.Context, token string) models.AuthResult {
	return f(ctx, token)
}

// Observer is notified after every dispatch.
//
// endpoint is empty for requests that did not match a registered endpoint,
// role is empty unless the caller was authenticated.
type Observer interface {
	ObserveDispatch(endpoint, method, role string, status int, elapsed time.Duration)
}
