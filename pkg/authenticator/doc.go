// Package authenticator defines the interface for Vidzel login mechanisms.
//
// Authenticators turn submitted credentials into an account. They are
// registered on a Registry and must be enabled before the login endpoint
// will use them.
//
// # Built-in Authenticators
//
//   - authn: email and password, verified against a bcrypt hash - see
//     [github.com/vidzel/vidzel/pkg/authenticator/authn]
package authenticator
