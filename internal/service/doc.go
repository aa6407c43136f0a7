// Package service implements the festival API operations.
//
// Services sit between handlers and repositories. Repositories are consumed
// through interfaces declared here (UserRepository, FestivalRepository) so
// tests can substitute in-memory fakes. Every error a service returns is one
// of the sentinels in errors.go, possibly wrapped with context.
//
//   - AuthService: signup, signin, username/email availability
//   - FriendService: symmetric friend links and listings
//   - FestivalService: liked and memory festival toggles and listings
//   - ProfileService: profile projection and partial updates
//   - PhotoService: photo staging and relay to an ImageHost
//
// The caller is identified by the token in the request body. Resolution goes
// through the Authenticator interface; OpaqueTokenAuth is the shipped
// strategy.
package service
