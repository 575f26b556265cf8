package domain

const (
	// Greeting is the body served from the root route.
	Greeting = "hello guys welcome to leetlab"

	// AuthPrefix is the fixed path the authentication route module is mounted under.
	AuthPrefix = "/api/v1/auth"
)
