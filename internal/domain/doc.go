// Package domain holds the stable names and sentinel errors of the API.
// Keep this package free of transport (HTTP) and infrastructure (Redis) concerns.
package domain
