// Package api provides the HTTP handlers for the learning-progress and
// reminder endpoints, plus the router wiring them behind JWT auth.
package api
