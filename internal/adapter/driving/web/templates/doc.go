// Package templates holds the templ components of the dashboard page.
// Regenerate the *_templ.go files with `go tool templ generate`.
package templates
