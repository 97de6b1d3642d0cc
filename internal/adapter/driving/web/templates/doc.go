// Package templates holds the templ components that make up the HTML pages.
// Edit the .templ sources and regenerate with `go tool templ generate`.
package templates
