// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// AnimalCardViewModel holds one numbered entry of the search results.
type AnimalCardViewModel struct {
	Number int
	ID     string
	Name   string
	Breed  string
	Gender string
	Status string
}

// SearchResultsViewModel holds everything the results page renders. All
// fields are plain text; the templates escape them.
type SearchResultsViewModel struct {
	Query   string
	Fact    string
	Animals []AnimalCardViewModel
}

// ErrorViewModel holds the friendly failure page shown when a search cannot
// be completed.
type ErrorViewModel struct {
	StatusCode int
	Title      string
	Message    string
	Query      string
}
