package model

// MaxAnimals caps how many listings a single search returns.
const MaxAnimals = 10

// SearchQuery is the raw user input from the search form. Animals is
// forwarded verbatim as the upstream type filter.
type SearchQuery struct {
	Animals string
}

// AnimalRecord is the projection of an upstream adoption listing that the
// results page displays.
type AnimalRecord struct {
	ID     string
	Breed  string
	Gender string
	Name   string
	Status string
}

// TriviaFact is an opaque piece of trivia text.
type TriviaFact struct {
	Fact string `json:"fact"`
}

// SearchResult bundles everything the results page needs.
type SearchResult struct {
	Query   SearchQuery
	Fact    string
	Animals []AnimalRecord
}

// TruncateAnimals returns at most MaxAnimals records, preserving order.
func TruncateAnimals(animals []AnimalRecord) []AnimalRecord {
	if len(animals) > MaxAnimals {
		return animals[:MaxAnimals]
	}
	return animals
}
