package web

import (
	vm "github.com/ericfisherdev/petsearch/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/petsearch/internal/domain/model"
)

// toSearchResultsViewModel numbers the animals from 1.
func toSearchResultsViewModel(result model.SearchResult) vm.SearchResultsViewModel {
	animals := make([]vm.AnimalCardViewModel, 0, len(result.Animals))
	for i, a := range result.Animals {
		animals = append(animals, vm.AnimalCardViewModel{
			Number: i + 1,
			ID:     a.ID,
			Name:   a.Name,
			Breed:  a.Breed,
			Gender: a.Gender,
			Status: a.Status,
		})
	}

	return vm.SearchResultsViewModel{
		Query:   result.Query.Animals,
		Fact:    result.Fact,
		Animals: animals,
	}
}
