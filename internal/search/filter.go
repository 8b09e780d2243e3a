package search

import (
	"fmt"
	"strings"

	"realo-api/internal/models"

	"github.com/meilisearch/meilisearch-go"
)

type FilterParams struct {
	Query        string
	City         string
	PropertyType string
	ForSale      *bool
	ForRent      *bool
	Limit        int64
}

// FilterSearch performs a search with optional attribute filters
func (s *SearchClient) FilterSearch(params FilterParams) ([]models.Property, error) {
	var filters []string

	if params.City != "" {
		filters = append(filters, fmt.Sprintf("city = %q", params.City))
	}
	if params.PropertyType != "" {
		filters = append(filters, fmt.Sprintf("propertyType = %q", params.PropertyType))
	}
	if params.ForSale != nil {
		filters = append(filters, fmt.Sprintf("isForSale = %t", *params.ForSale))
	}
	if params.ForRent != nil {
		filters = append(filters, fmt.Sprintf("isForRent = %t", *params.ForRent))
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	searchReq := &meilisearch.SearchRequest{
		Limit: limit,
	}
	if len(filters) > 0 {
		searchReq.Filter = strings.Join(filters, " AND ")
	}

	searchRes, err := s.client.Index(s.index).Search(params.Query, searchReq)
	if err != nil {
		return nil, err
	}

	properties := make([]models.Property, 0, len(searchRes.Hits))
	for _, hit := range searchRes.Hits {
		properties = append(properties, parsePropertyFromHit(hit))
	}
	return properties, nil
}
