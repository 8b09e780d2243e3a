package search

import (
	"strconv"

	"realo-api/internal/models"

	"github.com/meilisearch/meilisearch-go"
)

type SearchClient struct {
	client *meilisearch.Client
	index  string
}

func NewSearchClient(host, apiKey string) *SearchClient {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})

	return &SearchClient{
		client: client,
		index:  "properties",
	}
}

// InitIndex initializes the Meilisearch index
func (s *SearchClient) InitIndex() error {
	_, err := s.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        s.index,
		PrimaryKey: "propertyId",
	})
	// Ignore error if index already exists
	if err != nil && err.Error() != "index already exists" {
		return err
	}

	_, err = s.client.Index(s.index).UpdateSearchableAttributes(&[]string{
		"title",
		"description",
		"address",
		"city",
	})
	if err != nil {
		return err
	}

	_, err = s.client.Index(s.index).UpdateFilterableAttributes(&[]string{
		"city",
		"propertyType",
		"isForSale",
		"isForRent",
	})
	if err != nil {
		return err
	}

	_, err = s.client.Index(s.index).UpdateSortableAttributes(&[]string{
		"propertyId",
	})
	return err
}

// IndexProperty indexes a single property (images included, so previews and
// search results carry the main image without a second lookup)
func (s *SearchClient) IndexProperty(property *models.Property) error {
	_, err := s.client.Index(s.index).AddDocuments([]models.Property{*property})
	return err
}

// RemoveProperty removes a property document from the index
func (s *SearchClient) RemoveProperty(propertyID int) error {
	_, err := s.client.Index(s.index).DeleteDocument(strconv.Itoa(propertyID))
	return err
}

// Search searches for properties with basic options
func (s *SearchClient) Search(query string, limit int64) ([]models.Property, error) {
	return s.FilterSearch(FilterParams{Query: query, Limit: limit})
}

// parsePropertyFromHit converts a search hit to a Property
func parsePropertyFromHit(hit interface{}) models.Property {
	hitMap, ok := hit.(map[string]interface{})
	if !ok {
		return models.Property{}
	}

	property := models.Property{
		Title:        getString(hitMap, "title"),
		Description:  getString(hitMap, "description"),
		Address:      getString(hitMap, "address"),
		City:         getString(hitMap, "city"),
		PropertyType: getString(hitMap, "propertyType"),
		Price:        getString(hitMap, "price"),
		Furniture:    getString(hitMap, "furniture"),
		Images:       []models.PropertyImage{},
	}

	if id, ok := hitMap["propertyId"].(float64); ok {
		property.PropertyID = int(id)
	}
	if v, ok := hitMap["isForSale"].(bool); ok {
		property.IsForSale = v
	}
	if v, ok := hitMap["isForRent"].(bool); ok {
		property.IsForRent = v
	}
	if v, ok := hitMap["bedrooms"].(float64); ok {
		property.Bedrooms = int(v)
	}
	if v, ok := hitMap["bathrooms"].(float64); ok {
		property.Bathrooms = int(v)
	}
	if v, ok := hitMap["squareFeet"].(float64); ok {
		property.SquareFeet = int(v)
	}
	if v, ok := hitMap["hasOwnershipDocument"].(bool); ok {
		property.HasOwnershipDocument = v
	}
	if v, ok := hitMap["latitude"].(float64); ok {
		property.Latitude = v
	}
	if v, ok := hitMap["longitude"].(float64); ok {
		property.Longitude = v
	}

	if imgs, ok := hitMap["images"].([]interface{}); ok {
		for _, raw := range imgs {
			imgMap, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			img := models.PropertyImage{
				ImageURL:   getString(imgMap, "imageUrl"),
				PropertyID: property.PropertyID,
			}
			if id, ok := imgMap["imageId"].(float64); ok {
				img.ImageID = int(id)
			}
			property.Images = append(property.Images, img)
		}
	}

	return property
}

// getString safely extracts a string from map
func getString(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}
