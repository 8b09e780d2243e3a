package repository

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realo-api/internal/models"
)

func row(id int, title string, imageID int64, imageURL string) PropertyRow {
	r := PropertyRow{Property: models.Property{PropertyID: id, Title: title}}
	if imageID != 0 {
		r.ImageID = sql.NullInt64{Int64: imageID, Valid: true}
		r.ImageURL = sql.NullString{String: imageURL, Valid: true}
	}
	return r
}

func TestReshapeProperties_GroupsAndOrders(t *testing.T) {
	rows := []PropertyRow{
		row(1, "A", 0, ""),
		row(2, "B", 5, "x"),
		row(2, "B", 6, "y"),
	}

	properties := ReshapeProperties(rows)
	require.Len(t, properties, 2)

	assert.Equal(t, 1, properties[0].PropertyID)
	assert.Equal(t, []models.PropertyImage{}, properties[0].Images)

	assert.Equal(t, 2, properties[1].PropertyID)
	require.Len(t, properties[1].Images, 2)
	assert.Equal(t, models.PropertyImage{ImageID: 5, PropertyID: 2, ImageURL: "x"}, properties[1].Images[0])
	assert.Equal(t, models.PropertyImage{ImageID: 6, PropertyID: 2, ImageURL: "y"}, properties[1].Images[1])
}

func TestReshapeProperties_PreservesFirstSeenOrder(t *testing.T) {
	// Callers order newest-first; the reshaper must not re-sort.
	rows := []PropertyRow{
		row(9, "newest", 3, "c"),
		row(4, "middle", 1, "a"),
		row(4, "middle", 2, "b"),
		row(2, "oldest", 0, ""),
	}

	properties := ReshapeProperties(rows)
	require.Len(t, properties, 3)
	assert.Equal(t, 9, properties[0].PropertyID)
	assert.Equal(t, 4, properties[1].PropertyID)
	assert.Equal(t, 2, properties[2].PropertyID)
	assert.Len(t, properties[1].Images, 2)
	assert.Equal(t, "a", properties[1].Images[0].ImageURL)
	assert.Equal(t, "b", properties[1].Images[1].ImageURL)
}

func TestReshapeProperties_NullImageRowsCreateNoImages(t *testing.T) {
	rows := []PropertyRow{
		row(1, "lonely", 0, ""),
		row(1, "lonely", 0, ""),
	}

	properties := ReshapeProperties(rows)
	require.Len(t, properties, 1)
	assert.NotNil(t, properties[0].Images)
	assert.Empty(t, properties[0].Images)
}

func TestReshapeProperties_Empty(t *testing.T) {
	assert.Empty(t, ReshapeProperties(nil))
	assert.Empty(t, ReshapeProperties([]PropertyRow{}))
}

func TestReshapeProperties_KeepsScalarFields(t *testing.T) {
	p := models.Property{
		PropertyID:           3,
		Title:                "Villa",
		City:                 "Prishtina",
		Price:                "250.000",
		IsForSale:            true,
		Bedrooms:             4,
		Latitude:             42.66,
		HasOwnershipDocument: true,
	}
	rows := []PropertyRow{{Property: p}}

	properties := ReshapeProperties(rows)
	require.Len(t, properties, 1)
	got := properties[0]
	assert.Equal(t, "Villa", got.Title)
	assert.Equal(t, "Prishtina", got.City)
	assert.Equal(t, "250.000", got.Price, "price must round-trip verbatim")
	assert.True(t, got.IsForSale)
	assert.True(t, got.HasOwnershipDocument)
	assert.Equal(t, 4, got.Bedrooms)
	assert.Equal(t, 42.66, got.Latitude)
}
