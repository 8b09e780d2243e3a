package repository

import (
	"database/sql"

	"realo-api/internal/models"
)

// PropertyRow is one flat row of the properties LEFT JOIN property_images
// query. Rows on the non-matching side of the join carry null image columns.
type PropertyRow struct {
	Property models.Property
	ImageID  sql.NullInt64
	ImageURL sql.NullString
}

// ReshapeProperties groups flat join rows into properties with nested image
// lists. Property order is first-seen order of the input; image order is the
// row order within each property. A row with a null image id contributes the
// property only, never a spurious image entry.
func ReshapeProperties(rows []PropertyRow) []models.Property {
	index := make(map[int]int, len(rows))
	properties := make([]models.Property, 0, len(rows))

	for _, r := range rows {
		id := r.Property.PropertyID
		pos, seen := index[id]
		if !seen {
			p := r.Property
			p.Images = []models.PropertyImage{}
			properties = append(properties, p)
			pos = len(properties) - 1
			index[id] = pos
		}

		if r.ImageID.Valid {
			properties[pos].Images = append(properties[pos].Images, models.PropertyImage{
				ImageID:    int(r.ImageID.Int64),
				PropertyID: id,
				ImageURL:   r.ImageURL.String,
			})
		}
	}

	return properties
}
