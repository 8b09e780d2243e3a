package repository

import (
	"context"
	"database/sql"
	"fmt"

	"realo-api/internal/database"
	"realo-api/internal/models"
)

const propertyJoinColumns = `
	p.property_id, p.title, p.description, p.address, p.city, p.property_type,
	p.is_for_sale, p.is_for_rent, p.price, p.bedrooms, p.bathrooms, p.square_feet,
	p.has_ownership_document, p.furniture, p.latitude, p.longitude,
	i.image_id, i.image_url`

type PropertyRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

func NewPropertyRepository(db *sql.DB, dialect database.Dialect) *PropertyRepository {
	return &PropertyRepository{db: db, dialect: dialect}
}

func scanPropertyRows(rows *sql.Rows) ([]PropertyRow, error) {
	var out []PropertyRow
	for rows.Next() {
		var r PropertyRow
		p := &r.Property
		if err := rows.Scan(
			&p.PropertyID, &p.Title, &p.Description, &p.Address, &p.City, &p.PropertyType,
			&p.IsForSale, &p.IsForRent, &p.Price, &p.Bedrooms, &p.Bathrooms, &p.SquareFeet,
			&p.HasOwnershipDocument, &p.Furniture, &p.Latitude, &p.Longitude,
			&r.ImageID, &r.ImageURL,
		); err != nil {
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// List retrieves all properties with their images, newest property first,
// images ascending. An empty store yields an empty slice.
func (r *PropertyRepository) List(ctx context.Context) ([]models.Property, error) {
	query := r.dialect.Rebind(`
		SELECT` + propertyJoinColumns + `
		FROM properties p
		LEFT JOIN property_images i ON i.property_id = p.property_id
		ORDER BY p.property_id DESC, i.image_id ASC
	`)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	flat, err := scanPropertyRows(rows)
	if err != nil {
		return nil, err
	}
	return ReshapeProperties(flat), nil
}

// GetByID retrieves a single property with its images, or ErrNotFound.
func (r *PropertyRepository) GetByID(ctx context.Context, id int) (*models.Property, error) {
	query := r.dialect.Rebind(`
		SELECT` + propertyJoinColumns + `
		FROM properties p
		LEFT JOIN property_images i ON i.property_id = p.property_id
		WHERE p.property_id = ?
		ORDER BY i.image_id ASC
	`)

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query property: %w", err)
	}
	defer rows.Close()

	flat, err := scanPropertyRows(rows)
	if err != nil {
		return nil, err
	}

	properties := ReshapeProperties(flat)
	if len(properties) == 0 {
		return nil, ErrNotFound
	}
	return &properties[0], nil
}

// Create inserts a property and any supplied images in a single transaction
// and returns the generated id. A failed image insert rolls back the property.
func (r *PropertyRepository) Create(ctx context.Context, p *models.Property) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := r.insertProperty(ctx, tx, p)
	if err != nil {
		return 0, err
	}

	for _, img := range p.Images {
		if _, err := r.insertImage(ctx, tx, id, img.ImageURL); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return id, nil
}

func (r *PropertyRepository) insertProperty(ctx context.Context, tx *sql.Tx, p *models.Property) (int, error) {
	query := `
		INSERT INTO properties
			(title, description, address, city, property_type, is_for_sale, is_for_rent,
			 price, bedrooms, bathrooms, square_feet, has_ownership_document, furniture,
			 latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	args := []interface{}{
		p.Title, p.Description, p.Address, p.City, p.PropertyType, p.IsForSale, p.IsForRent,
		p.Price, p.Bedrooms, p.Bathrooms, p.SquareFeet, p.HasOwnershipDocument, p.Furniture,
		p.Latitude, p.Longitude,
	}

	if !r.dialect.SupportsLastInsertID() {
		var id int
		err := tx.QueryRowContext(ctx, r.dialect.Rebind(query+" RETURNING property_id"), args...).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("failed to insert property: %w", err)
		}
		return id, nil
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert property: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get property id: %w", err)
	}
	return int(id), nil
}

func (r *PropertyRepository) insertImage(ctx context.Context, tx *sql.Tx, propertyID int, url string) (int, error) {
	query := `INSERT INTO property_images (property_id, image_url) VALUES (?, ?)`

	if !r.dialect.SupportsLastInsertID() {
		var id int
		err := tx.QueryRowContext(ctx, r.dialect.Rebind(query+" RETURNING image_id"), propertyID, url).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("failed to insert image: %w", err)
		}
		return id, nil
	}

	result, err := tx.ExecContext(ctx, query, propertyID, url)
	if err != nil {
		return 0, fmt.Errorf("failed to insert image: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get image id: %w", err)
	}
	return int(id), nil
}

// Update overwrites every mutable column of a property and returns the number
// of rows matched, so callers can report a missing id distinctly.
func (r *PropertyRepository) Update(ctx context.Context, id int, p *models.Property) (int64, error) {
	query := r.dialect.Rebind(`
		UPDATE properties SET
			title = ?, description = ?, address = ?, city = ?, property_type = ?,
			is_for_sale = ?, is_for_rent = ?, price = ?, bedrooms = ?, bathrooms = ?,
			square_feet = ?, has_ownership_document = ?, furniture = ?,
			latitude = ?, longitude = ?
		WHERE property_id = ?`)

	result, err := r.db.ExecContext(ctx, query,
		p.Title, p.Description, p.Address, p.City, p.PropertyType,
		p.IsForSale, p.IsForRent, p.Price, p.Bedrooms, p.Bathrooms,
		p.SquareFeet, p.HasOwnershipDocument, p.Furniture,
		p.Latitude, p.Longitude, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update property: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return affected, nil
}

// Delete removes a property and its images in one transaction. Returns the
// number of property rows deleted; deleting an absent id is not an error.
func (r *PropertyRepository) Delete(ctx context.Context, id int) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, r.dialect.Rebind(
		`DELETE FROM property_images WHERE property_id = ?`), id); err != nil {
		return 0, fmt.Errorf("failed to delete property images: %w", err)
	}

	result, err := tx.ExecContext(ctx, r.dialect.Rebind(
		`DELETE FROM properties WHERE property_id = ?`), id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete property: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return affected, nil
}

// ListImages retrieves all images for a property, ascending by image id.
func (r *PropertyRepository) ListImages(ctx context.Context, propertyID int) ([]models.PropertyImage, error) {
	query := r.dialect.Rebind(`
		SELECT image_id, property_id, image_url
		FROM property_images
		WHERE property_id = ?
		ORDER BY image_id ASC`)

	rows, err := r.db.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query images: %w", err)
	}
	defer rows.Close()

	images := []models.PropertyImage{}
	for rows.Next() {
		var img models.PropertyImage
		if err := rows.Scan(&img.ImageID, &img.PropertyID, &img.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// MainImage retrieves the first image of a property, or ErrNotFound.
func (r *PropertyRepository) MainImage(ctx context.Context, propertyID int) (*models.PropertyImage, error) {
	query := r.dialect.Rebind(`
		SELECT image_id, property_id, image_url
		FROM property_images
		WHERE property_id = ?
		ORDER BY image_id ASC
		LIMIT 1`)

	var img models.PropertyImage
	err := r.db.QueryRowContext(ctx, query, propertyID).Scan(&img.ImageID, &img.PropertyID, &img.ImageURL)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query main image: %w", err)
	}
	return &img, nil
}

// AddImage inserts one image and returns the created row.
func (r *PropertyRepository) AddImage(ctx context.Context, propertyID int, url string) (*models.PropertyImage, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := r.insertImage(ctx, tx, propertyID, url)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.PropertyImage{ImageID: id, PropertyID: propertyID, ImageURL: url}, nil
}

// ReplaceImages deletes every image of a property and bulk-inserts the given
// URLs in one transaction. An empty list legitimately clears all images.
func (r *PropertyRepository) ReplaceImages(ctx context.Context, propertyID int, urls []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, r.dialect.Rebind(
		`DELETE FROM property_images WHERE property_id = ?`), propertyID); err != nil {
		return fmt.Errorf("failed to delete property images: %w", err)
	}

	for _, u := range urls {
		if _, err := r.insertImage(ctx, tx, propertyID, u); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteImage deletes an image only when it belongs to the given property;
// zero rows affected is ErrNotFound since a targeted delete denotes intent.
func (r *PropertyRepository) DeleteImage(ctx context.Context, propertyID, imageID int) error {
	query := r.dialect.Rebind(
		`DELETE FROM property_images WHERE image_id = ? AND property_id = ?`)

	result, err := r.db.ExecContext(ctx, query, imageID, propertyID)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
