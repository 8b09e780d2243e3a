package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realo-api/internal/database"
	"realo-api/internal/models"
)

var joinColumns = []string{
	"property_id", "title", "description", "address", "city", "property_type",
	"is_for_sale", "is_for_rent", "price", "bedrooms", "bathrooms", "square_feet",
	"has_ownership_document", "furniture", "latitude", "longitude",
	"image_id", "image_url",
}

func newMockRepo(t *testing.T) (*PropertyRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPropertyRepository(db, database.DialectMySQL), mock
}

func addJoinRow(rows *sqlmock.Rows, id int, title, city, price string, imageID, imageURL interface{}) {
	rows.AddRow(id, title, "", "", city, "", false, false, price, 0, 0, 0, false, "", 0.0, 0.0, imageID, imageURL)
}

func TestPropertyRepo_List(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows(joinColumns)
	addJoinRow(rows, 2, "B", "Prishtina", "120000", int64(5), "x")
	addJoinRow(rows, 2, "B", "Prishtina", "120000", int64(6), "y")
	addJoinRow(rows, 1, "A", "", "", nil, nil)
	mock.ExpectQuery("FROM properties p").WillReturnRows(rows)

	properties, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, properties, 2)
	assert.Equal(t, 2, properties[0].PropertyID)
	assert.Len(t, properties[0].Images, 2)
	assert.Equal(t, "x", properties[0].Images[0].ImageURL)
	assert.Equal(t, 1, properties[1].PropertyID)
	assert.Empty(t, properties[1].Images)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepo_List_EmptyStore(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("FROM properties p").WillReturnRows(sqlmock.NewRows(joinColumns))

	properties, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, properties)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepo_GetByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows(joinColumns)
	addJoinRow(rows, 7, "Villa", "Peja", "95.000", int64(3), "/uploads/a.jpg")
	mock.ExpectQuery("FROM properties p").WithArgs(7).WillReturnRows(rows)

	property, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, property.PropertyID)
	assert.Equal(t, "95.000", property.Price)
	require.Len(t, property.Images, 1)
	assert.Equal(t, "/uploads/a.jpg", property.Images[0].ImageURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepo_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("FROM properties p").WithArgs(99).WillReturnRows(sqlmock.NewRows(joinColumns))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepo_Create_WithImages(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO properties").WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO property_images").WithArgs(42, "a.jpg").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO property_images").WithArgs(42, "b.jpg").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	p := &models.Property{
		Title: "New place",
		Images: []models.PropertyImage{
			{ImageURL: "a.jpg"},
			{ImageURL: "b.jpg"},
		},
	}
	id, err := repo.Create(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 42, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepo_Create_RollsBackOnImageFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO properties").WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO property_images").WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	p := &models.Property{
		Title:  "New place",
		Images: []models.PropertyImage{{ImageURL: "a.jpg"}},
	}
	_, err := repo.Create(context.Background(), p)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepo_Update_ReportsAffectedRows(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
	}{
		{"existing row", 1},
		{"missing row", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			mock.ExpectExec("UPDATE properties SET").WillReturnResult(sqlmock.NewResult(0, tt.affected))

			affected, err := repo.Update(context.Background(), 7, &models.Property{Title: "T"})
			require.NoError(t, err)
			assert.Equal(t, tt.affected, affected)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPropertyRepo_Delete_RemovesImagesFirst(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM property_images WHERE").WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM properties WHERE").WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	affected, err := repo.Delete(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepo_Delete_MissingIDIsNotAnError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM property_images WHERE").WithArgs(99).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM properties WHERE").WithArgs(99).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	affected, err := repo.Delete(context.Background(), 99)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepo_ReplaceImages_EmptyListClears(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM property_images WHERE").WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repo.ReplaceImages(context.Background(), 7, nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepo_ReplaceImages_BulkInsert(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM property_images WHERE").WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO property_images").WithArgs(7, "a.jpg").WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectExec("INSERT INTO property_images").WithArgs(7, "b.jpg").WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()

	err := repo.ReplaceImages(context.Background(), 7, []string{"a.jpg", "b.jpg"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepo_ReplaceImages_RollsBackOnFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM property_images WHERE").WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO property_images").WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := repo.ReplaceImages(context.Background(), 7, []string{"a.jpg"})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepo_DeleteImage(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("DELETE FROM property_images WHERE").WithArgs(5, 7).WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeleteImage(context.Background(), 7, 5)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepo_DeleteImage_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("DELETE FROM property_images WHERE").WithArgs(5, 7).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteImage(context.Background(), 7, 5)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepo_ListImages_EmptyIsNotAnError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("FROM property_images").WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"image_id", "property_id", "image_url"}))

	images, err := repo.ListImages(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, images)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepo_MainImage(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("FROM property_images").WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"image_id", "property_id", "image_url"}).
			AddRow(3, 7, "a.jpg"))

	img, err := repo.MainImage(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, &models.PropertyImage{ImageID: 3, PropertyID: 7, ImageURL: "a.jpg"}, img)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepo_MainImage_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("FROM property_images").WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"image_id", "property_id", "image_url"}))

	_, err := repo.MainImage(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepo_AddImage(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO property_images").WithArgs(7, "new.jpg").WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectCommit()

	img, err := repo.AddImage(context.Background(), 7, "new.jpg")
	require.NoError(t, err)
	assert.Equal(t, &models.PropertyImage{ImageID: 12, PropertyID: 7, ImageURL: "new.jpg"}, img)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepo_PostgresUsesReturning(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPropertyRepository(db, database.DialectPostgres)

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)INSERT INTO properties.+RETURNING property_id`).
		WillReturnRows(sqlmock.NewRows([]string{"property_id"}).AddRow(42))
	mock.ExpectCommit()

	id, err := repo.Create(context.Background(), &models.Property{Title: "T"})
	require.NoError(t, err)
	assert.Equal(t, 42, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}
