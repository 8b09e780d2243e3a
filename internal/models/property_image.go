package models

// PropertyImage represents an image associated with a property
type PropertyImage struct {
	ImageID    int    `gorm:"column:image_id;primaryKey;autoIncrement" json:"imageId"`
	PropertyID int    `gorm:"column:property_id;not null;index" json:"propertyId"`
	ImageURL   string `gorm:"column:image_url;type:varchar(1000);not null" json:"imageUrl"`
}

// TableName specifies the table name for PropertyImage
func (PropertyImage) TableName() string {
	return "property_images"
}
