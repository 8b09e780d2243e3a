package models

// Property is a listing record. Price is stored as text and surfaced verbatim
// (values like "1.200,50" or pre-formatted strings must round-trip unchanged).
type Property struct {
	PropertyID           int     `gorm:"column:property_id;primaryKey;autoIncrement" json:"propertyId"`
	Title                string  `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Description          string  `gorm:"column:description;type:text" json:"description"`
	Address              string  `gorm:"column:address;type:varchar(255)" json:"address"`
	City                 string  `gorm:"column:city;type:varchar(100)" json:"city"`
	PropertyType         string  `gorm:"column:property_type;type:varchar(50)" json:"propertyType"`
	IsForSale            bool    `gorm:"column:is_for_sale;not null;default:false" json:"isForSale"`
	IsForRent            bool    `gorm:"column:is_for_rent;not null;default:false" json:"isForRent"`
	Price                string  `gorm:"column:price;type:varchar(100)" json:"price"`
	Bedrooms             int     `gorm:"column:bedrooms;not null;default:0" json:"bedrooms"`
	Bathrooms            int     `gorm:"column:bathrooms;not null;default:0" json:"bathrooms"`
	SquareFeet           int     `gorm:"column:square_feet;not null;default:0" json:"squareFeet"`
	HasOwnershipDocument bool    `gorm:"column:has_ownership_document;not null;default:false" json:"hasOwnershipDocument"`
	Furniture            string  `gorm:"column:furniture;type:varchar(100)" json:"furniture"`
	Latitude             float64 `gorm:"column:latitude;type:double" json:"latitude"`
	Longitude            float64 `gorm:"column:longitude;type:double" json:"longitude"`

	Images []PropertyImage `gorm:"foreignKey:PropertyID;references:PropertyID" json:"images"`
}

// TableName specifies the table name for Property
func (Property) TableName() string {
	return "properties"
}

// MainImage returns the URL of the first image, or "" when the listing has none.
func (p *Property) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].ImageURL
}
