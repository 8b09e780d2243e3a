package models

// User is the second, flat resource served by this API (historically the
// "Mjeku" table). It carries no attachments.
type User struct {
	ID        int    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"column:name;type:varchar(200);not null" json:"name"`
	Specialty string `gorm:"column:specialty;type:varchar(200)" json:"specialty"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
