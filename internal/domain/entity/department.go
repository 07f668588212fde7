package entity

// Department represents a hospital department
type Department struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Doctors []Doctor `gorm:"foreignKey:DepartmentID" json:"doctors,omitempty"`
}

func (Department) TableName() string {
	return "departments"
}
