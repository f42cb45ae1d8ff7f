package models

// Category groups lab tests in the catalog.
type Category string

const (
	CategoryBlood   Category = "Blood"
	CategoryUrine   Category = "Urine"
	CategoryImaging Category = "Imaging"
	CategoryCheckup Category = "Checkup"
)

// Categories lists every valid catalog category in display order.
var Categories = []Category{CategoryBlood, CategoryUrine, CategoryImaging, CategoryCheckup}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// LabTest is a single catalog entry offered by the lab.
type LabTest struct {
	ID             string   `bson:"id" json:"id"`
	Name           string   `bson:"name" json:"name" binding:"required"`
	Description    string   `bson:"description" json:"description"`
	Price          int      `bson:"price" json:"price" binding:"required,gt=0"` // whole rupees
	Preparation    string   `bson:"preparation" json:"preparation"`
	TurnaroundTime string   `bson:"turnaround_time" json:"turnaroundTime"` // e.g. "24 Hours"
	Category       Category `bson:"category" json:"category" binding:"required,oneof=Blood Urine Imaging Checkup"`
	Popular        *bool    `bson:"popular,omitempty" json:"popular,omitempty"`
}

// IsPopular treats an unset flag as false.
func (t LabTest) IsPopular() bool {
	return t.Popular != nil && *t.Popular
}
