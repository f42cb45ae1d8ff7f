package lab

import (
	"context"
	"fmt"

	remoteRepo "pathlab/database/repository/remote"
	"pathlab/models"
)

func popular() *bool {
	v := true
	return &v
}

// SeedTests returns a fresh copy of the fixed starter catalog.
func SeedTests() []models.LabTest {
	return []models.LabTest{
		{
			ID:             "t1",
			Name:           "Complete Blood Count (CBC)",
			Description:    "Evaluates overall health and detects a wide range of disorders, including anemia, infection and leukemia.",
			Price:          499,
			Preparation:    "No fasting required.",
			TurnaroundTime: "12 Hours",
			Category:       models.CategoryBlood,
			Popular:        popular(),
		},
		{
			ID:             "t2",
			Name:           "Thyroid Profile (Total)",
			Description:    "Measures T3, T4, and TSH levels to check thyroid gland function.",
			Price:          899,
			Preparation:    "Fasting not strictly required, but recommended.",
			TurnaroundTime: "24 Hours",
			Category:       models.CategoryBlood,
			Popular:        popular(),
		},
		{
			ID:             "t3",
			Name:           "Lipid Profile",
			Description:    "Measures cholesterol and triglycerides to assess heart health risk.",
			Price:          750,
			Preparation:    "10-12 hours of fasting required.",
			TurnaroundTime: "24 Hours",
			Category:       models.CategoryBlood,
		},
		{
			ID:             "t4",
			Name:           "HbA1c (Glycosylated Hemoglobin)",
			Description:    "Average blood sugar level over the past 2-3 months. Critical for diabetes management.",
			Price:          600,
			Preparation:    "No fasting required.",
			TurnaroundTime: "6 Hours",
			Category:       models.CategoryBlood,
			Popular:        popular(),
		},
		{
			ID:             "t5",
			Name:           "Vitamin D (25-OH)",
			Description:    "Checks for Vitamin D deficiency which relates to bone health and immunity.",
			Price:          1200,
			Preparation:    "No fasting required.",
			TurnaroundTime: "24 Hours",
			Category:       models.CategoryBlood,
		},
		{
			ID:             "t6",
			Name:           "Complete Urine Analysis",
			Description:    "Detects urinary tract infections, kidney disease and diabetes.",
			Price:          350,
			Preparation:    "Morning mid-stream sample preferred.",
			TurnaroundTime: "12 Hours",
			Category:       models.CategoryUrine,
		},
		{
			ID:             "t7",
			Name:           "Full Body Checkup (Advanced)",
			Description:    "Comprehensive package including CBC, Liver Function, Kidney Function, Lipid, Glucose, and Urine.",
			Price:          2499,
			Preparation:    "12 hours fasting required.",
			TurnaroundTime: "24-36 Hours",
			Category:       models.CategoryCheckup,
			Popular:        popular(),
		},
	}
}

// SeedRemote inserts the starter catalog when the remote tests table is
// empty. It returns the number of inserted tests.
func SeedRemote(ctx context.Context, repo remoteRepo.Repository) (int, error) {
	existing, err := repo.ListTests(ctx)
	if err != nil {
		return 0, fmt.Errorf("list tests: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}
	seed := SeedTests()
	if err := repo.InsertTests(ctx, seed); err != nil {
		return 0, err
	}
	return len(seed), nil
}
