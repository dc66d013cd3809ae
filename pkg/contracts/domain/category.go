package domain

import "strings"

// Category identifies one of the supported UIDAI dataset schemas.
type Category string

const (
	// CategoryEnrolment covers new Aadhaar enrolment counts.
	CategoryEnrolment Category = "enrolment"
	// CategoryBiometric covers biometric update counts.
	CategoryBiometric Category = "biometric"
	// CategoryDemographic covers demographic update counts.
	CategoryDemographic Category = "demographic"
)

// Dataset directory names as published by the UIDAI data portal.
const (
	EnrolmentDir   = "api_data_aadhar_enrolment"
	BiometricDir   = "api_data_aadhar_biometric"
	DemographicDir = "api_data_aadhar_demographic"
)

// Categories lists every supported category.
func Categories() []Category {
	return []Category{CategoryEnrolment, CategoryBiometric, CategoryDemographic}
}

// Dir returns the dataset subdirectory for the category.
func (c Category) Dir() string {
	switch c {
	case CategoryEnrolment:
		return EnrolmentDir
	case CategoryBiometric:
		return BiometricDir
	case CategoryDemographic:
		return DemographicDir
	}
	return string(c)
}

// ParseCategory resolves a category identifier. It accepts both the short
// identifier ("enrolment") and the portal directory name
// ("api_data_aadhar_enrolment").
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(CategoryEnrolment), "enrollment", EnrolmentDir:
		return CategoryEnrolment, true
	case string(CategoryBiometric), "biometric-update", BiometricDir:
		return CategoryBiometric, true
	case string(CategoryDemographic), "demographic-update", DemographicDir:
		return CategoryDemographic, true
	}
	return "", false
}
