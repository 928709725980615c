// Package dto provides data transfer objects for profile HTTP request and response handling.
package dto

import (
	"time"

	"github.com/addislabs/placement/internal/profile/domain"
)

// MaidProfileResponse represents a worker profile in API responses.
type MaidProfileResponse struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	FullName          string     `json:"full_name"`
	Nationality       string     `json:"nationality"`
	Languages         []string   `json:"languages"`
	Skills            []string   `json:"skills"`
	ExperienceYears   int        `json:"experience_years"`
	DateOfBirth       time.Time  `json:"date_of_birth"`
	Bio               string     `json:"bio"`
	PhotoURL          string     `json:"photo_url"`
	Verification      string     `json:"verification"`
	VerifiedAt        *time.Time `json:"verified_at,omitempty"`
	CompletionPercent int        `json:"completion_percent"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// MapMaidProfileToResponse converts a domain worker profile to an API response.
func MapMaidProfileToResponse(profile *domain.MaidProfile) MaidProfileResponse {
	return MaidProfileResponse{
		ID:                profile.ID.String(),
		UserID:            profile.UserID,
		FullName:          profile.FullName,
		Nationality:       profile.Nationality,
		Languages:         profile.Languages,
		Skills:            profile.Skills,
		ExperienceYears:   profile.ExperienceYears,
		DateOfBirth:       profile.DateOfBirth,
		Bio:               profile.Bio,
		PhotoURL:          profile.PhotoURL,
		Verification:      string(profile.Verification),
		VerifiedAt:        profile.VerifiedAt,
		CompletionPercent: profile.CompletionPercent(),
		CreatedAt:         profile.CreatedAt,
		UpdatedAt:         profile.UpdatedAt,
	}
}

// SearchMaidProfilesResponse represents a paginated worker profile search result.
type SearchMaidProfilesResponse struct {
	Data  []MaidProfileResponse `json:"data"`
	Total int                   `json:"total"`
}

// MapMaidProfilesToSearchResponse converts search results to an API response.
func MapMaidProfilesToSearchResponse(profiles []*domain.MaidProfile, total int) SearchMaidProfilesResponse {
	data := make([]MaidProfileResponse, 0, len(profiles))
	for _, profile := range profiles {
		data = append(data, MapMaidProfileToResponse(profile))
	}

	return SearchMaidProfilesResponse{
		Data:  data,
		Total: total,
	}
}

// SponsorProfileResponse represents a sponsor profile in API responses.
type SponsorProfileResponse struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	FullName          string     `json:"full_name"`
	Country           string     `json:"country"`
	City              string     `json:"city"`
	HouseholdSize     int        `json:"household_size"`
	Verification      string     `json:"verification"`
	VerifiedAt        *time.Time `json:"verified_at,omitempty"`
	CompletionPercent int        `json:"completion_percent"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// MapSponsorProfileToResponse converts a domain sponsor profile to an API response.
func MapSponsorProfileToResponse(profile *domain.SponsorProfile) SponsorProfileResponse {
	return SponsorProfileResponse{
		ID:                profile.ID.String(),
		UserID:            profile.UserID,
		FullName:          profile.FullName,
		Country:           profile.Country,
		City:              profile.City,
		HouseholdSize:     profile.HouseholdSize,
		Verification:      string(profile.Verification),
		VerifiedAt:        profile.VerifiedAt,
		CompletionPercent: profile.CompletionPercent(),
		CreatedAt:         profile.CreatedAt,
		UpdatedAt:         profile.UpdatedAt,
	}
}

// FavoriteMaidIDsResponse represents a sponsor's favorite worker profile IDs.
type FavoriteMaidIDsResponse struct {
	Data []string `json:"data"`
}

// AgencyProfileResponse represents an agency profile in API responses.
type AgencyProfileResponse struct {
	UserID            string     `json:"user_id"`
	AgencyName        string     `json:"agency_name"`
	LicenseNumber     string     `json:"license_number"`
	Country           string     `json:"country"`
	Website           string     `json:"website"`
	LicenseURL        string     `json:"license_url"`
	Verification      string     `json:"verification"`
	VerifiedAt        *time.Time `json:"verified_at,omitempty"`
	CompletionPercent int        `json:"completion_percent"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// MapAgencyProfileToResponse converts a domain agency profile to an API response.
func MapAgencyProfileToResponse(profile *domain.AgencyProfile) AgencyProfileResponse {
	return AgencyProfileResponse{
		UserID:            profile.UserID,
		AgencyName:        profile.AgencyName,
		LicenseNumber:     profile.LicenseNumber,
		Country:           profile.Country,
		Website:           profile.Website,
		LicenseURL:        profile.LicenseURL,
		Verification:      string(profile.Verification),
		VerifiedAt:        profile.VerifiedAt,
		CompletionPercent: profile.CompletionPercent(),
		CreatedAt:         profile.CreatedAt,
		UpdatedAt:         profile.UpdatedAt,
	}
}

// ListAgencyProfilesResponse represents a paginated list of agency profiles.
type ListAgencyProfilesResponse struct {
	Data []AgencyProfileResponse `json:"data"`
}

// MapAgencyProfilesToListResponse converts a slice of agency profiles to a list response.
func MapAgencyProfilesToListResponse(profiles []*domain.AgencyProfile) ListAgencyProfilesResponse {
	data := make([]AgencyProfileResponse, 0, len(profiles))
	for _, profile := range profiles {
		data = append(data, MapAgencyProfileToResponse(profile))
	}

	return ListAgencyProfilesResponse{
		Data: data,
	}
}
