// Package domain defines the profile entities for the three marketplace roles.
//
// Each profile owns a 1:1 relationship to a user account. Worker and sponsor
// profiles are keyed by a native UUID; agency profiles are keyed by the
// account ID itself, which is a string.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/addislabs/placement/internal/errors"
)

// Verification represents the admin review state of a profile.
// Transitions are one-directional: pending may move to verified or rejected,
// and neither outcome reverts.
type Verification string

// Supported verification states.
const (
	VerificationPending  Verification = "pending"
	VerificationVerified Verification = "verified"
	VerificationRejected Verification = "rejected"
)

// MaidProfile carries the worker-side attributes shown to sponsors during
// search.
type MaidProfile struct {
	ID              uuid.UUID
	UserID          string
	FullName        string
	Nationality     string
	Languages       []string
	Skills          []string
	ExperienceYears int
	DateOfBirth     time.Time
	Bio             string
	PhotoURL        string
	Verification    Verification
	VerifiedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CompletionPercent reports how much of the profile has been filled in,
// as a whole percentage. Sponsors see completeness in search results, so
// the calculation covers exactly the fields they see.
func (p *MaidProfile) CompletionPercent() int {
	fields := []bool{
		p.FullName != "",
		p.Nationality != "",
		len(p.Languages) > 0,
		len(p.Skills) > 0,
		p.ExperienceYears > 0,
		!p.DateOfBirth.IsZero(),
		p.Bio != "",
		p.PhotoURL != "",
	}

	filled := 0
	for _, ok := range fields {
		if ok {
			filled++
		}
	}

	return filled * 100 / len(fields)
}

// Verify marks the profile as verified by an admin. Only pending profiles
// can be verified.
func (p *MaidProfile) Verify() error {
	if p.Verification != VerificationPending {
		return ErrVerificationDecided
	}
	now := time.Now().UTC()
	p.Verification = VerificationVerified
	p.VerifiedAt = &now
	return nil
}

// RejectVerification marks the profile as rejected by an admin. Only pending
// profiles can be rejected.
func (p *MaidProfile) RejectVerification() error {
	if p.Verification != VerificationPending {
		return ErrVerificationDecided
	}
	p.Verification = VerificationRejected
	return nil
}

// SponsorProfile carries the employer-side attributes.
type SponsorProfile struct {
	ID            uuid.UUID
	UserID        string
	FullName      string
	Country       string
	City          string
	HouseholdSize int
	Verification  Verification
	VerifiedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CompletionPercent reports how much of the profile has been filled in.
func (p *SponsorProfile) CompletionPercent() int {
	fields := []bool{
		p.FullName != "",
		p.Country != "",
		p.City != "",
		p.HouseholdSize > 0,
	}

	filled := 0
	for _, ok := range fields {
		if ok {
			filled++
		}
	}

	return filled * 100 / len(fields)
}

// Verify marks the profile as verified by an admin.
func (p *SponsorProfile) Verify() error {
	if p.Verification != VerificationPending {
		return ErrVerificationDecided
	}
	now := time.Now().UTC()
	p.Verification = VerificationVerified
	p.VerifiedAt = &now
	return nil
}

// RejectVerification marks the profile as rejected by an admin.
func (p *SponsorProfile) RejectVerification() error {
	if p.Verification != VerificationPending {
		return ErrVerificationDecided
	}
	p.Verification = VerificationRejected
	return nil
}

// AgencyProfile carries the recruitment agency attributes. Unlike the other
// profiles it is keyed directly by the owning account ID.
type AgencyProfile struct {
	UserID        string
	AgencyName    string
	LicenseNumber string
	Country       string
	Website       string
	LicenseURL    string
	Verification  Verification
	VerifiedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CompletionPercent reports how much of the profile has been filled in.
func (p *AgencyProfile) CompletionPercent() int {
	fields := []bool{
		p.AgencyName != "",
		p.LicenseNumber != "",
		p.Country != "",
		p.Website != "",
		p.LicenseURL != "",
	}

	filled := 0
	for _, ok := range fields {
		if ok {
			filled++
		}
	}

	return filled * 100 / len(fields)
}

// Verify marks the profile as verified by an admin.
func (p *AgencyProfile) Verify() error {
	if p.Verification != VerificationPending {
		return ErrVerificationDecided
	}
	now := time.Now().UTC()
	p.Verification = VerificationVerified
	p.VerifiedAt = &now
	return nil
}

// RejectVerification marks the profile as rejected by an admin.
func (p *AgencyProfile) RejectVerification() error {
	if p.Verification != VerificationPending {
		return ErrVerificationDecided
	}
	p.Verification = VerificationRejected
	return nil
}

// Domain-specific errors for profile operations.
var (
	// ErrMaidProfileNotFound indicates the requested worker profile does not exist.
	ErrMaidProfileNotFound = errors.Wrap(errors.ErrNotFound, "maid profile not found")

	// ErrSponsorProfileNotFound indicates the requested sponsor profile does not exist.
	ErrSponsorProfileNotFound = errors.Wrap(errors.ErrNotFound, "sponsor profile not found")

	// ErrAgencyProfileNotFound indicates the requested agency profile does not exist.
	ErrAgencyProfileNotFound = errors.Wrap(errors.ErrNotFound, "agency profile not found")

	// ErrVerificationDecided indicates the profile review already reached an outcome.
	ErrVerificationDecided = errors.Wrap(errors.ErrInvalidTransition, "profile verification already decided")

	// ErrFavoriteNotFound indicates the sponsor has not favorited the worker.
	ErrFavoriteNotFound = errors.Wrap(errors.ErrNotFound, "favorite not found")
)
