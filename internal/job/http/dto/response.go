// Package dto defines data transfer objects for the job posting HTTP API.
package dto

import (
	"time"

	"github.com/addislabs/placement/internal/job/domain"
)

// JobPostingResponse represents a job posting in API responses.
type JobPostingResponse struct {
	ID             string    `json:"id"`
	SponsorID      string    `json:"sponsor_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Country        string    `json:"country"`
	City           string    `json:"city"`
	SalaryAmount   int       `json:"salary_amount"`
	SalaryCurrency string    `json:"salary_currency"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MapJobPostingToResponse converts a domain JobPosting to a JobPostingResponse.
func MapJobPostingToResponse(job *domain.JobPosting) JobPostingResponse {
	return JobPostingResponse{
		ID:             job.ID.String(),
		SponsorID:      job.SponsorID.String(),
		Title:          job.Title,
		Description:    job.Description,
		Country:        job.Country,
		City:           job.City,
		SalaryAmount:   job.SalaryAmount,
		SalaryCurrency: job.SalaryCurrency,
		Status:         string(job.Status),
		CreatedAt:      job.CreatedAt,
		UpdatedAt:      job.UpdatedAt,
	}
}

// SearchJobPostingsResponse represents a paginated job posting search result.
type SearchJobPostingsResponse struct {
	Data  []JobPostingResponse `json:"data"`
	Total int                  `json:"total"`
}

// MapJobPostingsToSearchResponse converts domain JobPostings to a SearchJobPostingsResponse.
func MapJobPostingsToSearchResponse(jobs []*domain.JobPosting, total int) SearchJobPostingsResponse {
	data := make([]JobPostingResponse, len(jobs))
	for i, job := range jobs {
		data[i] = MapJobPostingToResponse(job)
	}
	return SearchJobPostingsResponse{Data: data, Total: total}
}
