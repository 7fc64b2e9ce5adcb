package dto

import (
	"github.com/ijpettengill/jobly/internal/domain"
	"github.com/ijpettengill/jobly/pkg/util/sqlutil"
)

// CreateJobRequest payload for POST /jobs.
type CreateJobRequest struct {
	Title         string   `json:"title"`
	Salary        *int     `json:"salary"`
	Equity        *float64 `json:"equity"`
	CompanyHandle string   `json:"companyHandle"`
}

// Validate checks the new job.
func (r *CreateJobRequest) Validate() error {
	trim(&r.Title)
	trim(&r.CompanyHandle)

	v := violations{}
	v.length("title", r.Title, 1, 255)
	v.length("companyHandle", r.CompanyHandle, 1, 25)
	v.nonNegative("salary", r.Salary)
	v.fraction("equity", r.Equity)
	return v.err()
}

// Job converts the request into a domain value.
func (r *CreateJobRequest) Job() *domain.Job {
	return &domain.Job{
		Title:         r.Title,
		Salary:        r.Salary,
		Equity:        r.Equity,
		CompanyHandle: r.CompanyHandle,
	}
}

// UpdateJobRequest payload for PATCH /jobs/:id. The id and company cannot change.
type UpdateJobRequest struct {
	Title  *string  `json:"title"`
	Salary *int     `json:"salary"`
	Equity *float64 `json:"equity"`
}

// Validate checks the supplied fields.
func (r *UpdateJobRequest) Validate() error {
	trim(r.Title)

	v := violations{}
	v.optionalLength("title", r.Title, 1, 255)
	v.nonNegative("salary", r.Salary)
	v.fraction("equity", r.Equity)
	return v.err()
}

// Fields lists the supplied fields in declaration order.
func (r *UpdateJobRequest) Fields() []sqlutil.Field {
	var fields []sqlutil.Field
	if r.Title != nil {
		fields = append(fields, sqlutil.Field{Name: "title", Value: *r.Title})
	}
	if r.Salary != nil {
		fields = append(fields, sqlutil.Field{Name: "salary", Value: *r.Salary})
	}
	if r.Equity != nil {
		fields = append(fields, sqlutil.Field{Name: "equity", Value: *r.Equity})
	}
	return fields
}

// JobResponse is the public job shape.
type JobResponse struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Salary        *int     `json:"salary"`
	Equity        *float64 `json:"equity"`
	CompanyHandle string   `json:"companyHandle"`
}

// NewJobResponse maps a domain job.
func NewJobResponse(j *domain.Job) JobResponse {
	return JobResponse{
		ID:            j.ID,
		Title:         j.Title,
		Salary:        j.Salary,
		Equity:        j.Equity,
		CompanyHandle: j.CompanyHandle,
	}
}

// NewJobResponses maps a slice of jobs, never returning nil.
func NewJobResponses(jobs []domain.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, NewJobResponse(&jobs[i]))
	}
	return out
}
