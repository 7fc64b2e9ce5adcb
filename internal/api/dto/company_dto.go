package dto

import (
	"github.com/ijpettengill/jobly/internal/domain"
	"github.com/ijpettengill/jobly/pkg/util/sqlutil"
)

// CreateCompanyRequest payload for POST /companies.
type CreateCompanyRequest struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	NumEmployees *int    `json:"numEmployees"`
	LogoURL      *string `json:"logoUrl"`
}

// Validate checks the new company.
func (r *CreateCompanyRequest) Validate() error {
	trim(&r.Handle)
	trim(&r.Name)

	v := violations{}
	v.length("handle", r.Handle, 1, 25)
	v.length("name", r.Name, 1, 255)
	v.nonNegative("numEmployees", r.NumEmployees)
	v.uri("logoUrl", r.LogoURL)
	return v.err()
}

// Company converts the request into a domain value.
func (r *CreateCompanyRequest) Company() *domain.Company {
	return &domain.Company{
		Handle:       r.Handle,
		Name:         r.Name,
		Description:  r.Description,
		NumEmployees: r.NumEmployees,
		LogoURL:      r.LogoURL,
	}
}

// UpdateCompanyRequest payload for PATCH /companies/:handle. The handle cannot change.
type UpdateCompanyRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	NumEmployees *int    `json:"numEmployees"`
	LogoURL      *string `json:"logoUrl"`
}

// Validate checks the supplied fields.
func (r *UpdateCompanyRequest) Validate() error {
	trim(r.Name)

	v := violations{}
	v.optionalLength("name", r.Name, 1, 255)
	v.nonNegative("numEmployees", r.NumEmployees)
	v.uri("logoUrl", r.LogoURL)
	return v.err()
}

// Fields lists the supplied fields in declaration order.
func (r *UpdateCompanyRequest) Fields() []sqlutil.Field {
	var fields []sqlutil.Field
	if r.Name != nil {
		fields = append(fields, sqlutil.Field{Name: "name", Value: *r.Name})
	}
	if r.Description != nil {
		fields = append(fields, sqlutil.Field{Name: "description", Value: *r.Description})
	}
	if r.NumEmployees != nil {
		fields = append(fields, sqlutil.Field{Name: "numEmployees", Value: *r.NumEmployees})
	}
	if r.LogoURL != nil {
		fields = append(fields, sqlutil.Field{Name: "logoUrl", Value: *r.LogoURL})
	}
	return fields
}

// CompanyResponse is the public company shape.
type CompanyResponse struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	NumEmployees *int    `json:"numEmployees"`
	LogoURL      *string `json:"logoUrl"`
}

// CompanyDetailResponse adds the company's jobs.
type CompanyDetailResponse struct {
	CompanyResponse
	Jobs []JobResponse `json:"jobs"`
}

// NewCompanyResponse maps a domain company.
func NewCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		Handle:       c.Handle,
		Name:         c.Name,
		Description:  c.Description,
		NumEmployees: c.NumEmployees,
		LogoURL:      c.LogoURL,
	}
}

// NewCompanyDetailResponse maps a domain company with its jobs.
func NewCompanyDetailResponse(c *domain.Company) CompanyDetailResponse {
	jobs := make([]JobResponse, 0, len(c.Jobs))
	for i := range c.Jobs {
		jobs = append(jobs, NewJobResponse(&c.Jobs[i]))
	}
	return CompanyDetailResponse{CompanyResponse: NewCompanyResponse(c), Jobs: jobs}
}
