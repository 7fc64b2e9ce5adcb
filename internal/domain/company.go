package domain

// Company is an employer that posts jobs.
type Company struct {
	Handle       string
	Name         string
	Description  string
	NumEmployees *int
	LogoURL      *string
	Jobs         []Job
}
