package domain

// Job is a position posted by a company. Equity is a fraction in [0, 1].
type Job struct {
	ID            int
	Title         string
	Salary        *int
	Equity        *float64
	CompanyHandle string
}
