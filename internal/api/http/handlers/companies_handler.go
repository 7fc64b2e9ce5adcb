package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ijpettengill/jobly/internal/api/dto"
	"github.com/ijpettengill/jobly/internal/repository"
)

// CompaniesHandler serves /companies.
type CompaniesHandler struct {
	service CompanyService
}

// NewCompaniesHandler constructs handler.
func NewCompaniesHandler(companyService CompanyService) *CompaniesHandler {
	return &CompaniesHandler{service: companyService}
}

// Create POST /companies.
func (h *CompaniesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCompanyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	company := req.Company()
	if err := h.service.Create(c.UserContext(), company); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"company": dto.NewCompanyResponse(company)})
}

// List GET /companies?name=&minEmployees=&maxEmployees=.
func (h *CompaniesHandler) List(c *fiber.Ctx) error {
	values, err := queryParams(c, "name", "minEmployees", "maxEmployees")
	if err != nil {
		return err
	}
	filter := repository.CompanyFilter{NameLike: optionalString(values, "name")}
	if filter.MinEmployees, err = optionalInt(values, "minEmployees"); err != nil {
		return err
	}
	if filter.MaxEmployees, err = optionalInt(values, "maxEmployees"); err != nil {
		return err
	}

	companies, err := h.service.FindAll(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		items = append(items, dto.NewCompanyResponse(&companies[i]))
	}
	return c.JSON(fiber.Map{"companies": items})
}

// Get GET /companies/:handle.
func (h *CompaniesHandler) Get(c *fiber.Ctx) error {
	company, err := h.service.Get(c.UserContext(), c.Params("handle"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"company": dto.NewCompanyDetailResponse(company)})
}

// Update PATCH /companies/:handle.
func (h *CompaniesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateCompanyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	company, err := h.service.Update(c.UserContext(), c.Params("handle"), req.Fields())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"company": dto.NewCompanyResponse(company)})
}

// Remove DELETE /companies/:handle.
func (h *CompaniesHandler) Remove(c *fiber.Ctx) error {
	handle := c.Params("handle")
	if err := h.service.Remove(c.UserContext(), handle); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"deleted": handle})
}
