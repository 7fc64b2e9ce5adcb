package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ijpettengill/jobly/internal/api/dto"
	"github.com/ijpettengill/jobly/internal/repository"
)

// JobsHandler serves /jobs.
type JobsHandler struct {
	service JobService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobService JobService) *JobsHandler {
	return &JobsHandler{service: jobService}
}

// Create POST /jobs.
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateJobRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	job := req.Job()
	if err := h.service.Create(c.UserContext(), job, actor(c)); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"job": dto.NewJobResponse(job)})
}

// List GET /jobs?title=&minSalary=&hasEquity=.
func (h *JobsHandler) List(c *fiber.Ctx) error {
	values, err := queryParams(c, "title", "minSalary", "hasEquity")
	if err != nil {
		return err
	}
	filter := repository.JobFilter{Title: optionalString(values, "title")}
	if filter.MinSalary, err = optionalInt(values, "minSalary"); err != nil {
		return err
	}
	if filter.HasEquity, err = optionalBool(values, "hasEquity"); err != nil {
		return err
	}

	jobs, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"jobs": dto.NewJobResponses(jobs)})
}

// Get GET /jobs/:id.
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	job, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"job": dto.NewJobResponse(job)})
}

// Update PATCH /jobs/:id.
func (h *JobsHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateJobRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	job, err := h.service.Update(c.UserContext(), id, req.Fields())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"job": dto.NewJobResponse(job)})
}

// Remove DELETE /jobs/:id.
func (h *JobsHandler) Remove(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Remove(c.UserContext(), id, actor(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"deleted": strconv.Itoa(id)})
}
