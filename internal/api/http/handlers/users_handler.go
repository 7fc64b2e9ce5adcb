package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ijpettengill/jobly/internal/api/dto"
)

// UsersHandler serves /users.
type UsersHandler struct {
	service UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// Create POST /users. Returns the new user and a token for it.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, token, err := h.service.Create(c.UserContext(), req.Input(), req.IsAdmin)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"user":  dto.NewUserResponse(user),
		"token": token,
	})
}

// List GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.service.FindAll(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"users": items})
}

// Get GET /users/:username.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.service.Get(c.UserContext(), c.Params("username"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": dto.NewUserResponse(user)})
}

// Update PATCH /users/:username.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.service.Update(c.UserContext(), c.Params("username"), req.Fields())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": dto.NewUserResponse(user)})
}

// Remove DELETE /users/:username.
func (h *UsersHandler) Remove(c *fiber.Ctx) error {
	username := c.Params("username")
	if err := h.service.Remove(c.UserContext(), username); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"deleted": username})
}

// Apply POST /users/:username/jobs/:id.
func (h *UsersHandler) Apply(c *fiber.Ctx) error {
	jobID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Apply(c.UserContext(), c.Params("username"), jobID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"applied": jobID})
}
