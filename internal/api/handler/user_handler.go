package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oncallhq/user-directory/internal/api/metrics"
	"github.com/oncallhq/user-directory/internal/core/domain"
	"github.com/oncallhq/user-directory/internal/core/ports"
)

// UserHandler handles HTTP requests for directory operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /api/users/list and returns every record in the directory.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Success      200  {object}  listUsersResponse
// @Failure      401  {object}  errorResponse
// @Router       /users/list [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context(), ctxCaller(c))
	if err != nil {
		return observe("list", err)
	}

	metrics.UserOperationsTotal.WithLabelValues("list", "success").Inc()
	return c.JSON(http.StatusOK, listUsersResponse{
		Success:    true,
		Users:      users,
		TotalCount: len(users),
	})
}

// Search handles GET /api/users/search, the filtered directory lookup.
//
// @Summary      Search users by email, name and role
// @Tags         users
// @Produce      json
// @Param        email  query     string  false  "Email substring filter"
// @Param        name   query     string  false  "Name substring filter"
// @Param        role   query     string  false  "Role substring filter"
// @Success      200    {object}  searchUsersResponse
// @Failure      401    {object}  errorResponse
// @Router       /users/search [get]
func (h *UserHandler) Search(c echo.Context) error {
	criteria := searchCriteria{
		Email: c.QueryParam("email"),
		Name:  c.QueryParam("name"),
		Role:  c.QueryParam("role"),
	}

	users, err := h.service.Search(c.Request().Context(), ctxCaller(c), ports.SearchFilters{
		Email: criteria.Email,
		Name:  criteria.Name,
		Role:  criteria.Role,
	})
	if err != nil {
		return observe("search", err)
	}

	metrics.UserOperationsTotal.WithLabelValues("search", "success").Inc()
	return c.JSON(http.StatusOK, searchUsersResponse{
		Success:        true,
		Users:          users,
		TotalCount:     len(users),
		SearchCriteria: criteria,
	})
}

// Get handles GET /api/users/get/:id and returns a single record.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  getUserResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/get/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), ctxCaller(c), c.Param("id"))
	if err != nil {
		return observe("get", err)
	}

	metrics.UserOperationsTotal.WithLabelValues("get", "success").Inc()
	return c.JSON(http.StatusOK, getUserResponse{Success: true, User: *user})
}

// Create handles POST /api/users/create, the admin-only record creation.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "New user"
// @Success      201   {object}  mutateUserResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /users/create [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.Create(c.Request().Context(), ctxCaller(c), ports.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		return observe("create", err)
	}

	metrics.UserOperationsTotal.WithLabelValues("create", "success").Inc()
	return c.JSON(http.StatusCreated, mutateUserResponse{
		Success: true,
		Message: "User created successfully",
		User:    *user,
	})
}

// Update handles PUT /api/users/update/:id, a partial update of a record.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  mutateUserResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/update/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.Update(c.Request().Context(), ctxCaller(c), c.Param("id"), ports.UpdateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		return observe("update", err)
	}

	metrics.UserOperationsTotal.WithLabelValues("update", "success").Inc()
	return c.JSON(http.StatusOK, mutateUserResponse{
		Success: true,
		Message: "User updated successfully",
		User:    *user,
	})
}

// Delete handles DELETE /api/users/delete/:id, the admin-only removal.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  deleteUserResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/delete/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	snapshot, err := h.service.Delete(c.Request().Context(), ctxCaller(c), c.Param("id"))
	if err != nil {
		return observe("delete", err)
	}

	metrics.UserOperationsTotal.WithLabelValues("delete", "success").Inc()
	return c.JSON(http.StatusOK, deleteUserResponse{
		Success:     true,
		Message:     "User deleted successfully",
		DeletedUser: *snapshot,
	})
}

// observe records the failed operation with a coarse outcome label, then
// passes the error through to the central error handler unchanged.
func observe(operation string, err error) error {
	outcome := "error"

	var forbidden *domain.ForbiddenError
	var invalid *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated), errors.As(err, &forbidden):
		outcome = "denied"
	case errors.Is(err, domain.ErrUserNotFound):
		outcome = "not_found"
	case errors.As(err, &invalid), errors.Is(err, domain.ErrEmailExists):
		outcome = "invalid"
	}

	metrics.UserOperationsTotal.WithLabelValues(operation, outcome).Inc()
	return err
}
