package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/teasoo/esg-platform-api/internal/application/dto"
	"github.com/teasoo/esg-platform-api/internal/application/usecase"
	"github.com/teasoo/esg-platform-api/internal/domain"
)

// DepartmentHandler maneja el CRUD de departamentos con alcance de empresa.
type DepartmentHandler struct {
	uc *usecase.DepartmentUseCase
}

// NewDepartmentHandler construye el handler de departamentos.
func NewDepartmentHandler(uc *usecase.DepartmentUseCase) *DepartmentHandler {
	return &DepartmentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear departamento
// @Tags         departments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDepartmentRequest  true  "name requerido"
// @Success      201   {object}  dto.DepartmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/departments [post]
func (h *DepartmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDepartmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	dept, err := h.uc.Create(GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dept)
}

// List godoc
// @Summary      Listar departamentos de la empresa del caller
// @Tags         departments
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  dto.DepartmentResponse
// @Router       /api/departments [get]
func (h *DepartmentHandler) List(c *fiber.Ctx) error {
	depts, err := h.uc.List(GetCompanyID(c))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(depts)
}

// Get godoc
// @Summary      Obtener departamento
// @Tags         departments
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "ID del departamento"
// @Success      200  {object}  dto.DepartmentResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/departments/{id} [get]
func (h *DepartmentHandler) Get(c *fiber.Ctx) error {
	dept, err := h.uc.Get(c.Params("id"), GetCompanyID(c))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(dept)
}

// Update godoc
// @Summary      Actualizar departamento
// @Tags         departments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del departamento"
// @Param        body  body  dto.UpdateDepartmentRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.DepartmentResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/departments/{id} [patch]
func (h *DepartmentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDepartmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	dept, err := h.uc.Update(c.Params("id"), GetCompanyID(c), in)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(dept)
}

// Delete godoc
// @Summary      Eliminar departamento
// @Tags         departments
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "ID del departamento"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/departments/{id} [delete]
func (h *DepartmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id"), GetCompanyID(c)); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "departamento eliminado"})
}

func (h *DepartmentHandler) mapError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el departamento no existe"})
	case domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el departamento pertenece a otra empresa"})
	case domain.ErrUserNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "el usuario no existe"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
