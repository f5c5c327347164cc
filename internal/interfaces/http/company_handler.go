package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/teasoo/esg-platform-api/internal/application/dto"
	"github.com/teasoo/esg-platform-api/internal/application/usecase"
	"github.com/teasoo/esg-platform-api/internal/domain"
	"github.com/teasoo/esg-platform-api/internal/domain/entity"
)

// CompanyHandler maneja lecturas, actualización y ciclo de vida de empresas.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler de empresas.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// List godoc
// @Summary      Listar todas las empresas
// @Tags         companies
// @Security     BearerAuth
// @Produce      json
// @Param        limit   query  int  false  "límite (default 50)"
// @Param        offset  query  int  false  "offset (default 0)"
// @Success      200     {array}   dto.CompanyResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/company/esg/all [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	companies, err := h.uc.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(companies)
}

// Me godoc
// @Summary      Empresa del usuario autenticado
// @Tags         companies
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/company/esg/me [get]
func (h *CompanyHandler) Me(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el usuario no pertenece a ninguna empresa"})
	}
	company, err := h.uc.GetByID(companyID)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la empresa no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(company)
}

// GetByID godoc
// @Summary      Obtener empresa por ID
// @Tags         companies
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/company/esg/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	// super_admin ve cualquier empresa; el resto solo la propia
	if GetRole(c) != entity.RoleSuperAdmin && GetCompanyID(c) != id {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no puede consultar empresas ajenas"})
	}
	company, err := h.uc.GetByID(id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la empresa no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(company)
}

// Update godoc
// @Summary      Actualizar empresa
// @Tags         companies
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la empresa"
// @Param        body  body  dto.UpdateCompanyRequest true  "campos a actualizar"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/company/esg/{id} [patch]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if GetCompanyID(c) != id {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no puede modificar empresas ajenas"})
	}
	var in dto.UpdateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	company, err := h.uc.Update(id, GetUserID(c), in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la empresa no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(company)
}

// UpdateStatus godoc
// @Summary      Transicionar estado de empresa
// @Tags         companies
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID de la empresa"
// @Param        body  body  dto.UpdateCompanyStatusRequest true  "status destino"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/company/esg/{id}/status [patch]
func (h *CompanyHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateCompanyStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	switch in.Status {
	case entity.CompanyStatusPending, entity.CompanyStatusActive, entity.CompanyStatusSuspended:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status debe ser pending, active o suspended"})
	}
	message, company, err := h.uc.UpdateStatus(c.Context(), id, in.Status)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la empresa no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": message, "company": company})
}
