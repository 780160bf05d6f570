package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/internal/application/usecase"
)

// CompanyHandler maneja las peticiones HTTP para empresas, miembros y módulos.
type CompanyHandler struct {
	uc      *usecase.CompanyUseCase
	members *usecase.MemberUseCase
	modules *usecase.ModuleService
}

// NewCompanyHandler construye el handler inyectando los casos de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase, members *usecase.MemberUseCase, modules *usecase.ModuleService) *CompanyHandler {
	return &CompanyHandler{uc: uc, members: members, modules: modules}
}

// Create godoc
// @Summary      Crear empresa
// @Description  El creador queda como company_admin con el plan por defecto.
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" {
		return validation(c, "name es requerido")
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Mine godoc
// @Summary      Membresías del usuario
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MembershipResponse
// @Router       /api/companies/mine [get]
func (h *CompanyHandler) Mine(c *fiber.Ctx) error {
	out, err := h.uc.Mine(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener empresa por ID
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.Get(c.Context(), GetSession(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetModule godoc
// @Summary      Activar o desactivar un módulo premium
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                true  "ID de la empresa"
// @Param        key   path  string                true  "Clave del módulo"
// @Param        body  body  dto.SetModuleRequest  true  "is_active, expires_at"
// @Success      204
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/modules/{key} [put]
func (h *CompanyHandler) SetModule(c *fiber.Ctx) error {
	var in dto.SetModuleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.modules.SetModule(c.Context(), GetSession(c), c.Params("id"), c.Params("key"), in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// InviteMember godoc
// @Summary      Invitar miembro
// @Tags         members
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InviteMemberRequest  true  "email, role, finance_access"
// @Success      201   {object}  dto.MemberResponse
// @Failure      402   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/members [post]
func (h *CompanyHandler) InviteMember(c *fiber.Ctx) error {
	var in dto.InviteMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Email == "" {
		return validation(c, "email es requerido")
	}
	out, err := h.members.Invite(c.Context(), GetSession(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateMember godoc
// @Summary      Actualizar miembro
// @Description  Cambia rol, acceso a finanzas o estado; las membresías nunca se borran.
// @Tags         members
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        userID  path  string                   true  "ID del usuario"
// @Param        body    body  dto.UpdateMemberRequest  true  "campos a cambiar"
// @Success      200     {object}  dto.MemberResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/members/{userID} [patch]
func (h *CompanyHandler) UpdateMember(c *fiber.Ctx) error {
	var in dto.UpdateMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.members.Update(c.Context(), GetSession(c), c.Params("userID"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
