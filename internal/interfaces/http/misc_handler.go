package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/internal/application/usecase"
)

// MiscHandler coaching, preferencias de UI y estado del gateway de IA.
type MiscHandler struct {
	coaching *usecase.CoachingUseCase
	prefs    *usecase.PreferencesUseCase
	ai       *usecase.AIUseCase
}

// NewMiscHandler construye el handler.
func NewMiscHandler(coaching *usecase.CoachingUseCase, prefs *usecase.PreferencesUseCase, ai *usecase.AIUseCase) *MiscHandler {
	return &MiscHandler{coaching: coaching, prefs: prefs, ai: ai}
}

// AddClient godoc
// @Summary      Agregar empresa cliente a la organización de coaching
// @Tags         coaching
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddClientRequest  true  "member_company_id"
// @Success      201   {object}  dto.EngagementResponse
// @Failure      402   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/coaching/clients [post]
func (h *MiscHandler) AddClient(c *fiber.Ctx) error {
	var in dto.AddClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.MemberCompanyID == "" {
		return validation(c, "member_company_id es requerido")
	}
	out, err := h.coaching.AddClient(c.Context(), GetSession(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetNav godoc
// @Summary      Secciones de navegación expandidas
// @Tags         preferences
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.NavPreferences
// @Router       /api/preferences/nav [get]
func (h *MiscHandler) GetNav(c *fiber.Ctx) error {
	out, err := h.prefs.Nav(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PutNav godoc
// @Summary      Guardar secciones de navegación expandidas
// @Tags         preferences
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NavPreferences  true  "sections"
// @Success      200   {object}  dto.NavPreferences
// @Router       /api/preferences/nav [put]
func (h *MiscHandler) PutNav(c *fiber.Ctx) error {
	var in dto.NavPreferences
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.prefs.SaveNav(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AIStatus godoc
// @Summary      Disponibilidad del gateway de IA
// @Description  Nunca falla: un gateway caído o sin configurar responde ready=false. Timeout interno de 10 s.
// @Tags         ai
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AIStatusResponse
// @Router       /api/ai/status [get]
func (h *MiscHandler) AIStatus(c *fiber.Ctx) error {
	return c.JSON(h.ai.Status(c.Context()))
}
