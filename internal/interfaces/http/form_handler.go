package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/internal/application/usecase"
)

// FormHandler evalúa la lógica condicional de formularios.
type FormHandler struct {
	uc *usecase.FormUseCase
}

// NewFormHandler construye el handler.
func NewFormHandler(uc *usecase.FormUseCase) *FormHandler {
	return &FormHandler{uc: uc}
}

// Evaluate godoc
// @Summary      Evaluar reglas del formulario
// @Description  Devuelve el recorrido visible, campos ocultos y saltados, y si el formulario terminó.
// @Tags         forms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del formulario"
// @Param        body  body  dto.FormResponsesRequest  true  "respuestas actuales"
// @Success      200   {object}  dto.FormEvaluationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/forms/{id}/evaluate [post]
func (h *FormHandler) Evaluate(c *fiber.Ctx) error {
	var in dto.FormResponsesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Evaluate(c.Context(), GetSession(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Next godoc
// @Summary      Siguiente campo del formulario
// @Tags         forms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del formulario"
// @Param        body  body  dto.FormNextRequest  true  "respuestas y campo actual"
// @Success      200   {object}  dto.FormStepResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/forms/{id}/next [post]
func (h *FormHandler) Next(c *fiber.Ctx) error {
	var in dto.FormNextRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Next(c.Context(), GetSession(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReplaceRules godoc
// @Summary      Reemplazar reglas del formulario
// @Tags         forms
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                   true  "ID del formulario"
// @Param        body  body  dto.ReplaceRulesRequest  true  "reglas"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/forms/{id}/rules [put]
func (h *FormHandler) ReplaceRules(c *fiber.Ctx) error {
	var in dto.ReplaceRulesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.ReplaceRules(c.Context(), GetSession(c), c.Params("id"), in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
