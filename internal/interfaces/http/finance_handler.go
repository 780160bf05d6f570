package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/internal/application/usecase"
)

// FinanceHandler playbook, tendencia y objetivos financieros.
type FinanceHandler struct {
	uc         *usecase.FinanceUseCase
	frameworks *usecase.FrameworkUseCase
}

// NewFinanceHandler construye el handler.
func NewFinanceHandler(uc *usecase.FinanceUseCase, frameworks *usecase.FrameworkUseCase) *FinanceHandler {
	return &FinanceHandler{uc: uc, frameworks: frameworks}
}

// Playbook godoc
// @Summary      Playbook financiero del período
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        framework_id  query  string  true   "ID del framework"
// @Param        period        query  string  false  "YYYY-MM (por defecto el mes en curso)"
// @Success      200  {object}  dto.PlaybookResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/finance/playbook [get]
func (h *FinanceHandler) Playbook(c *fiber.Ctx) error {
	frameworkID := c.Query("framework_id")
	if frameworkID == "" {
		return validation(c, "framework_id es requerido")
	}
	out, err := h.uc.Playbook(c.Context(), GetSession(c), frameworkID, c.Query("period"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PlaybookPDF godoc
// @Summary      Playbook financiero en PDF
// @Tags         finance
// @Security     Bearer
// @Produce      application/pdf
// @Param        framework_id  query  string  true   "ID del framework"
// @Param        period        query  string  false  "YYYY-MM"
// @Success      200  {file}  binary
// @Router       /api/finance/playbook.pdf [get]
func (h *FinanceHandler) PlaybookPDF(c *fiber.Ctx) error {
	frameworkID := c.Query("framework_id")
	if frameworkID == "" {
		return validation(c, "framework_id es requerido")
	}
	period := c.Query("period")
	pdfBytes, err := h.uc.PlaybookPDF(c.Context(), GetSession(c), frameworkID, period)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="playbook-%s.pdf"`, nonEmpty(period, "actual")))
	return c.Send(pdfBytes)
}

// Trend godoc
// @Summary      Tendencia de métricas
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        periods  query  int     false  "Cantidad de períodos (1-24)"  default(6)
// @Param        until    query  string  false  "Último período YYYY-MM"
// @Success      200  {object}  dto.TrendResponse
// @Router       /api/finance/trend [get]
func (h *FinanceHandler) Trend(c *fiber.Ctx) error {
	out, err := h.uc.Trend(c.Context(), GetSession(c), c.QueryInt("periods", 6), c.Query("until"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PutTargets godoc
// @Summary      Guardar objetivos del framework
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string          true  "ID del framework"
// @Param        body  body  dto.TargetsDTO  true  "umbrales; null = sin objetivo"
// @Success      200   {object}  dto.TargetsDTO
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/frameworks/{id}/targets [put]
func (h *FinanceHandler) PutTargets(c *fiber.Ctx) error {
	var in dto.TargetsDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.PutTargets(c.Context(), GetSession(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateFramework godoc
// @Summary      Crear framework (borrador)
// @Tags         frameworks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFrameworkRequest  true  "nombre"
// @Success      201   {object}  dto.FrameworkResponse
// @Failure      402   {object}  dto.ErrorResponse
// @Router       /api/frameworks [post]
func (h *FinanceHandler) CreateFramework(c *fiber.Ctx) error {
	var in dto.CreateFrameworkRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" {
		return validation(c, "name es requerido")
	}
	out, err := h.frameworks.Create(c.Context(), GetSession(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PublishFramework godoc
// @Summary      Publicar framework
// @Tags         frameworks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del framework"
// @Success      200  {object}  dto.FrameworkResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/frameworks/{id}/publish [post]
func (h *FinanceHandler) PublishFramework(c *fiber.Ctx) error {
	out, err := h.frameworks.Publish(c.Context(), GetSession(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
