package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/internal/application/ports"
	"github.com/jhoicas/businessos-api/pkg/logger"
)

// AIUseCase expone la disponibilidad del gateway de IA.
// Aplica un timeout de 10 segundos a la comprobación para que la latencia
// externa no bloquee los goroutines del servidor.
type AIUseCase struct {
	gateway ports.AIGateway
	log     *logger.Logger
}

// NewAIUseCase construye el caso de uso inyectando el puerto AIGateway.
func NewAIUseCase(gateway ports.AIGateway, log *logger.Logger) *AIUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AIUseCase{gateway: gateway, log: log.Component("ai")}
}

// Status nunca falla: un gateway caído se informa como no disponible.
func (uc *AIUseCase) Status(ctx context.Context) *dto.AIStatusResponse {
	if uc.gateway == nil {
		return &dto.AIStatusResponse{Ready: false, Detail: "gateway de IA no configurado"}
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	ready, detail, err := uc.gateway.Ready(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("gateway de IA no disponible")
		return &dto.AIStatusResponse{Ready: false, Detail: err.Error()}
	}
	return &dto.AIStatusResponse{Ready: ready, Detail: detail}
}
