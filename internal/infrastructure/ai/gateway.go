// Package ai adapta el gateway de IA de la plataforma. El gateway es una edge
// function; aquí solo se consulta su disponibilidad.
package ai

import (
	"context"

	"github.com/jhoicas/businessos-api/internal/application/ports"
	"github.com/jhoicas/businessos-api/internal/infrastructure/functions"
)

// GatewayFunction nombre de la función del gateway de IA.
const GatewayFunction = "ai-gateway"

// Verificar en tiempo de compilación que Gateway implementa AIGateway.
var _ ports.AIGateway = (*Gateway)(nil)

// Gateway adaptador de ports.AIGateway sobre la edge function ai-gateway.
type Gateway struct {
	client *functions.Client
}

// NewGateway construye el adaptador.
func NewGateway(client *functions.Client) *Gateway {
	return &Gateway{client: client}
}

type statusRequest struct {
	Action string `json:"action"`
}

type statusPayload struct {
	Ready    bool   `json:"ready"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Reason   string `json:"reason"`
}

// Ready pregunta al gateway si tiene proveedor configurado.
func (g *Gateway) Ready(ctx context.Context) (bool, string, error) {
	var p statusPayload
	if err := g.client.Invoke(ctx, GatewayFunction, statusRequest{Action: "status"}, &p); err != nil {
		return false, "", err
	}
	detail := p.Reason
	if p.Ready && p.Provider != "" {
		detail = p.Provider
		if p.Model != "" {
			detail += "/" + p.Model
		}
	}
	return p.Ready, detail, nil
}
