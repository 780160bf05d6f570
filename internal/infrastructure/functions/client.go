// Package functions invoca las edge functions de la plataforma (finance-metrics,
// ai-gateway) por HTTP con cuerpo y respuesta JSON.
package functions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/businessos-api/pkg/config"
	"github.com/jhoicas/businessos-api/pkg/logger"
)

// maxResponseBytes tope de lectura de una respuesta.
const maxResponseBytes = 1 << 20

// Error error devuelto por la función (campo "error" del sobre o HTTP no exitoso).
type Error struct {
	Function string
	Status   int
	Message  string
}

func (e *Error) Error() string {
	if e.Status != 0 && e.Status != http.StatusOK {
		return fmt.Sprintf("función %s (HTTP %d): %s", e.Function, e.Status, e.Message)
	}
	return fmt.Sprintf("función %s: %s", e.Function, e.Message)
}

// envelope respuesta de toda función: payload o string de error.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// Client invoca funciones por nombre contra FUNCTIONS_BASE_URL.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el cliente. Sin BaseURL las llamadas devuelven error
// descriptivo en lugar de panic.
func NewClient(cfg config.FunctionsConfig, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.Component("functions"),
	}
}

// Invoke hace POST {baseURL}/{name} con body como JSON y decodifica "data" en out.
// out puede ser nil si solo interesa el éxito.
func (c *Client) Invoke(ctx context.Context, name string, body, out any) error {
	if c.baseURL == "" {
		return fmt.Errorf("functions: FUNCTIONS_BASE_URL no configurado")
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("functions: serializar request de %s: %w", name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+name, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("functions: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("apikey", c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("functions: %s: timeout o cancelación: %w", name, ctx.Err())
		}
		return fmt.Errorf("functions: %s: llamada HTTP fallida: %w", name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("functions: %s: leer respuesta: %w", name, err)
	}
	c.log.Debug().Str("function", name).Int("status", resp.StatusCode).Dur("latency", time.Since(start)).Msg("función invocada")

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(raw))
		if decodeErr == nil && env.Error != "" {
			msg = env.Error
		}
		return &Error{Function: name, Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return fmt.Errorf("functions: %s: respuesta no es JSON: %w", name, decodeErr)
	}
	if env.Error != "" {
		return &Error{Function: name, Status: resp.StatusCode, Message: env.Error}
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("functions: %s: deserializar data: %w", name, err)
	}
	return nil
}
