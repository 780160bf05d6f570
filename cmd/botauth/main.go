// Comando botauth inicia sesión con la cuenta de servicio y guarda el refresh
// token en BOT_TOKEN_FILE (permisos 0600). No forma parte del servidor.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/pkg/config"
	"github.com/jhoicas/businessos-api/pkg/logger"
)

func main() {
	log := logger.New(logger.Config{Env: "development", Level: "info"})

	cfg, err := config.LoadBot()
	if err != nil {
		log.Fatal().Err(err).Msg("configuración del bot")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	out, err := login(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("login del bot")
	}
	if err := writeToken(cfg.TokenFile, out.RefreshToken); err != nil {
		log.Fatal().Err(err).Str("file", cfg.TokenFile).Msg("guardar refresh token")
	}
	log.Info().Str("user", out.User.Email).Str("company_id", out.CompanyID).Str("file", cfg.TokenFile).
		Msg("refresh token guardado")
}

func login(ctx context.Context, cfg *config.BotConfig) (*dto.LoginResponse, error) {
	body, err := json.Marshal(dto.LoginRequest{Email: cfg.Email, Password: cfg.Password, CompanyID: cfg.CompanyID})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.APIURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		var e dto.ErrorResponse
		if json.Unmarshal(raw, &e) == nil && e.Code != "" {
			return nil, fmt.Errorf("HTTP %d %s: %s", resp.StatusCode, e.Code, e.Message)
		}
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	var out dto.LoginResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("respuesta inválida: %w", err)
	}
	if out.RefreshToken == "" {
		return nil, fmt.Errorf("la respuesta no incluye refresh_token")
	}
	return &out, nil
}

// writeToken escribe el token con permisos 0600 aunque el archivo ya exista.
func writeToken(path, token string) error {
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		return err
	}
	return os.Chmod(path, 0o600)
}
