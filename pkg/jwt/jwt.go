package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tipos de token emitidos.
const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// CompanyID es la empresa activa de la sesión; cambiarla implica emitir un token nuevo.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id,omitempty"`
	Role      string `json:"role,omitempty"` // rol de la membresía activa
	TokenType string `json:"typ"`
}

// Generate genera un token de acceso firmado con userID, empresa activa y rol.
func Generate(secret, userID, companyID, role, issuer string, expMinutes int) (string, error) {
	return sign(secret, Claims{
		RegisteredClaims: registered(issuer, userID, time.Duration(expMinutes)*time.Minute),
		UserID:           userID,
		CompanyID:        companyID,
		Role:             role,
		TokenType:        TokenAccess,
	})
}

// GenerateRefresh genera un refresh token (solo identifica al principal).
func GenerateRefresh(secret, userID, issuer string, expHours int) (string, error) {
	return sign(secret, Claims{
		RegisteredClaims: registered(issuer, userID, time.Duration(expHours)*time.Hour),
		UserID:           userID,
		TokenType:        TokenRefresh,
	})
}

// Parse valida un token de acceso y devuelve userID, companyID y role.
// Retorna error si el token es inválido, expirado, tiene firma incorrecta o es un refresh token.
func Parse(secret, tokenString string) (userID, companyID, role string, err error) {
	claims, err := parse(secret, tokenString)
	if err != nil {
		return "", "", "", err
	}
	if claims.TokenType != TokenAccess {
		return "", "", "", fmt.Errorf("jwt: se esperaba token de acceso")
	}
	return claims.UserID, claims.CompanyID, claims.Role, nil
}

// ParseRefresh valida un refresh token y devuelve el userID.
func ParseRefresh(secret, tokenString string) (string, error) {
	claims, err := parse(secret, tokenString)
	if err != nil {
		return "", err
	}
	if claims.TokenType != TokenRefresh {
		return "", fmt.Errorf("jwt: se esperaba refresh token")
	}
	return claims.UserID, nil
}

func registered(issuer, subject string, ttl time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func sign(secret string, claims Claims) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
