// Package session define el contexto de tenant que viaja explícitamente de la
// capa HTTP a los casos de uso.
package session

import (
	"fmt"

	"github.com/jhoicas/businessos-api/internal/domain"
)

// Session principal autenticado y empresa activa. Se crea en el login, se
// reemplaza completa al cambiar de empresa y se descarta en el logout.
type Session struct {
	PrincipalID string
	CompanyID   string
	Role        string // rol de la membresía activa al emitir el token
}

// Validate exige principal y empresa activa.
func (s Session) Validate() error {
	if s.PrincipalID == "" {
		return fmt.Errorf("%w: sesión sin principal", domain.ErrUnauthorized)
	}
	if s.CompanyID == "" {
		return fmt.Errorf("%w: sesión sin empresa activa", domain.ErrNoMembership)
	}
	return nil
}

// WithCompany devuelve una sesión nueva para otra empresa; el rol se resuelve de nuevo.
func (s Session) WithCompany(companyID, role string) Session {
	return Session{PrincipalID: s.PrincipalID, CompanyID: companyID, Role: role}
}
