package entity

import "encoding/json"

// UserPreferences estado de UI no autoritativo; se puede reiniciar sin pérdida.
type UserPreferences struct {
	UserID      string
	NavSections json.RawMessage // debería ser un array JSON de claves de sección
}
