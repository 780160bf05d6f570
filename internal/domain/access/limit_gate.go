package access

import (
	"fmt"
	"time"

	"github.com/jhoicas/businessos-api/internal/domain/entity"
)

// LimitInput estado necesario para decidir una acción acotada.
type LimitInput struct {
	Action  string
	IsAdmin bool
	// Loading el uso todavía no está disponible (consulta en curso o lenta).
	Loading bool
	Usage   int
	// Limit techo del plan; nil = ilimitado.
	Limit       *int
	PlanExpired bool
	GraceUntil  *time.Time
	Now         time.Time
}

// LimitDecision resultado del gate. Denegar bloquea solo la creación; los datos
// existentes siguen siendo legibles y editables.
type LimitDecision struct {
	CanPerform       bool   `json:"can_perform"`
	WouldExceedLimit bool   `json:"would_exceed_limit"`
	IsExpired        bool   `json:"is_expired"`
	Message          string `json:"message"`
}

// InGrace informa si now cae dentro del período de gracia.
func (in LimitInput) InGrace() bool {
	return in.GraceUntil != nil && in.Now.Before(*in.GraceUntil)
}

// EvaluateLimit aplica la política en orden de prioridad:
// admin, cargando, uso bajo el límite, período de gracia, denegar.
func EvaluateLimit(in LimitInput) LimitDecision {
	if in.IsAdmin {
		return LimitDecision{CanPerform: true}
	}
	if in.Loading {
		return LimitDecision{CanPerform: true}
	}
	if in.Limit == nil || in.Usage < *in.Limit {
		return LimitDecision{CanPerform: true}
	}
	if in.InGrace() {
		return LimitDecision{
			CanPerform:       true,
			WouldExceedLimit: true,
			IsExpired:        true,
			Message: fmt.Sprintf("período de gracia activo hasta %s: renueva el plan para seguir usando %s",
				in.GraceUntil.Format("2006-01-02"), actionLabel(in.Action)),
		}
	}
	if in.PlanExpired {
		return LimitDecision{
			WouldExceedLimit: true,
			IsExpired:        true,
			Message:          "el plan ha vencido: renuévalo para " + actionLabel(in.Action),
		}
	}
	return LimitDecision{
		WouldExceedLimit: true,
		Message: fmt.Sprintf("límite del plan alcanzado (%d/%d) para %s",
			in.Usage, *in.Limit, actionLabel(in.Action)),
	}
}

func actionLabel(action string) string {
	switch action {
	case entity.ActionAddUser:
		return "agregar usuarios"
	case entity.ActionAddFramework:
		return "crear frameworks"
	case entity.ActionPublishFramework:
		return "publicar frameworks"
	case entity.ActionAddClient:
		return "agregar clientes"
	default:
		return action
	}
}
