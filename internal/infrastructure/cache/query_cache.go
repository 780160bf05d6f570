// Package cache implementa la caché de consultas por tenant: LRU con expiración,
// deduplicación de cargas concurrentes e invalidación explícita.
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/businessos-api/internal/application/ports"
	"github.com/jhoicas/businessos-api/pkg/logger"
)

var _ ports.QueryCache = (*QueryCache)(nil)

// sep separa los segmentos de la clave; no aparece en UUIDs ni en nombres de consulta.
const sep = "\x1f"

// QueryCache resultados por (principal, empresa, consulta) con TTL.
//
// Cada purga incrementa una época. Una carga captura las épocas al empezar y
// solo escribe si siguen iguales al terminar; así ningún resultado obtenido
// bajo la empresa anterior reaparece después de un cambio de tenant.
type QueryCache struct {
	lru         *expirable.LRU[string, any]
	group       singleflight.Group
	loadTimeout time.Duration
	log         *logger.Logger

	mu              sync.Mutex
	epoch           uint64
	principalEpochs map[string]uint64
	companyEpochs   map[string]uint64
}

// DefaultLoadTimeout tope de una carga compartida, independiente de los
// contextos de quienes la esperan.
const DefaultLoadTimeout = 30 * time.Second

// New crea la caché con capacidad size y ventana de frescura ttl.
func New(size int, ttl time.Duration, log *logger.Logger) *QueryCache {
	if size <= 0 {
		size = 1024
	}
	if log == nil {
		log = logger.Nop()
	}
	return &QueryCache{
		lru:             expirable.NewLRU[string, any](size, nil, ttl),
		loadTimeout:     DefaultLoadTimeout,
		log:             log.Component("query_cache"),
		principalEpochs: make(map[string]uint64),
		companyEpochs:   make(map[string]uint64),
	}
}

func key(principalID, companyID, query string) string {
	return principalID + sep + companyID + sep + query
}

type stamp struct{ global, principal, company uint64 }

func (c *QueryCache) stamp(principalID, companyID string) stamp {
	return stamp{c.epoch, c.principalEpochs[principalID], c.companyEpochs[companyID]}
}

// Load devuelve el valor cacheado o ejecuta load una sola vez por clave y época.
func (c *QueryCache) Load(ctx context.Context, principalID, companyID, query string, load func(context.Context) (any, error)) (any, error) {
	k := key(principalID, companyID, query)
	if v, ok := c.lru.Get(k); ok {
		return v, nil
	}

	c.mu.Lock()
	st := c.stamp(principalID, companyID)
	c.mu.Unlock()

	// La época forma parte de la clave del vuelo: una petición posterior a la
	// purga no se une a una carga iniciada antes.
	flight := fmt.Sprintf("%s#%d.%d.%d", k, st.global, st.principal, st.company)
	ch := c.group.DoChan(flight, func() (any, error) {
		// La carga es compartida: no depende de la cancelación de quien la inició.
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.loadTimeout)
		defer cancel()
		v, err := load(lctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.stamp(principalID, companyID) == st {
			c.lru.Add(k, v)
		} else {
			c.log.Debug().Str("query", query).Msg("resultado descartado: caché purgada durante la carga")
		}
		return v, nil
	})
	select {
	case r := <-ch:
		return r.Val, r.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Forget elimina una sola entrada.
func (c *QueryCache) Forget(principalID, companyID, query string) {
	c.lru.Remove(key(principalID, companyID, query))
}

// PurgePrincipal elimina todo lo cacheado para el principal (cambio de empresa, logout).
func (c *QueryCache) PurgePrincipal(principalID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.principalEpochs[principalID]++
	n := c.removeWhere(func(p, _ string) bool { return p == principalID })
	c.log.Debug().Str("principal_id", principalID).Int("entries", n).Msg("caché purgada por principal")
}

// PurgeCompany elimina todo lo cacheado bajo la empresa (cambios de rol, módulos u objetivos).
func (c *QueryCache) PurgeCompany(companyID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.companyEpochs[companyID]++
	n := c.removeWhere(func(_, co string) bool { return co == companyID })
	c.log.Debug().Str("company_id", companyID).Int("entries", n).Msg("caché purgada por empresa")
}

// Purge vacía la caché completa.
func (c *QueryCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	c.lru.Purge()
}

// Len número de entradas vivas.
func (c *QueryCache) Len() int { return c.lru.Len() }

func (c *QueryCache) removeWhere(match func(principalID, companyID string) bool) int {
	n := 0
	for _, k := range c.lru.Keys() {
		parts := strings.SplitN(k, sep, 3)
		if len(parts) != 3 {
			continue
		}
		if match(parts[0], parts[1]) && c.lru.Remove(k) {
			n++
		}
	}
	return n
}
