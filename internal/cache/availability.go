package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/VidaClinicas/clinic-agenda/internal/domain/schedule"
)

// Availability guarda a projeção de slots do dia por profissional.
// TTL curto: o cache só absorve rajadas de consulta da página pública,
// toda mutação de agenda invalida a chave.
type Availability struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailability(rdb *redis.Client) *Availability {
	return &Availability{
		rdb: rdb,
		ttl: 60 * time.Second,
	}
}

func key(professionalID uint, day string) string {
	return fmt.Sprintf("avail:%d:%s", professionalID, day)
}

func (c *Availability) Get(ctx context.Context, professionalID uint, day string) ([]domain.Slot, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key(professionalID, day)).Result()
	if err != nil {
		return nil, false
	}

	var slots []domain.Slot
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}

	return slots, true
}

func (c *Availability) Set(ctx context.Context, professionalID uint, day string, slots []domain.Slot) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	// cache é melhor-esforço: erro de escrita não propaga
	c.rdb.Set(ctx, key(professionalID, day), raw, c.ttl)
}

func (c *Availability) Invalidate(ctx context.Context, professionalID uint, day string) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, key(professionalID, day))
}
