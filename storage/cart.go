package storage

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/reservat/storefront-go/internal/types"
)

const cartKey = "reservat_cart"

// CartStore persists the serialized cart through a Port. Persistence is best
// effort: a failed write is logged, never surfaced, and a missing or corrupt
// blob loads as an empty cart.
type CartStore struct {
	port Port
	log  zerolog.Logger
}

// NewCartStore wraps port.
func NewCartStore(port Port, log zerolog.Logger) *CartStore {
	return &CartStore{port: port, log: log}
}

// Save writes the current line items.
func (s *CartStore) Save(ctx context.Context, items []types.CartItem) {
	b, err := json.Marshal(items)
	if err != nil {
		s.log.Error().Err(err).Msg("cart serialize failed")
		return
	}
	if err := s.port.Set(ctx, cartKey, string(b)); err != nil {
		s.log.Warn().Err(err).Msg("cart persist failed")
	}
}

// Load reads the persisted line items, degrading to an empty cart on any
// problem.
func (s *CartStore) Load(ctx context.Context) []types.CartItem {
	raw, ok, err := s.port.Get(ctx, cartKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("cart load failed")
		return nil
	}
	if !ok {
		return nil
	}
	var items []types.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.Warn().Err(err).Msg("persisted cart corrupt, starting empty")
		_ = s.port.Delete(ctx, cartKey)
		return nil
	}
	return items
}
