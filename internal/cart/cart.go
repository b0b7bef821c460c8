// Package cart implements the pure line-item transforms the reducer applies.
// Every function returns a fresh slice; inputs are never mutated so state
// snapshots handed to readers stay stable.
package cart

import "github.com/reservat/storefront-go/internal/types"

// Add merges a service into the cart. An existing line for the same service
// id has its quantity incremented and its reservation fields merged
// last-write-wins; otherwise a new line is appended. Requested quantity is
// floored to 1.
func Add(items []types.CartItem, svc types.Service, opts types.AddOptions) []types.CartItem {
	qty := opts.Quantity
	if qty < 1 {
		qty = 1
	}

	out := clone(items)
	for i := range out {
		if out[i].ID == svc.ID {
			out[i].Quantity += qty
			out[i].Reservation = mergeReservation(out[i].Reservation, opts.Reservation)
			return out
		}
	}
	return append(out, types.CartItem{
		Service:     svc,
		Quantity:    qty,
		Reservation: copyReservation(opts.Reservation),
	})
}

// Remove drops the line for serviceID. No-op when absent.
func Remove(items []types.CartItem, serviceID string) []types.CartItem {
	out := make([]types.CartItem, 0, len(items))
	for _, it := range items {
		if it.ID != serviceID {
			out = append(out, copyItem(it))
		}
	}
	return out
}

// SetQuantity sets the line's quantity exactly. A quantity <= 0 removes the
// line entirely; a zero-quantity line is never retained.
func SetQuantity(items []types.CartItem, serviceID string, quantity int) []types.CartItem {
	if quantity <= 0 {
		return Remove(items, serviceID)
	}
	out := clone(items)
	for i := range out {
		if out[i].ID == serviceID {
			out[i].Quantity = quantity
		}
	}
	return out
}

// Total is the sum of price*quantity over all lines.
func Total(items []types.CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// ItemCount is the sum of quantities, not the number of lines.
func ItemCount(items []types.CartItem) int {
	var n int
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// mergeReservation overlays next onto prev field by field: set fields in
// next overwrite, unset fields preserve what was there.
func mergeReservation(prev, next *types.Reservation) *types.Reservation {
	if next == nil {
		return copyReservation(prev)
	}
	merged := types.Reservation{}
	if prev != nil {
		merged = *prev
	}
	if next.CheckIn != "" {
		merged.CheckIn = next.CheckIn
	}
	if next.CheckOut != "" {
		merged.CheckOut = next.CheckOut
	}
	if next.Time != "" {
		merged.Time = next.Time
	}
	return &merged
}

func copyReservation(r *types.Reservation) *types.Reservation {
	if r == nil {
		return nil
	}
	cp := *r
	return &cp
}

func copyItem(it types.CartItem) types.CartItem {
	it.Reservation = copyReservation(it.Reservation)
	return it
}

// Clone deep-copies a line-item slice so snapshots can't alias live state.
func Clone(items []types.CartItem) []types.CartItem {
	return clone(items)
}

func clone(items []types.CartItem) []types.CartItem {
	out := make([]types.CartItem, 0, len(items))
	for _, it := range items {
		out = append(out, copyItem(it))
	}
	return out
}
