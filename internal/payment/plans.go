// Package payment covers the provider checkout handoff and the seller
// subscription plans gated behind it.
package payment

import (
	"context"

	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/domain"
	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/store"
)

// Plan is a seller subscription tier.
type Plan string

const (
	PlanFree   Plan = "free"
	PlanSilver Plan = "silver"
	PlanGold   Plan = "gold"
)

// Unlimited marks a limit with no cap.
const Unlimited = -1

// PlanLimits caps what a seller on a given tier may publish.
type PlanLimits struct {
	MaxProducts int
	MaxAds      int
}

// ParsePlan maps a stored or user-supplied plan name onto a tier,
// defaulting to free.
func ParsePlan(s string) Plan {
	switch Plan(s) {
	case PlanSilver, PlanGold:
		return Plan(s)
	default:
		return PlanFree
	}
}

func (p Plan) Limits() PlanLimits {
	switch p {
	case PlanSilver:
		return PlanLimits{MaxProducts: 30, MaxAds: 5}
	case PlanGold:
		return PlanLimits{MaxProducts: Unlimited, MaxAds: Unlimited}
	default:
		return PlanLimits{MaxProducts: 5, MaxAds: 1}
	}
}

func (p Plan) Price() domain.Price {
	switch p {
	case PlanSilver:
		return 500
	case PlanGold:
		return 1500
	default:
		return 0
	}
}

// AllowsProducts reports whether a seller with count published products may
// add another under this plan.
func (p Plan) AllowsProducts(count int) bool {
	limit := p.Limits().MaxProducts
	return limit == Unlimited || count < limit
}

// AllowsAds reports whether a seller with count running ads may add another.
func (p Plan) AllowsAds(count int) bool {
	limit := p.Limits().MaxAds
	return limit == Unlimited || count < limit
}

// CurrentPlan reads the active plan from the client state.
func CurrentPlan(ctx context.Context, st store.Store) Plan {
	v, err := st.Get(ctx, store.KeyCurrentPlan)
	if err != nil {
		return PlanFree
	}
	return ParsePlan(v)
}

// ActivatePlan records a verified plan purchase.
func ActivatePlan(ctx context.Context, st store.Store, plan Plan) error {
	return st.Set(ctx, store.KeyCurrentPlan, string(plan))
}
