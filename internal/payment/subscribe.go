package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/api"
	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/store"
)

var ErrVerificationFailed = errors.New("payment verification failed")

// Subscribe runs the plan upgrade end to end: open a payment session for
// the plan's price, wait for the provider redirect to bring the reference
// back, verify it with the backend, and only then activate the plan
// locally. The free tier activates directly with no payment.
func Subscribe(ctx context.Context, client *api.Client, st store.Store, plan Plan, email string, listener *CallbackListener) error {
	if plan == PlanFree {
		return ActivatePlan(ctx, st, plan)
	}

	reference, err := client.InitPlanPayment(ctx, string(plan), email, plan.Price())
	if err != nil {
		return err
	}

	listener.Start()
	defer listener.Shutdown(context.Background())

	ref, err := listener.Wait(ctx)
	if err != nil {
		return fmt.Errorf("waiting for payment callback: %w", err)
	}
	if ref != reference {
		return fmt.Errorf("%w: reference mismatch", ErrVerificationFailed)
	}

	result, err := client.VerifyPayment(ctx, ref)
	if err != nil {
		return err
	}
	if !result.Succeeded() {
		if result.Message != "" {
			return fmt.Errorf("%w: %s", ErrVerificationFailed, result.Message)
		}
		return ErrVerificationFailed
	}

	return ActivatePlan(ctx, st, plan)
}
