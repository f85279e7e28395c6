package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/api"
	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/auth"
	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/store"
)

func subscribeFixture(t *testing.T, srv *httptest.Server) (*api.Client, store.Store) {
	st, err := store.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	session := auth.NewSession(st)
	require.NoError(t, session.SetTokens(context.Background(), "acc", "ref", "seller"))

	return api.New(srv.URL, srv.Client(), session), st
}

func paymentServer(t *testing.T, verifyStatus string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/payments/init/":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "silver", body["plan"])
			json.NewEncoder(w).Encode(map[string]string{"reference": "ref-silver-1"})
		case "/payments/verify/ref-silver-1/":
			json.NewEncoder(w).Encode(map[string]string{"status": verifyStatus})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
}

func TestSubscribe_FreePlanNeedsNoPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no network call expected for the free plan")
	}))
	defer srv.Close()

	client, st := subscribeFixture(t, srv)
	ctx := context.Background()

	require.NoError(t, Subscribe(ctx, client, st, PlanFree, "jane@example.com", nil))
	assert.Equal(t, PlanFree, CurrentPlan(ctx, st))
}

func TestSubscribe_VerifiedPaymentActivatesPlan(t *testing.T) {
	srv := paymentServer(t, "success")
	defer srv.Close()

	client, st := subscribeFixture(t, srv)

	listener, err := NewCallbackListener("127.0.0.1:0")
	require.NoError(t, err)

	// Play the provider redirect once the listener is up.
	go func() {
		for i := 0; i < 50; i++ {
			resp, err := http.Get(listener.URL() + "?reference=ref-silver-1")
			if err == nil {
				resp.Body.Close()
				return
			}
			time.Sleep(20 * time.Millisecond)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, Subscribe(ctx, client, st, PlanSilver, "jane@example.com", listener))
	assert.Equal(t, PlanSilver, CurrentPlan(ctx, st))
}

func TestSubscribe_FailedVerificationDoesNotActivate(t *testing.T) {
	srv := paymentServer(t, "failed")
	defer srv.Close()

	client, st := subscribeFixture(t, srv)

	listener, err := NewCallbackListener("127.0.0.1:0")
	require.NoError(t, err)

	go func() {
		for i := 0; i < 50; i++ {
			resp, err := http.Get(listener.URL() + "?reference=ref-silver-1")
			if err == nil {
				resp.Body.Close()
				return
			}
			time.Sleep(20 * time.Millisecond)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = Subscribe(ctx, client, st, PlanSilver, "jane@example.com", listener)
	assert.ErrorIs(t, err, ErrVerificationFailed)
	assert.Equal(t, PlanFree, CurrentPlan(ctx, st))
}
