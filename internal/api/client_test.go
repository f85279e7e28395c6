package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/auth"
	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/domain"
	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/store"
)

func newTestClient(t *testing.T, srv *httptest.Server) (*Client, *auth.Session) {
	st, err := store.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	session := auth.NewSession(st)
	return New(srv.URL, srv.Client(), session), session
}

func TestDecodeList(t *testing.T) {
	type item struct {
		ID int64 `json:"id"`
	}

	bare, err := decodeList[item]([]byte(`[{"id":1},{"id":2}]`))
	require.NoError(t, err)
	assert.Len(t, bare, 2)

	enveloped, err := decodeList[item]([]byte(`{"count":2,"results":[{"id":3}]}`))
	require.NoError(t, err)
	require.Len(t, enveloped, 1)
	assert.Equal(t, int64(3), enveloped[0].ID)

	empty, err := decodeList[item]([]byte(`{"detail":"nothing here"}`))
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = decodeList[item]([]byte(`not json`))
	assert.Error(t, err)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Invalid credentials.", errorMessage([]byte(`{"detail":"Invalid credentials."}`)))
	assert.Equal(t, "out of stock", errorMessage([]byte(`{"message":"out of stock"}`)))
	assert.Equal(t, "plain text error", errorMessage([]byte("plain text error")))
	assert.Equal(t, "request failed", errorMessage(nil))
}

func TestLogin_StoresTokensAndDefaultsRole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/token/", r.URL.Path)
		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "jane", creds.Username)
		json.NewEncoder(w).Encode(map[string]string{"access": "acc", "refresh": "ref"})
	}))
	defer srv.Close()

	c, session := newTestClient(t, srv)
	ctx := context.Background()

	role, err := c.Login(ctx, Credentials{Username: "jane", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "buyer", role)
	assert.Equal(t, "acc", session.AccessToken(ctx))
	assert.Equal(t, "ref", session.RefreshToken(ctx))
}

func TestLogin_ValidatesBeforeNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no network call expected")
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv)

	_, err := c.Login(context.Background(), Credentials{Username: "jane"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"password"}, verr.Missing)
}

func TestLogin_BadCredentialsSurfaceDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials."})
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv)

	_, err := c.Login(context.Background(), Credentials{Username: "jane", Password: "wrong"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials.", apiErr.Message)
	assert.True(t, IsAuthError(err))
}

func TestAuthedCall_RequiresSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no network call expected")
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv)

	_, err := c.MyOrders(context.Background())
	assert.ErrorIs(t, err, ErrLoginRequired)
}

func TestAuthedCall_AttachesBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer acc", r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, session := newTestClient(t, srv)
	ctx := context.Background()
	require.NoError(t, session.SetTokens(ctx, "acc", "ref", "buyer"))

	orders, err := c.MyOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestSubscribeNewsletter_Duplicate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string][]string{
			"email": {"newsletter subscription with this email already exists."},
		})
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv)
	err := c.SubscribeNewsletter(context.Background(), "jane@example.com")
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
}
