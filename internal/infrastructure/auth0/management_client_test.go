package auth0

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-perfil/internal/domain"
	"github.com/jhoicas/catalogo-perfil/internal/domain/validation"
)

// fakeProvider simula /oauth/token y /api/v2/users/{id}.
type fakeProvider struct {
	t           *testing.T
	tokenCalls  atomic.Int32
	userStatus  int
	lastPatch   map[string]map[string]string
	lastUserID  string
	lastAuthHdr string
	mu          sync.Mutex
}

func (f *fakeProvider) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(f.t, http.MethodPost, r.Method)
		var body map[string]string
		assert.NoError(f.t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(f.t, "client_credentials", body["grant_type"])
		assert.Equal(f.t, "cid", body["client_id"])
		assert.Equal(f.t, "secret", body["client_secret"])
		assert.Equal(f.t, "http://"+r.Host+"/api/v2/", body["audience"])

		n := f.tokenCalls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "tok-" + string(rune('0'+n)),
			"expires_in":   86400,
			"token_type":   "Bearer",
		})
	})
	mux.HandleFunc("/api/v2/users/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.lastUserID = r.URL.Path[len("/api/v2/users/"):]
		f.lastAuthHdr = r.Header.Get("Authorization")
		status := f.userStatus
		f.mu.Unlock()

		if status != 0 {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"statusCode":404,"error":"Not Found","message":"The user does not exist."}`))
			return
		}
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{
				"user_id": "auth0|123",
				"email": "ana@example.com",
				"name": "Ana",
				"user_metadata": {"tipoDocumento": "CC", "numeroDocumento": "12345678"}
			}`))
		case http.MethodPatch:
			var body map[string]map[string]string
			assert.NoError(f.t, json.NewDecoder(r.Body).Decode(&body))
			f.mu.Lock()
			f.lastPatch = body
			f.mu.Unlock()
			_, _ = w.Write([]byte(`{"user_id":"auth0|123"}`))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	return mux
}

func (f *fakeProvider) setStatus(code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userStatus = code
}

// snapshot devuelve lo último recibido por /api/v2/users.
func (f *fakeProvider) snapshot() (userID, auth string, patch map[string]map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastUserID, f.lastAuthHdr, f.lastPatch
}

func newTestClient(t *testing.T, opts ...Option) (*ManagementClient, *fakeProvider) {
	t.Helper()
	fp := &fakeProvider{t: t}
	srv := httptest.NewServer(fp.handler())
	t.Cleanup(srv.Close)

	c := NewManagementClient(Config{
		IssuerBaseURL: srv.URL + "/",
		ClientID:      "cid",
		ClientSecret:  "secret",
		Timeout:       2 * time.Second,
	}, opts...)
	return c, fp
}

func strPtr(s string) *string { return &s }

func TestGetUser_DevuelveMetadata(t *testing.T) {
	c, fp := newTestClient(t)

	user, err := c.GetUser(context.Background(), "auth0|123")
	require.NoError(t, err)

	assert.Equal(t, "auth0|123", user.UserID)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, "CC", user.UserMetadata["tipoDocumento"])
	gotID, auth, _ := fp.snapshot()
	assert.Equal(t, "auth0|123", gotID, "el ID viaja escapado y el servidor lo recibe intacto")
	assert.Equal(t, "Bearer tok-1", auth)
}

func TestUpdateUserMetadata_SoloCamposPresentes(t *testing.T) {
	c, fp := newTestClient(t)

	err := c.UpdateUserMetadata(context.Background(), "auth0|123", validation.ProfileMetadata{
		TipoDocumento: strPtr("CE"),
		Telefono:      strPtr("3001234567"),
	})
	require.NoError(t, err)

	_, _, patch := fp.snapshot()
	assert.Equal(t, map[string]map[string]string{
		"user_metadata": {"tipoDocumento": "CE", "telefono": "3001234567"},
	}, patch)
}

func TestAccessToken_CacheYRenovacion(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time { mu.Lock(); defer mu.Unlock(); return now }
	advance := func(d time.Duration) { mu.Lock(); now = now.Add(d); mu.Unlock() }

	c, fp := newTestClient(t, WithClock(clock))
	ctx := context.Background()

	_, err := c.GetUser(ctx, "u1")
	require.NoError(t, err)
	_, err = c.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int32(1), fp.tokenCalls.Load(), "el token se reutiliza mientras es válido")

	// expires_in 86400 menos el margen de 5 minutos.
	advance(24*time.Hour - 5*time.Minute - time.Second)
	_, err = c.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int32(1), fp.tokenCalls.Load())

	advance(2 * time.Second)
	_, err = c.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), fp.tokenCalls.Load(), "vencido el margen se renueva")
	_, auth, _ := fp.snapshot()
	assert.Equal(t, "Bearer tok-2", auth)
}

func TestManagementToken_IsValid(t *testing.T) {
	now := time.Now()
	assert.False(t, managementToken{}.isValid(now))
	assert.False(t, managementToken{value: "x", expiry: now}.isValid(now))
	assert.True(t, managementToken{value: "x", expiry: now.Add(time.Second)}.isValid(now))
}

func TestGetUser_ErrorHTTP(t *testing.T) {
	c, fp := newTestClient(t)
	fp.setStatus(http.StatusNotFound)

	_, err := c.GetUser(context.Background(), "nadie")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Contains(t, err.Error(), "HTTP 404")
	assert.Contains(t, err.Error(), "The user does not exist.")
}

func TestToken_ErrorHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	c := NewManagementClient(Config{IssuerBaseURL: srv.URL, ClientID: "x", ClientSecret: "y"})
	err := c.UpdateUserMetadata(context.Background(), "u", validation.ProfileMetadata{})
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Contains(t, err.Error(), "HTTP 401")
}

func TestTransporte_Caido(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewManagementClient(Config{IssuerBaseURL: url, Timeout: time.Second})
	_, err := c.GetUser(context.Background(), "u")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestObserver_RecibeCadaLlamada(t *testing.T) {
	var mu sync.Mutex
	var ops []string
	var fails int
	obs := func(op string, err error, _ time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		ops = append(ops, op)
		if err != nil {
			fails++
		}
	}
	c, fp := newTestClient(t, WithObserver(obs))

	_, err := c.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	fp.setStatus(http.StatusInternalServerError)
	_ = c.UpdateUserMetadata(context.Background(), "u1", validation.ProfileMetadata{})

	assert.Equal(t, []string{opToken, opGet, opUpdate}, ops)
	assert.Equal(t, 1, fails)
}
