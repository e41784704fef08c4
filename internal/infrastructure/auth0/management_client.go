// Package auth0 implementa ports.IdentityGateway sobre la Management API de Auth0.
// Usa net/http de la librería estándar; no requiere el SDK oficial.
package auth0

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/catalogo-perfil/internal/application/dto"
	"github.com/jhoicas/catalogo-perfil/internal/application/ports"
	"github.com/jhoicas/catalogo-perfil/internal/domain"
	"github.com/jhoicas/catalogo-perfil/internal/domain/validation"
	"github.com/jhoicas/catalogo-perfil/pkg/logger"
)

// Verificar en tiempo de compilación que ManagementClient implementa IdentityGateway.
var _ ports.IdentityGateway = (*ManagementClient)(nil)

const (
	// tokenSafetyMargin se descuenta de expires_in para renovar antes del vencimiento real.
	tokenSafetyMargin = 5 * time.Minute

	maxBodyBytes = 64 * 1024

	opToken  = "token"
	opGet    = "get_user"
	opUpdate = "update_user_metadata"
)

// Config credenciales de la aplicación machine-to-machine.
type Config struct {
	IssuerBaseURL string
	ClientID      string
	ClientSecret  string
	Timeout       time.Duration
}

// Observer recibe cada llamada HTTP al proveedor (métricas).
type Observer func(operation string, err error, d time.Duration)

// Option personaliza el cliente.
type Option func(*ManagementClient)

// WithHTTPClient reemplaza el cliente HTTP.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *ManagementClient) { c.httpClient = hc }
}

// WithClock reemplaza el reloj usado para la caché del token.
func WithClock(now func() time.Time) Option {
	return func(c *ManagementClient) { c.now = now }
}

// WithObserver registra un observador de llamadas.
func WithObserver(o Observer) Option {
	return func(c *ManagementClient) { c.observe = o }
}

// WithLogger asigna el logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *ManagementClient) { c.log = l.Named("auth0") }
}

// managementToken token de la Management API con su vencimiento efectivo.
type managementToken struct {
	value  string
	expiry time.Time
}

func (t managementToken) isValid(now time.Time) bool {
	return t.value != "" && now.Before(t.expiry)
}

// ManagementClient adaptador HTTP hacia /oauth/token y /api/v2/users.
// El mutex solo protege el token en caché: dos renovaciones simultáneas pueden
// ocurrir y prevalece la última escritura.
type ManagementClient struct {
	baseURL      string
	audience     string
	clientID     string
	clientSecret string

	httpClient *http.Client
	now        func() time.Time
	observe    Observer
	log        *logger.Logger

	mu    sync.Mutex
	token managementToken
}

// NewManagementClient construye el adaptador. IssuerBaseURL puede venir con o sin "/" final.
func NewManagementClient(cfg Config, opts ...Option) *ManagementClient {
	base := strings.TrimRight(cfg.IssuerBaseURL, "/")
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &ManagementClient{
		baseURL:      base,
		audience:     base + "/api/v2/",
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   &http.Client{Timeout: timeout},
		now:          time.Now,
		log:          logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ── Token ─────────────────────────────────────────────────────────────────────

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Audience     string `json:"audience"`
	GrantType    string `json:"grant_type"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// accessToken devuelve el token en caché o solicita uno nuevo.
func (c *ManagementClient) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	cached := c.token
	c.mu.Unlock()
	if cached.isValid(c.now()) {
		return cached.value, nil
	}

	issuedAt := c.now()
	payload := tokenRequest{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		Audience:     c.audience,
		GrantType:    "client_credentials",
	}
	var out tokenResponse
	if err := c.do(ctx, opToken, http.MethodPost, c.baseURL+"/oauth/token", "", payload, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("%w: respuesta de token sin access_token", domain.ErrUpstream)
	}

	tok := managementToken{
		value:  out.AccessToken,
		expiry: issuedAt.Add(time.Duration(out.ExpiresIn)*time.Second - tokenSafetyMargin),
	}
	c.mu.Lock()
	c.token = tok
	c.mu.Unlock()

	c.log.Debug().Time("expira", tok.expiry).Msg("token de administración renovado")
	return tok.value, nil
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// GetUser GET {audience}users/{id}.
func (c *ManagementClient) GetUser(ctx context.Context, userID string) (*dto.IdentityUser, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	var user dto.IdentityUser
	if err := c.do(ctx, opGet, http.MethodGet, c.userURL(userID), token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

type metadataPatch struct {
	UserMetadata map[string]string `json:"user_metadata"`
}

// UpdateUserMetadata PATCH {audience}users/{id} con {"user_metadata": {...}}.
// El proveedor fusiona las claves enviadas con las existentes.
func (c *ManagementClient) UpdateUserMetadata(ctx context.Context, userID string, meta validation.ProfileMetadata) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}
	payload := metadataPatch{UserMetadata: meta.ToMap()}
	return c.do(ctx, opUpdate, http.MethodPatch, c.userURL(userID), token, payload, nil)
}

func (c *ManagementClient) userURL(userID string) string {
	return c.audience + "users/" + url.PathEscape(userID)
}

// ── HTTP ──────────────────────────────────────────────────────────────────────

type apiError struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// do ejecuta la llamada y decodifica la respuesta en out (si no es nil).
// Cualquier fallo se devuelve envolviendo domain.ErrUpstream.
func (c *ManagementClient) do(ctx context.Context, op, method, endpoint, token string, in, out interface{}) (err error) {
	start := c.now()
	defer func() {
		if c.observe != nil {
			c.observe(op, err, c.now().Sub(start))
		}
	}()

	var body io.Reader
	if in != nil {
		raw, mErr := json.Marshal(in)
		if mErr != nil {
			return fmt.Errorf("auth0 %s: serializar request: %w", op, mErr)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("%w: auth0 %s: crear request: %v", domain.ErrUpstream, op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: auth0 %s: timeout o cancelación: %v", domain.ErrUpstream, op, ctx.Err())
		}
		return fmt.Errorf("%w: auth0 %s: llamada HTTP fallida: %v", domain.ErrUpstream, op, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: auth0 %s: leer respuesta: %v", domain.ErrUpstream, op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if jsonErr := json.Unmarshal(rawBody, &apiErr); jsonErr == nil && apiErr.Message != "" {
			return fmt.Errorf("%w: auth0 %s: HTTP %d: %s", domain.ErrUpstream, op, resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("%w: auth0 %s: HTTP %d", domain.ErrUpstream, op, resp.StatusCode)
	}

	if out == nil || len(bytes.TrimSpace(rawBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(rawBody, out); err != nil {
		return fmt.Errorf("%w: auth0 %s: respuesta inválida: %v", domain.ErrUpstream, op, err)
	}
	return nil
}
