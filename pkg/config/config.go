package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	Auth0   Auth0Config
	Session SessionConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	LogLevel    string
	DocsEnabled bool
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig ubicación del archivo CSV del catálogo.
type StorageConfig struct {
	ProductsCSVPath string
}

// Auth0Config credenciales machine-to-machine para la Management API.
type Auth0Config struct {
	IssuerBaseURL  string // https://<tenant>.auth0.com
	ClientID       string
	ClientSecret   string
	TimeoutSeconds int
}

// Timeout devuelve el timeout por llamada.
func (c Auth0Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SessionConfig firma del token de sesión (cookie o Bearer).
type SessionConfig struct {
	Secret     string
	Issuer     string
	Expiration int // minutos
	CookieName string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, AUTH0_ISSUER_BASE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:         getString(v, "APP_ENV", "development"),
			Name:        getString(v, "APP_NAME", "catalogo-perfil"),
			LogLevel:    getString(v, "LOG_LEVEL", "info"),
			DocsEnabled: getBool(v, "DOCS_ENABLED", true),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 3000),
		},
		Storage: StorageConfig{
			ProductsCSVPath: getString(v, "PRODUCTS_CSV_PATH", "data/productos.csv"),
		},
		Auth0: Auth0Config{
			IssuerBaseURL:  getString(v, "AUTH0_ISSUER_BASE_URL", ""),
			ClientID:       getString(v, "AUTH0_CLIENT_ID", ""),
			ClientSecret:   getString(v, "AUTH0_CLIENT_SECRET", ""),
			TimeoutSeconds: getInt(v, "AUTH0_TIMEOUT_SECONDS", 10),
		},
		Session: SessionConfig{
			Secret:     getString(v, "SESSION_SECRET", ""),
			Issuer:     getString(v, "SESSION_ISSUER", "catalogo-perfil"),
			Expiration: getInt(v, "SESSION_EXPIRATION_MINUTES", 60),
			CookieName: getString(v, "SESSION_COOKIE_NAME", "session"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate comprueba los valores que impedirían arrancar el servidor.
func (c *Config) Validate() error {
	var errs []error
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("config: HTTP_PORT inválido: %d", c.HTTP.Port))
	}
	if strings.TrimSpace(c.Storage.ProductsCSVPath) == "" {
		errs = append(errs, errors.New("config: PRODUCTS_CSV_PATH vacío"))
	}
	if c.Auth0.IssuerBaseURL != "" {
		u, err := url.Parse(c.Auth0.IssuerBaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("config: AUTH0_ISSUER_BASE_URL inválido: %q", c.Auth0.IssuerBaseURL))
		}
	}
	if c.Auth0.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("config: AUTH0_TIMEOUT_SECONDS inválido: %d", c.Auth0.TimeoutSeconds))
	}
	if c.App.Env == "production" && c.Session.Secret == "" {
		errs = append(errs, errors.New("config: SESSION_SECRET es obligatorio en producción"))
	}
	return errors.Join(errs...)
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
