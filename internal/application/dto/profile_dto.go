package dto

// IdentityUser registro de usuario devuelto por la Management API del proveedor de identidad.
// Solo se modelan los campos que se muestran; user_metadata se conserva completo.
type IdentityUser struct {
	UserID        string                 `json:"user_id"`
	Email         string                 `json:"email,omitempty"`
	EmailVerified bool                   `json:"email_verified,omitempty"`
	Name          string                 `json:"name,omitempty"`
	Nickname      string                 `json:"nickname,omitempty"`
	Picture       string                 `json:"picture,omitempty"`
	CreatedAt     string                 `json:"created_at,omitempty"`
	UpdatedAt     string                 `json:"updated_at,omitempty"`
	LastLogin     string                 `json:"last_login,omitempty"`
	UserMetadata  map[string]interface{} `json:"user_metadata,omitempty"`
}

// ProfileView modelo de la vista de perfil.
type ProfileView struct {
	Title       string        `json:"title"`
	CurrentPage string        `json:"currentPage"`
	User        *IdentityUser `json:"user"`
	Error       string        `json:"error,omitempty"`
}

// EditProfileView modelo del formulario de edición de perfil.
type EditProfileView struct {
	Title       string                 `json:"title"`
	CurrentPage string                 `json:"currentPage"`
	User        *IdentityUser          `json:"user"`
	Meta        map[string]interface{} `json:"meta"`
	Errors      []string               `json:"errors"`
	Success     string                 `json:"success,omitempty"`
}

// HomeView modelo de la página de inicio.
type HomeView struct {
	Title           string       `json:"title"`
	CurrentPage     string       `json:"currentPage"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	User            *SessionUser `json:"user,omitempty"`
}

// SessionUser datos del usuario autenticado tomados de la sesión.
type SessionUser struct {
	Sub   string `json:"sub"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// ProductsPageView modelo de la página del catálogo; los datos se cargan por /products/api/list.
type ProductsPageView struct {
	Title           string       `json:"title"`
	CurrentPage     string       `json:"currentPage"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	User            *SessionUser `json:"user,omitempty"`
}
