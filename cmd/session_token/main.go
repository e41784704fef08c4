// session_token emite un token de sesión firmado para pruebas locales del API.
// El login real pertenece al proveedor de identidad; este comando solo firma
// un token con el mismo secreto y emisor que valida el servidor.
//
// Uso: go run ./cmd/session_token -sub "auth0|abc123" [-email ana@example.com] [-name Ana] [-exp 60]
// Lee SESSION_SECRET, SESSION_ISSUER y SESSION_EXPIRATION_MINUTES de la misma configuración que el API.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/catalogo-perfil/pkg/config"
	"github.com/jhoicas/catalogo-perfil/pkg/jwt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	sub := flag.String("sub", "", "ID del usuario en el proveedor de identidad (obligatorio)")
	email := flag.String("email", "", "email a incluir en la sesión")
	name := flag.String("name", "", "nombre a incluir en la sesión")
	exp := flag.Int("exp", cfg.Session.Expiration, "minutos de validez")
	flag.Parse()

	if *sub == "" {
		flag.Usage()
		os.Exit(2)
	}

	tok, err := jwt.Generate(cfg.Session.Secret, cfg.Session.Issuer, *sub, *email, *name, *exp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Firmar token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(tok)
	fmt.Fprintf(os.Stderr, "Cookie: %s=%s\n", cfg.Session.CookieName, tok)
}
