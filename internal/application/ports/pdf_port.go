package ports

import "github.com/jhoicas/catalogo-perfil/internal/domain/entity"

// CatalogPDFGenerator genera el PDF del catálogo a partir de los productos activos.
type CatalogPDFGenerator interface {
	GenerateCatalog(title string, products []entity.Product) ([]byte, error)
}
