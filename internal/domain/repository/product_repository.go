package repository

import "github.com/jhoicas/catalogo-perfil/internal/domain/entity"

// ProductStore define el puerto de persistencia del catálogo (DIP).
// El almacenamiento es la fuente de verdad: cada llamada relee el conjunto completo
// y cada mutación reescribe el conjunto completo.
type ProductStore interface {
	ReadAll() ([]entity.Product, error)
	WriteAll(products []entity.Product) error
	NextID() (int, error)
}
