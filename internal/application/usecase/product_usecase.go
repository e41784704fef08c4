package usecase

import (
	"fmt"
	"sync"

	"github.com/jhoicas/catalogo-perfil/internal/application/dto"
	"github.com/jhoicas/catalogo-perfil/internal/domain"
	"github.com/jhoicas/catalogo-perfil/internal/domain/entity"
	"github.com/jhoicas/catalogo-perfil/internal/domain/repository"
	"github.com/jhoicas/catalogo-perfil/internal/domain/validation"
	"github.com/jhoicas/catalogo-perfil/pkg/logger"
)

// ProductUseCase casos de uso CRUD del catálogo con borrado lógico.
// Toda mutación sigue el patrón validar → leer todo → modificar → escribir todo.
// mu serializa las mutaciones dentro del proceso; entre procesos no hay protección.
type ProductUseCase struct {
	store repository.ProductStore
	log   *logger.Logger
	mu    sync.Mutex
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(store repository.ProductStore, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{store: store, log: log.Named("productos")}
}

// List devuelve los productos activos en el orden del archivo.
func (uc *ProductUseCase) List() (*dto.ProductListResponse, error) {
	active, err := uc.ActiveProducts()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(active))
	for _, p := range active {
		items = append(items, toProductResponse(p))
	}
	return &dto.ProductListResponse{Products: items}, nil
}

// GetByID busca un producto por ID sin filtrar por Activo; la capa de presentación
// decide si uno inactivo es visible. Devuelve domain.ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(id int) (*dto.ProductResponse, error) {
	products, err := uc.store.ReadAll()
	if err != nil {
		return nil, err
	}
	idx := indexOf(products, id)
	if idx < 0 {
		return nil, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	out := toProductResponse(products[idx])
	return &out, nil
}

// Create valida, asigna el siguiente ID secuencial y agrega el producto activo.
// Con datos inválidos devuelve *domain.ValidationError sin tocar el archivo.
func (uc *ProductUseCase) Create(in dto.ProductRequest) (*dto.ProductResponse, error) {
	values, res := validation.ParseProduct(toFields(in))
	if err := res.Err(); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	products, err := uc.store.ReadAll()
	if err != nil {
		return nil, err
	}
	id, err := uc.store.NextID()
	if err != nil {
		return nil, err
	}
	product := entity.Product{
		ID:          id,
		Nombre:      values.Nombre,
		Descripcion: values.Descripcion,
		Precio:      values.Precio,
		Cantidad:    values.Cantidad,
		Activo:      true,
	}
	products = append(products, product)
	if err := uc.store.WriteAll(products); err != nil {
		return nil, err
	}

	uc.log.Info().Int("id", product.ID).Str("nombre", product.Nombre).Msg("producto creado")
	out := toProductResponse(product)
	return &out, nil
}

// Update reemplaza nombre, descripción, precio y cantidad. ID y Activo se conservan
// sin importar lo que traiga la entrada. La validación ocurre antes de leer el archivo.
func (uc *ProductUseCase) Update(id int, in dto.ProductRequest) (*dto.ProductResponse, error) {
	values, res := validation.ParseProduct(toFields(in))
	if err := res.Err(); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	products, err := uc.store.ReadAll()
	if err != nil {
		return nil, err
	}
	idx := indexOf(products, id)
	if idx < 0 {
		return nil, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}

	p := &products[idx]
	p.Nombre = values.Nombre
	p.Descripcion = values.Descripcion
	p.Precio = values.Precio
	p.Cantidad = values.Cantidad

	if err := uc.store.WriteAll(products); err != nil {
		return nil, err
	}

	uc.log.Info().Int("id", p.ID).Msg("producto actualizado")
	out := toProductResponse(*p)
	return &out, nil
}

// Delete marca el producto como inactivo (borrado lógico). No hay operación inversa.
func (uc *ProductUseCase) Delete(id int) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	products, err := uc.store.ReadAll()
	if err != nil {
		return err
	}
	idx := indexOf(products, id)
	if idx < 0 {
		return fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}

	products[idx].Activo = false
	if err := uc.store.WriteAll(products); err != nil {
		return err
	}

	uc.log.Info().Int("id", id).Msg("producto eliminado (soft delete)")
	return nil
}

// ActiveProducts devuelve las entidades activas (para exportaciones).
func (uc *ProductUseCase) ActiveProducts() ([]entity.Product, error) {
	products, err := uc.store.ReadAll()
	if err != nil {
		return nil, err
	}
	active := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if p.Activo {
			active = append(active, p)
		}
	}
	return active, nil
}

func indexOf(products []entity.Product, id int) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}

func toFields(in dto.ProductRequest) validation.ProductFields {
	return validation.ProductFields{
		Nombre:      in.Nombre.String(),
		Descripcion: in.Descripcion.String(),
		Precio:      in.Precio.String(),
		Cantidad:    in.Cantidad.String(),
	}
}

func toProductResponse(p entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		Cantidad:    p.Cantidad,
		Activo:      p.Activo,
	}
}
