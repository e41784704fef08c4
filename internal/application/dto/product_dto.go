package dto

import "github.com/shopspring/decimal"

// ProductRequest entrada para crear o actualizar un producto.
// id y activo no se aceptan: los asigna el servicio.
type ProductRequest struct {
	Nombre      TextValue `json:"nombre" form:"nombre"`
	Descripcion TextValue `json:"descripcion" form:"descripcion"`
	Precio      TextValue `json:"precio" form:"precio"`
	Cantidad    TextValue `json:"cantidad" form:"cantidad"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int             `json:"id"`
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	Cantidad    int             `json:"cantidad"`
	Activo      bool            `json:"activo"`
}

// ProductListResponse listado de productos activos (consumido por la tabla del cliente).
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}
