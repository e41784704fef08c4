package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo persistido en el archivo CSV.
// ID es secuencial y nunca se reutiliza; Activo=false es un borrado lógico definitivo.
type Product struct {
	ID          int
	Nombre      string
	Descripcion string
	Precio      decimal.Decimal
	Cantidad    int
	Activo      bool
}
