package validation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Mensajes de validación de productos.
const (
	MsgNombreMin     = "El nombre debe tener al menos 3 caracteres"
	MsgPrecioInvalid = "El precio debe ser mayor a 0"
	MsgCantidadInval = "La cantidad debe ser un número entero positivo"
)

const nombreMinLen = 3

// precioPattern notación decimal simple: hasta 15 dígitos enteros y 10 decimales.
// Sin signo ni exponente, así el valor siempre tiene una representación acotada.
var precioPattern = regexp.MustCompile(`^[0-9]{1,15}(\.[0-9]{1,10})?$`)

// ProductFields campos candidatos de un producto tal como llegan del cliente (texto crudo).
// Un campo vacío se considera ausente.
type ProductFields struct {
	Nombre      string
	Descripcion string
	Precio      string
	Cantidad    string
}

// ProductValues campos tipados de un producto que superó la validación.
type ProductValues struct {
	Nombre      string
	Descripcion string
	Precio      decimal.Decimal
	Cantidad    int
}

// ValidateProduct aplica las reglas de nombre, precio y cantidad.
func ValidateProduct(f ProductFields) Result {
	_, res := ParseProduct(f)
	return res
}

// ParseProduct valida y, si todo es correcto, devuelve los valores tipados
// (nombre y descripción recortados). Con errores, ProductValues queda en cero.
func ParseProduct(f ProductFields) (ProductValues, Result) {
	var errs []string

	nombre := strings.TrimSpace(f.Nombre)
	if utf8.RuneCountInString(nombre) < nombreMinLen {
		errs = append(errs, MsgNombreMin)
	}

	precio, ok := parsePrecio(f.Precio)
	if !ok {
		errs = append(errs, MsgPrecioInvalid)
	}

	cantidad, ok := parseCantidad(f.Cantidad)
	if !ok {
		errs = append(errs, MsgCantidadInval)
	}

	res := newResult(errs)
	if !res.IsValid {
		return ProductValues{}, res
	}
	return ProductValues{
		Nombre:      nombre,
		Descripcion: strings.TrimSpace(f.Descripcion),
		Precio:      precio,
		Cantidad:    cantidad,
	}, res
}

func parsePrecio(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if !precioPattern.MatchString(raw) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}

// parseCantidad exige un entero en base 10: "5.5" y "5.0" no son válidos.
func parseCantidad(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
