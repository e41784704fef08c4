// Package csvstore implementa el puerto ProductStore sobre un archivo de texto
// delimitado por comas, una línea por producto y una cabecera fija.
package csvstore

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-perfil/internal/domain/entity"
)

// Header primera línea del archivo; el orden de columnas es fijo.
const Header = "id,nombre,descripcion,precio,cantidad,activo"

const fieldCount = 6

var lineBreakRe = regexp.MustCompile(`[\r\n]+`)

// EncodeLine serializa un producto en una sola línea (sin salto final).
func EncodeLine(p entity.Product) string {
	activo := "0"
	if p.Activo {
		activo = "1"
	}
	return strings.Join([]string{
		strconv.Itoa(p.ID),
		escapeField(p.Nombre),
		escapeField(p.Descripcion),
		p.Precio.String(),
		strconv.Itoa(p.Cantidad),
		activo,
	}, ",")
}

// escapeField reemplaza saltos de línea por un espacio (el formato es orientado a líneas)
// y entrecomilla el valor si contiene coma o comilla, duplicando las comillas internas.
func escapeField(v string) string {
	v = lineBreakRe.ReplaceAllString(v, " ")
	if strings.ContainsAny(v, `,"`) {
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return v
}

// DecodeLine es la operación inversa de EncodeLine.
func DecodeLine(line string) (entity.Product, error) {
	fields := splitLine(line)
	if len(fields) != fieldCount {
		return entity.Product{}, fmt.Errorf("se esperaban %d campos, se encontraron %d", fieldCount, len(fields))
	}

	id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return entity.Product{}, fmt.Errorf("id %q: %w", fields[0], err)
	}
	precio, err := decimal.NewFromString(strings.TrimSpace(fields[3]))
	if err != nil {
		return entity.Product{}, fmt.Errorf("precio %q: %w", fields[3], err)
	}
	cantidad, err := strconv.Atoi(strings.TrimSpace(fields[4]))
	if err != nil {
		return entity.Product{}, fmt.Errorf("cantidad %q: %w", fields[4], err)
	}

	return entity.Product{
		ID:          id,
		Nombre:      fields[1],
		Descripcion: fields[2],
		Precio:      precio,
		Cantidad:    cantidad,
		Activo:      strings.TrimSpace(fields[5]) == "1",
	}, nil
}

// splitLine separa los campos con un interruptor de comillas: cada comilla no
// escapada alterna el estado "dentro de comillas"; dentro de comillas la coma es
// literal y "" produce una comilla literal.
func splitLine(line string) []string {
	var (
		fields   []string
		cur      strings.Builder
		inQuotes bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(fields, cur.String())
}
