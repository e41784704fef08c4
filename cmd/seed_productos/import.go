package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/catalogo-perfil/internal/application/dto"
	"github.com/jhoicas/catalogo-perfil/internal/domain"
)

// productCreator es la parte del caso de uso que necesita la importación.
type productCreator interface {
	Create(in dto.ProductRequest) (*dto.ProductResponse, error)
}

type rejectedRow struct {
	Row    int
	Reason string
}

type importResult struct {
	Created  int
	Rejected []rejectedRow
}

var requiredColumns = []string{"nombre", "descripcion", "precio", "cantidad"}

// importProducts lee la exportación (separador "," o ";", detectado en la cabecera)
// y crea un producto por fila. Los errores de validación se acumulan; cualquier
// otro error (almacenamiento) detiene la importación.
func importProducts(r io.Reader, uc productCreator) (importResult, error) {
	var res importResult

	raw, err := io.ReadAll(r)
	if err != nil {
		return res, fmt.Errorf("leer entrada: %w", err)
	}
	text := strings.TrimPrefix(string(raw), "\ufeff")

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = detectDelimiter(text)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return res, fmt.Errorf("leer cabecera: %w", err)
	}
	cols, err := columnIndex(header)
	if err != nil {
		return res, err
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				res.Rejected = append(res.Rejected, rejectedRow{Row: perr.Line, Reason: perr.Err.Error()})
				continue
			}
			return res, fmt.Errorf("leer fila: %w", err)
		}
		row, _ := reader.FieldPos(0)
		if isBlank(record) {
			continue
		}

		in := dto.ProductRequest{
			Nombre:      dto.TextValue(field(record, cols["nombre"])),
			Descripcion: dto.TextValue(field(record, cols["descripcion"])),
			Precio:      dto.TextValue(field(record, cols["precio"])),
			Cantidad:    dto.TextValue(field(record, cols["cantidad"])),
		}
		if _, err := uc.Create(in); err != nil {
			var vErr *domain.ValidationError
			if errors.As(err, &vErr) {
				res.Rejected = append(res.Rejected, rejectedRow{Row: row, Reason: vErr.Error()})
				continue
			}
			return res, fmt.Errorf("fila %d: %w", row, err)
		}
		res.Created++
	}
	return res, nil
}

func detectDelimiter(text string) rune {
	first, _, _ := strings.Cut(text, "\n")
	if strings.Count(first, ";") > strings.Count(first, ",") {
		return ';'
	}
	return ','
}

func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("faltan columnas: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func field(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
