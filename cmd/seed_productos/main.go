// seed_productos carga productos en el catálogo CSV a partir de una exportación
// de hoja de cálculo (columnas nombre, descripcion, precio, cantidad en cualquier orden).
//
// Uso: go run ./cmd/seed_productos [-latin1] [-csv data/productos.csv] productos.csv
// Cada fila pasa por las mismas validaciones que el API; las filas inválidas se
// informan y se omiten. -latin1 decodifica archivos ISO-8859-1 (Excel en Windows).
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/catalogo-perfil/internal/application/usecase"
	"github.com/jhoicas/catalogo-perfil/internal/infrastructure/csvstore"
	"github.com/jhoicas/catalogo-perfil/pkg/config"
	"github.com/jhoicas/catalogo-perfil/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	latin1 := flag.Bool("latin1", false, "el archivo de entrada está en ISO-8859-1")
	csvPath := flag.String("csv", cfg.Storage.ProductsCSVPath, "archivo del catálogo a poblar")
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir archivo: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var in io.Reader = f
	if *latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}

	log := logger.New(logger.Config{Env: "development", Level: cfg.App.LogLevel})
	uc := usecase.NewProductUseCase(csvstore.NewProductStore(*csvPath, log), log)

	res, err := importProducts(in, uc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Importar: %v\n", err)
		os.Exit(1)
	}
	for _, r := range res.Rejected {
		fmt.Fprintf(os.Stderr, "fila %d omitida: %s\n", r.Row, r.Reason)
	}
	fmt.Printf("Importados %d productos en %s (%d omitidos)\n", res.Created, *csvPath, len(res.Rejected))
}
