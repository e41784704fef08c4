package csvstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/catalogo-perfil/internal/domain"
	"github.com/jhoicas/catalogo-perfil/internal/domain/entity"
	"github.com/jhoicas/catalogo-perfil/internal/domain/repository"
	"github.com/jhoicas/catalogo-perfil/pkg/logger"
)

var _ repository.ProductStore = (*ProductStore)(nil)

// ProductStore implementación del puerto ProductStore sobre un archivo CSV.
// No guarda nada en memoria entre llamadas: el archivo es la fuente de verdad.
// Un archivo inexistente equivale a un catálogo vacío; WriteAll lo crea.
type ProductStore struct {
	path    string
	log     *logger.Logger
	rename  func(oldpath, newpath string) error
	syncDir func(dir string) error
}

// NewProductStore construye el adaptador para el archivo en path.
func NewProductStore(path string, log *logger.Logger) *ProductStore {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductStore{path: path, log: log.Named("csvstore"), rename: os.Rename, syncDir: syncDir}
}

// Path ruta del archivo de productos.
func (s *ProductStore) Path() string { return s.path }

// ReadAll lee y decodifica todos los productos. La primera línea (cabecera) se descarta
// y las líneas en blanco se omiten. Una línea indecodificable hace fallar la lectura
// completa para que una escritura posterior no pierda registros.
func (s *ProductStore) ReadAll() ([]entity.Product, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []entity.Product{}, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageRead, err)
	}

	content := strings.TrimSpace(string(data))
	if content == "" {
		return []entity.Product{}, nil
	}
	lines := strings.Split(content, "\n")

	products := make([]entity.Product, 0, len(lines)-1)
	for i, raw := range lines[1:] {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		p, err := DecodeLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: línea %d: %v", domain.ErrStorageRead, i+2, err)
		}
		products = append(products, p)
	}
	return products, nil
}

// WriteAll reemplaza el contenido completo del archivo con la cabecera y los productos
// en el orden recibido. Escribe en un temporal del mismo directorio y lo renombra,
// de modo que un fallo deja intacto el contenido anterior.
func (s *ProductStore) WriteAll(products []entity.Product) error {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteByte('\n')
	for _, p := range products {
		b.WriteString(EncodeLine(p))
		b.WriteByte('\n')
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: crear directorio: %v", domain.ErrStorageWrite, err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(s.path)+"."+uuid.NewString()+".tmp")
	if err := writeFileSync(tmp, []byte(b.String())); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}
	if err := s.rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: reemplazar archivo: %v", domain.ErrStorageWrite, err)
	}
	// El rename solo es durable tras sincronizar el directorio. Si falla, el
	// contenido nuevo ya es visible, así que se registra y no se reporta error.
	if err := s.syncDir(dir); err != nil {
		s.log.Warn().Err(err).Str("dir", dir).Msg("no se pudo sincronizar el directorio")
	}

	s.log.Debug().Int("productos", len(products)).Str("path", s.path).Msg("productos guardados")
	return nil
}

// NextID devuelve 1 si no hay productos, o el mayor ID + 1. Los IDs de productos
// eliminados lógicamente siguen contando, así que nunca se reutilizan.
// Sin bloqueo propio: entre NextID y WriteAll se asume un único escritor.
func (s *ProductStore) NextID() (int, error) {
	products, err := s.ReadAll()
	if err != nil {
		return 0, err
	}
	return nextID(products), nil
}

func nextID(products []entity.Product) int {
	maxID := 0
	for _, p := range products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}

func writeFileSync(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	if err := d.Sync(); err != nil {
		_ = d.Close()
		return err
	}
	return d.Close()
}
