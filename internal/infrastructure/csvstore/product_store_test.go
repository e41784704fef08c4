package csvstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-perfil/internal/domain"
	"github.com/jhoicas/catalogo-perfil/internal/domain/entity"
)

const seedCSV = `id,nombre,descripcion,precio,cantidad,activo
        1,Producto Test 1,Descripción test 1,1000,10,1

        2,Producto Test 2,"Descripción, con coma",2000,20,1
        3,Producto Inactivo,Descripción inactiva,3000,30,0
`

func newTestStore(t *testing.T, content string) *ProductStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "productos.csv")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return NewProductStore(path, nil)
}

func TestReadAll_OmiteCabeceraYLineasEnBlanco(t *testing.T) {
	s := newTestStore(t, seedCSV)

	products, err := s.ReadAll()
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, "Producto Test 1", products[0].Nombre)
	assert.Equal(t, "Descripción, con coma", products[1].Descripcion)
	assert.Equal(t, 30, products[2].Cantidad)
	assert.False(t, products[2].Activo)
}

func TestReadAll_ArchivoInexistenteEsCatalogoVacio(t *testing.T) {
	s := newTestStore(t, "")

	products, err := s.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestReadAll_SoloCabecera(t *testing.T) {
	s := newTestStore(t, Header+"\n")

	products, err := s.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestReadAll_LineaCorruptaEsErrorDeLectura(t *testing.T) {
	s := newTestStore(t, Header+"\n1,ok,,1,1,1\n2,roto\n")

	_, err := s.ReadAll()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorageRead)
	assert.Contains(t, err.Error(), "línea 3")
}

func TestReadAll_RutaIlegibleEsErrorDeLectura(t *testing.T) {
	dir := t.TempDir()
	s := NewProductStore(dir, nil) // un directorio no se puede leer como archivo

	_, err := s.ReadAll()
	assert.ErrorIs(t, err, domain.ErrStorageRead)
}

func TestWriteAll_CreaArchivoConCabeceraYOrdenDado(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "productos.csv")
	s := NewProductStore(path, nil)

	in := []entity.Product{
		product(5, "Quinto", "", "5", 5, true),
		product(2, "Segundo, bis", "", "2", 2, false),
	}
	require.NoError(t, s.WriteAll(in))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Header+"\n5,Quinto,,5,5,1\n2,\"Segundo, bis\",,2,2,0\n", string(raw))

	out, err := s.ReadAll()
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 5, out[0].ID)
	assert.Equal(t, 2, out[1].ID)
}

func TestWriteAll_FalloConservaContenidoAnterior(t *testing.T) {
	s := newTestStore(t, seedCSV)
	s.rename = func(string, string) error { return errors.New("disco lleno") }

	err := s.WriteAll([]entity.Product{product(9, "Nuevo", "", "1", 1, true)})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorageWrite)

	raw, readErr := os.ReadFile(s.Path())
	require.NoError(t, readErr)
	assert.Equal(t, seedCSV, string(raw))

	entries, readErr := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, readErr)
	assert.Len(t, entries, 1, "no deben quedar temporales")
}

// El directorio se sincroniza después del rename, con el archivo nuevo ya en su lugar.
func TestWriteAll_SincronizaDirectorioTrasRename(t *testing.T) {
	s := newTestStore(t, seedCSV)
	var synced []string
	s.syncDir = func(dir string) error {
		raw, err := os.ReadFile(s.Path())
		require.NoError(t, err)
		assert.Contains(t, string(raw), "Nuevo", "el rename precede a la sincronización")
		synced = append(synced, dir)
		return syncDir(dir)
	}

	require.NoError(t, s.WriteAll([]entity.Product{product(9, "Nuevo", "", "1", 1, true)}))
	assert.Equal(t, []string{filepath.Dir(s.Path())}, synced)
}

func TestWriteAll_FalloAlSincronizarDirectorioNoEsError(t *testing.T) {
	s := newTestStore(t, seedCSV)
	s.syncDir = func(string) error { return errors.New("sync no soportado") }

	require.NoError(t, s.WriteAll([]entity.Product{product(9, "Nuevo", "", "1", 1, true)}))

	out, err := s.ReadAll()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 9, out[0].ID)
}

func TestNextID(t *testing.T) {
	s := newTestStore(t, "")
	id, err := s.NextID()
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	s = newTestStore(t, seedCSV)
	id, err = s.NextID()
	require.NoError(t, err)
	assert.Equal(t, 4, id)

	// Con huecos y desorden manda el máximo.
	s = newTestStore(t, Header+"\n7,a b c,,1,1,0\n3,d e f,,1,1,1\n")
	id, err = s.NextID()
	require.NoError(t, err)
	assert.Equal(t, 8, id)
}
