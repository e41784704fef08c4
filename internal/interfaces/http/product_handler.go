package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-perfil/internal/application/dto"
	"github.com/jhoicas/catalogo-perfil/internal/application/ports"
	"github.com/jhoicas/catalogo-perfil/internal/application/usecase"
	"github.com/jhoicas/catalogo-perfil/internal/domain"
	"github.com/jhoicas/catalogo-perfil/pkg/logger"
)

// Mensajes de respuesta del catálogo.
const (
	MsgProductoNoEncontrado  = "Producto no encontrado"
	MsgProductoNoDisponible  = "Producto no disponible"
	MsgProductoCreado        = "Producto creado exitosamente"
	MsgProductoActualizado   = "Producto actualizado exitosamente"
	MsgProductoEliminado     = "Producto eliminado exitosamente"
	MsgErrorObtenerProductos = "Error al obtener productos"
	MsgErrorObtenerProducto  = "Error al obtener el producto"
	MsgErrorGuardarProducto  = "Error al guardar el producto"
	MsgErrorCatalogoPDF      = "Error al generar el catálogo"

	catalogTitle = "Catálogo de productos"
)

// OperationCounter recibe el resultado de cada operación del catálogo (métricas).
type OperationCounter interface {
	CountProductOperation(operation string, err error)
}

type noopCounter struct{}

func (noopCounter) CountProductOperation(string, error) {}

// ProductHandler maneja las peticiones HTTP del catálogo (protegido).
type ProductHandler struct {
	uc      *usecase.ProductUseCase
	pdf     ports.CatalogPDFGenerator
	counter OperationCounter
	log     *logger.Logger
}

// NewProductHandler construye el handler. pdf y counter son opcionales.
func NewProductHandler(uc *usecase.ProductUseCase, pdf ports.CatalogPDFGenerator, counter OperationCounter, log *logger.Logger) *ProductHandler {
	if counter == nil {
		counter = noopCounter{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ProductHandler{uc: uc, pdf: pdf, counter: counter, log: log.Named("productos")}
}

// Page godoc
// @Summary      Página del catálogo
// @Description  Modelo de la vista; la tabla se llena desde /products/api/list.
// @Tags         products
// @Security     Session
// @Produce      json
// @Success      200  {object}  dto.ProductsPageView
// @Success      302  "Redirige a / sin sesión"
// @Router       /products [get]
func (h *ProductHandler) Page(c *fiber.Ctx) error {
	s, _ := GetSession(c)
	return c.JSON(dto.ProductsPageView{
		Title:           "Productos",
		CurrentPage:     "products",
		IsAuthenticated: true,
		User:            &s,
	})
}

// List godoc
// @Summary      Listar productos activos
// @Tags         products
// @Security     Session
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /products/api/list [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	h.counter.CountProductOperation("list", err)
	if err != nil {
		h.log.Error().Err(err).Msg("error obteniendo productos")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: MsgErrorObtenerProductos})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Description  Los productos eliminados (inactivos) responden 404 "Producto no disponible".
// @Tags         products
// @Security     Session
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: MsgProductoNoEncontrado})
	}
	out, err := h.uc.GetByID(id)
	h.counter.CountProductOperation("get", err)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: MsgProductoNoEncontrado})
		}
		h.log.Error().Err(err).Int("id", id).Msg("error obteniendo producto")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: MsgErrorObtenerProducto})
	}
	if !out.Activo {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: MsgProductoNoDisponible})
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Session
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.Envelope
// @Router       /products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Envelope{Success: false, Error: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	h.counter.CountProductOperation("create", err)
	if err != nil {
		return h.mutationError(c, err, 0)
	}
	return c.JSON(dto.Envelope{Success: true, Message: MsgProductoCreado, Product: out})
}

// Update godoc
// @Summary      Actualizar producto
// @Description  Reemplaza nombre, descripción, precio y cantidad; id y activo no cambian.
// @Tags         products
// @Security     Session
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.Envelope
// @Failure      500   {object}  dto.Envelope
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.Envelope{Success: false, Error: MsgProductoNoEncontrado})
	}
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Envelope{Success: false, Error: "cuerpo inválido"})
	}
	out, err := h.uc.Update(id, in)
	h.counter.CountProductOperation("update", err)
	if err != nil {
		return h.mutationError(c, err, id)
	}
	return c.JSON(dto.Envelope{Success: true, Message: MsgProductoActualizado, Product: out})
}

// Delete godoc
// @Summary      Eliminar producto (borrado lógico)
// @Tags         products
// @Security     Session
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.Envelope
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.Envelope
// @Failure      500  {object}  dto.Envelope
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.Envelope{Success: false, Error: MsgProductoNoEncontrado})
	}
	err := h.uc.Delete(id)
	h.counter.CountProductOperation("delete", err)
	if err != nil {
		return h.mutationError(c, err, id)
	}
	return c.JSON(dto.Envelope{Success: true, Message: MsgProductoEliminado})
}

// CatalogPDF godoc
// @Summary      Exportar catálogo en PDF
// @Tags         products
// @Security     Session
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /products/api/catalog.pdf [get]
func (h *ProductHandler) CatalogPDF(c *fiber.Ctx) error {
	if h.pdf == nil {
		return fiber.ErrNotFound
	}
	products, err := h.uc.ActiveProducts()
	if err == nil {
		var doc []byte
		doc, err = h.pdf.GenerateCatalog(catalogTitle, products)
		if err == nil {
			h.counter.CountProductOperation("export_pdf", nil)
			c.Set(fiber.HeaderContentType, "application/pdf")
			c.Set(fiber.HeaderContentDisposition, `inline; filename="catalogo.pdf"`)
			return c.Send(doc)
		}
	}
	h.counter.CountProductOperation("export_pdf", err)
	h.log.Error().Err(err).Msg("error generando catálogo PDF")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: MsgErrorCatalogoPDF})
}

// mutationError traduce errores de Create/Update/Delete al sobre {success:false, error}.
func (h *ProductHandler) mutationError(c *fiber.Ctx, err error, id int) error {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Envelope{Success: false, Error: vErr.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Envelope{Success: false, Error: MsgProductoNoEncontrado})
	default:
		h.log.Error().Err(err).Int("id", id).Msg("error guardando producto")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Envelope{Success: false, Error: MsgErrorGuardarProducto})
	}
}

// productID interpreta :id como entero positivo; cualquier otro valor no corresponde a un producto.
func productID(c *fiber.Ctx) (int, bool) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
