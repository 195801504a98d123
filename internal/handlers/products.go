package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/DanNess-system/Jardin-Infinito/internal/models"
	"github.com/DanNess-system/Jardin-Infinito/internal/store"
	"github.com/DanNess-system/Jardin-Infinito/internal/wordpress"
)

type ProductHandler struct {
	Store *store.Store
}

// productPayload accepts what the admin panel sends. Pointers distinguish
// "absent" from zero values; the price/stock fields stay untyped because the
// panel may post them as strings.
type productPayload struct {
	Title         *string `json:"titulo"`
	Description   *string `json:"descripcion"`
	Image         *string `json:"imagen"`
	OriginalPrice any     `json:"precioOriginal"`
	DiscountPrice any     `json:"precioDescuento"`
	Category      *string `json:"categoria"`
	Stock         any     `json:"stock"`
	Active        *bool   `json:"activo"`
}

// List handles GET /api/products. categoria and activo are optional equality
// filters; "Todas" disables the category one.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("categoria")
	if category == "Todas" {
		category = ""
	}

	var active *bool
	if raw := r.URL.Query().Get("activo"); raw != "" {
		value := raw == "true"
		active = &value
	}

	products, err := h.Store.ListProducts(category, active)
	if err != nil {
		internalError(w, "Failed to list products", err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	respondData(w, http.StatusOK, products)
}

// Get handles GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	product, err := h.Store.GetProductByID(id)
	if err != nil {
		internalError(w, "Failed to fetch product", err)
		return
	}
	if product == nil {
		respondError(w, http.StatusNotFound, "Producto no encontrado")
		return
	}
	respondData(w, http.StatusOK, product)
}

// Create handles POST /api/products. Requires a session (enforced by the
// router). Every field except stock and activo is mandatory.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	if emptyString(payload.Title) || emptyString(payload.Description) || emptyString(payload.Image) ||
		emptyString(payload.Category) || payload.OriginalPrice == nil || payload.DiscountPrice == nil {
		respondError(w, http.StatusBadRequest, "Todos los campos son requeridos")
		return
	}

	product := &models.Product{
		Title:         *payload.Title,
		Description:   *payload.Description,
		Image:         *payload.Image,
		OriginalPrice: wordpress.Number(payload.OriginalPrice),
		DiscountPrice: wordpress.Number(payload.DiscountPrice),
		Category:      *payload.Category,
		Stock:         int(wordpress.Number(payload.Stock)),
		Active:        true,
	}
	if payload.Active != nil {
		product.Active = *payload.Active
	}

	if err := h.Store.CreateProduct(product); err != nil {
		internalError(w, "Failed to create product", err)
		return
	}
	respondData(w, http.StatusCreated, product)
}

// Update handles PUT /api/products/{id}: a patch that only touches the
// supplied fields.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	existing, err := h.Store.GetProductByID(id)
	if err != nil {
		internalError(w, "Failed to fetch product", err)
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Producto no encontrado")
		return
	}

	fields := map[string]any{}
	if !emptyString(payload.Title) {
		fields["titulo"] = *payload.Title
	}
	if !emptyString(payload.Description) {
		fields["descripcion"] = *payload.Description
	}
	if !emptyString(payload.Image) {
		fields["imagen"] = *payload.Image
	}
	if !emptyString(payload.Category) {
		fields["categoria"] = *payload.Category
	}
	if payload.OriginalPrice != nil {
		fields["precio_original"] = wordpress.Number(payload.OriginalPrice)
	}
	if payload.DiscountPrice != nil {
		fields["precio_descuento"] = wordpress.Number(payload.DiscountPrice)
	}
	if payload.Stock != nil {
		fields["stock"] = int(wordpress.Number(payload.Stock))
	}
	if payload.Active != nil {
		fields["activo"] = *payload.Active
	}

	if err := h.Store.UpdateProductFields(id, fields); err != nil {
		internalError(w, "Failed to update product", err)
		return
	}

	updated, err := h.Store.GetProductByID(id)
	if err != nil {
		internalError(w, "Failed to fetch product", err)
		return
	}
	respondData(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	if err := h.Store.DeleteProduct(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Producto no encontrado")
			return
		}
		internalError(w, "Failed to delete product", err)
		return
	}
	respondMessage(w, http.StatusOK, "Producto eliminado exitosamente")
}

func (h *ProductHandler) productID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 1 {
		respondError(w, http.StatusBadRequest, "ID del producto es requerido")
		return 0, false
	}
	return id, true
}

func emptyString(s *string) bool {
	return s == nil || *s == ""
}
