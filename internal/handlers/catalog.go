package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/DanNess-system/Jardin-Infinito/internal/catalog"
)

type CatalogHandler struct {
	Loader *catalog.Loader
}

type catalogResponse struct {
	Success    bool           `json:"success"`
	Data       []catalog.Item `json:"data"`
	Categories []string       `json:"categories"`
}

type blogResponse struct {
	Success bool           `json:"success"`
	Data    []catalog.Post `json:"data"`
}

// Collection handles GET /api/catalog/{collection}. Supported query
// filters: destacados=true, categoria, limit.
func (h *CatalogHandler) Collection(w http.ResponseWriter, r *http.Request) {
	col, ok := catalog.BySlug(r.PathValue("collection"))
	if !ok {
		respondError(w, http.StatusNotFound, "Colección no encontrada")
		return
	}

	opts := catalog.Options{
		OnlyFeatured: r.URL.Query().Get("destacados") == "true",
		Category:     r.URL.Query().Get("categoria"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			opts.Limit = limit
		}
	}

	result, err := h.Loader.Load(r.Context(), col, opts)
	if err != nil {
		slog.Error("Catalog load failed", "collection", col.Slug, "error", err)
		writeJSON(w, http.StatusBadGateway, Envelope{
			Success: false,
			Message: "Error al cargar los productos. Por favor, intenta de nuevo.",
		})
		return
	}
	writeJSON(w, http.StatusOK, catalogResponse{
		Success:    true,
		Data:       result.Items,
		Categories: result.Categories,
	})
}

// Blog handles GET /api/blog?limit=n.
func (h *CatalogHandler) Blog(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	posts, err := h.Loader.LoadPosts(r.Context(), limit)
	if err != nil {
		slog.Error("Blog load failed", "error", err)
		writeJSON(w, http.StatusBadGateway, Envelope{
			Success: false,
			Message: "Error al cargar las entradas del blog. Por favor, intenta de nuevo.",
		})
		return
	}
	writeJSON(w, http.StatusOK, blogResponse{Success: true, Data: posts})
}
