package handlers

import (
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

const maxUploadBytes = 10 << 20

type UploadHandler struct {
	// Dir is where processed images land, e.g. "static/uploads".
	Dir string
}

type uploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

// Upload handles POST /api/uploads: a multipart "imagen" field holding a PNG
// or JPEG. Images are scaled down to 800px wide and re-encoded as JPEG under
// a random filename so uploads never collide or carry their original name.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "La imagen es demasiado grande")
		return
	}

	file, header, err := r.FormFile("imagen")
	if err != nil {
		respondError(w, http.StatusBadRequest, "La imagen es requerida")
		return
	}
	defer file.Close()

	var img image.Image
	switch filepath.Ext(header.Filename) {
	case ".png":
		img, err = png.Decode(file)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(file)
	default:
		respondError(w, http.StatusBadRequest, "Formato de imagen no soportado")
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, "La imagen no se pudo procesar")
		return
	}

	scaled := resize.Resize(800, 0, img, resize.Lanczos3)
	filename := uuid.New().String() + ".jpg"

	out, err := os.Create(filepath.Join(h.Dir, filename))
	if err != nil {
		internalError(w, "Failed to store upload", err)
		return
	}
	defer out.Close()

	if err := jpeg.Encode(out, scaled, &jpeg.Options{Quality: 80}); err != nil {
		internalError(w, "Failed to encode upload", err)
		return
	}

	writeJSON(w, http.StatusCreated, uploadResponse{Success: true, URL: "/static/uploads/" + filename})
}
