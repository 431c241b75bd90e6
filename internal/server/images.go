package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"lessonstore/internal/commons"
	"lessonstore/internal/dto"
)

// ImageHandler serves lesson pictures from a directory on disk. Anything that
// is not a regular file inside that directory is answered with a JSON 404.
type ImageHandler struct {
	dir    string
	logger *zap.Logger
}

func NewImageHandler(dir string, logger *zap.Logger) *ImageHandler {
	return &ImageHandler{dir: dir, logger: logger}
}

func (h *ImageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Clean against "/" so ".." can never climb out of dir.
	name := path.Clean("/" + chi.URLParam(r, "*"))
	file := filepath.Join(h.dir, filepath.FromSlash(name))

	info, err := os.Stat(file)
	if err != nil || !info.Mode().IsRegular() {
		commons.WriteJSON(w, http.StatusNotFound, dto.ErrorResponse{
			Success: false,
			Code:    dto.CodeNotFound,
			Message: "Image not found",
		}, h.logger)
		return
	}

	http.ServeFile(w, r, file)
}
