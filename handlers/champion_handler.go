package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ffarena/arena-backend/services"
)

const (
	maxChampionImageSize = 5 * 1024 * 1024
	maxGalleryImages     = 10
)

type ChampionHandler struct {
	championService services.ChampionService
}

func NewChampionHandler(championService services.ChampionService) *ChampionHandler {
	return &ChampionHandler{championService: championService}
}

// List handles GET /champions.
func (h *ChampionHandler) List(w http.ResponseWriter, r *http.Request) {
	champions, err := h.championService.ListChampions(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"champions": champions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Get handles GET /champions/{id}.
func (h *ChampionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	champion, err := h.championService.GetChampionByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"champion": champion}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Create handles POST /admin/champions.
func (h *ChampionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.ChampionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	champion, err := h.championService.CreateChampion(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"champion": champion}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Update handles PUT /admin/champions/{id}.
func (h *ChampionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input services.ChampionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	champion, err := h.championService.UpdateChampion(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"champion": champion}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Delete handles DELETE /admin/champions/{id}.
func (h *ChampionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.championService.DeleteChampion(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadMedia handles POST /admin/champions/{id}/media. Multipart fields:
// "hero" and "proof" are single optional images, "gallery" may repeat.
func (h *ChampionHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(32 * 1024 * 1024); err != nil {
		badRequestResponse(w, r, errors.New("request must be multipart/form-data"))
		return
	}

	var media services.ChampionMedia

	hero, err := h.readImageField(r, "hero")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	media.Hero = hero

	proof, err := h.readImageField(r, "proof")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	media.Proof = proof

	if r.MultipartForm != nil {
		gallery := r.MultipartForm.File["gallery"]
		if len(gallery) > maxGalleryImages {
			badRequestResponse(w, r, errors.New("too many gallery images"))
			return
		}
		for _, header := range gallery {
			file, err := h.openImage(header)
			if err != nil {
				badRequestResponse(w, r, err)
				return
			}
			media.Gallery = append(media.Gallery, *file)
		}
	}

	if media.Hero == nil && media.Proof == nil && len(media.Gallery) == 0 {
		badRequestResponse(w, r, errors.New("at least one image is required"))
		return
	}

	champion, err := h.championService.UploadMedia(r.Context(), id, media)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"champion": champion}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionHandler) readImageField(r *http.Request, field string) (*services.MediaFile, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	file.Close()
	return h.openImage(header)
}

func (h *ChampionHandler) openImage(header *multipart.FileHeader) (*services.MediaFile, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	data, size, err := services.ReadAllMedia(file, maxChampionImageSize)
	file.Close()
	if err != nil {
		return nil, err
	}
	if size > maxChampionImageSize {
		return nil, fmt.Errorf("image %q exceeds the %d byte limit", header.Filename, maxChampionImageSize)
	}
	return &services.MediaFile{
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
