package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"dessert-api/db"
	"dessert-api/imagehost"
	"dessert-api/middlewares"
	"dessert-api/models"
	"dessert-api/utils"
)

const (
	detailNotFound     = "Dessert not found"
	detailUploadFailed = "Image upload failed"

	discardTimeout = 10 * time.Second
)

// DessertHandler serves the dessert CRUD routes.
type DessertHandler struct {
	store    db.Store
	images   imagehost.Uploader
	maxBytes int64

	// TempDir is where uploads are staged; empty means os.TempDir.
	TempDir string
}

func NewDessertHandler(store db.Store, images imagehost.Uploader, maxUploadBytes int64) *DessertHandler {
	return &DessertHandler{store: store, images: images, maxBytes: maxUploadBytes}
}

// ListDesserts godoc
// @Summary  List all desserts
// @Tags     desserts
// @Produce  json
// @Success  200  {array}   models.Dessert
// @Failure  500  {object}  map[string]string
// @Router   / [get]
func (h *DessertHandler) ListDesserts(w http.ResponseWriter, r *http.Request) {
	sess, err := h.store.Session(r.Context())
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	defer sess.Close()

	desserts, err := sess.ListDesserts(r.Context())
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, desserts)
}

// GetDessert godoc
// @Summary  Retrieve a dessert by id
// @Tags     desserts
// @Produce  json
// @Param    id   path      string  true  "Dessert ID"
// @Success  200  {object}  models.Dessert
// @Failure  404  {object}  map[string]string
// @Router   /desserts/{id} [get]
func (h *DessertHandler) GetDessert(w http.ResponseWriter, r *http.Request) {
	sess, err := h.store.Session(r.Context())
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	defer sess.Close()

	dessert, err := sess.GetDessert(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, db.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, detailNotFound)
		return
	}
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dessert)
}

// CreateDessert godoc
// @Summary  Create a dessert
// @Tags     desserts
// @Accept   multipart/form-data
// @Produce  json
// @Param    dessert_name  formData  string  true  "Name"
// @Param    description   formData  string  true  "Description"
// @Param    price         formData  number  true  "Price"
// @Param    image         formData  file    true  "Image"
// @Success  201  {object}  models.Dessert
// @Failure  422  {object}  map[string]string
// @Failure  502  {object}  map[string]string
// @Failure  500  {object}  map[string]string
// @Router   /create-dessert [post]
func (h *DessertHandler) CreateDessert(w http.ResponseWriter, r *http.Request) {
	form, err := parseDessertForm(w, r, h.maxBytes)
	if err != nil {
		writeFormError(w, err)
		return
	}
	defer form.Close()

	ctx := r.Context()
	sess, err := h.store.Session(ctx)
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	defer sess.Close()

	upload, err := h.uploadImage(ctx, form)
	if err != nil {
		h.writeUploadError(w, r, err)
		return
	}

	dessert := &models.Dessert{
		ID:          uuid.NewString(),
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		ImageURL:    upload.URL,
	}
	if err := sess.CreateDessert(ctx, dessert); err != nil {
		h.discardImage(ctx, upload)
		writeInternal(w, r, err)
		return
	}

	slog.Info("Dessert created", "id", dessert.ID, "subject", middlewares.GetSubject(r))
	writeJSON(w, http.StatusCreated, dessert)
}

// UpdateDessert godoc
// @Summary  Replace every field of a dessert
// @Tags     desserts
// @Accept   multipart/form-data
// @Param    id            path      string  true  "Dessert ID"
// @Param    dessert_name  formData  string  true  "Name"
// @Param    description   formData  string  true  "Description"
// @Param    price         formData  number  true  "Price"
// @Param    image         formData  file    true  "Image"
// @Success  204
// @Failure  404  {object}  map[string]string
// @Failure  502  {object}  map[string]string
// @Failure  500  {object}  map[string]string
// @Router   /dessert/{id} [put]
func (h *DessertHandler) UpdateDessert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, err := h.store.Session(ctx)
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	defer sess.Close()

	dessert, err := sess.GetDessert(ctx, mux.Vars(r)["id"])
	if errors.Is(err, db.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, detailNotFound)
		return
	}
	if err != nil {
		writeInternal(w, r, err)
		return
	}

	form, err := parseDessertForm(w, r, h.maxBytes)
	if err != nil {
		writeFormError(w, err)
		return
	}
	defer form.Close()

	upload, err := h.uploadImage(ctx, form)
	if err != nil {
		h.writeUploadError(w, r, err)
		return
	}

	dessert.Name = form.Name
	dessert.Description = form.Description
	dessert.Price = form.Price
	dessert.ImageURL = upload.URL

	err = sess.UpdateDessert(ctx, dessert)
	if err != nil {
		h.discardImage(ctx, upload)
		if errors.Is(err, db.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, detailNotFound)
			return
		}
		writeInternal(w, r, err)
		return
	}

	slog.Info("Dessert updated", "id", dessert.ID, "subject", middlewares.GetSubject(r))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteDessert godoc
// @Summary  Delete a dessert
// @Tags     desserts
// @Param    id   path  string  true  "Dessert ID"
// @Success  204
// @Failure  404  {object}  map[string]string
// @Router   /dessert/{id} [delete]
func (h *DessertHandler) DeleteDessert(w http.ResponseWriter, r *http.Request) {
	sess, err := h.store.Session(r.Context())
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	defer sess.Close()

	id := mux.Vars(r)["id"]
	err = sess.DeleteDessert(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, detailNotFound)
		return
	}
	if err != nil {
		writeInternal(w, r, err)
		return
	}

	slog.Info("Dessert deleted", "id", id, "subject", middlewares.GetSubject(r))
	w.WriteHeader(http.StatusNoContent)
}

// uploadImage stages the form image on disk and uploads it from there.
func (h *DessertHandler) uploadImage(ctx context.Context, form *dessertForm) (*imagehost.Result, error) {
	staged, cleanup, err := utils.StageTempFile(h.TempDir, form.Image, form.Filename)
	defer cleanup()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(staged.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return h.images.Upload(ctx, f, staged.Name)
}

func (h *DessertHandler) writeUploadError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, imagehost.ErrUploadRejected) {
		slog.Warn("Image upload rejected", "path", r.URL.Path, "error", err)
		writeDetail(w, http.StatusBadGateway, detailUploadFailed)
		return
	}
	writeInternal(w, r, err)
}

// discardImage deletes an upload whose record could not be written.
// Failure leaves an orphaned image, which is only logged.
func (h *DessertHandler) discardImage(ctx context.Context, upload *imagehost.Result) {
	if upload.FileID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), discardTimeout)
	defer cancel()

	if err := h.images.Delete(ctx, upload.FileID); err != nil {
		slog.Error("Failed to delete orphaned image", "file_id", upload.FileID, "url", upload.URL, "error", err)
	}
}
