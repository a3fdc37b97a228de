package handlers

import (
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
)

// formError is a client mistake in the submitted form.
type formError struct {
	status int
	detail string
}

func (e *formError) Error() string { return e.detail }

func invalidField(format string, args ...any) error {
	return &formError{status: http.StatusUnprocessableEntity, detail: fmt.Sprintf(format, args...)}
}

type dessertForm struct {
	Name        string
	Description string
	Price       float64
	Image       multipart.File
	Filename    string
}

func (f *dessertForm) Close() {
	if f.Image != nil {
		f.Image.Close()
	}
}

// formOverhead is the body allowance for text fields and multipart framing
// on top of the image limit.
const formOverhead = 1 << 20

// parseDessertForm reads dessert_name (or name), description, price and the
// image file. maxBytes limits the image; the whole body may be formOverhead
// larger.
func parseDessertForm(w http.ResponseWriter, r *http.Request, maxBytes int64) (*dessertForm, error) {
	bodyLimit := maxBytes + formOverhead
	if r.ContentLength > bodyLimit {
		return nil, &formError{status: http.StatusRequestEntityTooLarge, detail: "Request body too large"}
	}
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &formError{status: http.StatusRequestEntityTooLarge, detail: "Request body too large"}
		}
		return nil, &formError{status: http.StatusBadRequest, detail: "Failed to parse form"}
	}

	form := &dessertForm{
		Name:        strings.TrimSpace(r.FormValue("dessert_name")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}
	if form.Name == "" {
		form.Name = strings.TrimSpace(r.FormValue("name"))
	}
	if form.Name == "" {
		return nil, invalidField("dessert_name is required")
	}
	if form.Description == "" {
		return nil, invalidField("description is required")
	}

	rawPrice := strings.TrimSpace(r.FormValue("price"))
	if rawPrice == "" {
		return nil, invalidField("price is required")
	}
	price, err := strconv.ParseFloat(rawPrice, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, invalidField("price must be a number")
	}
	form.Price = price

	file, header, err := r.FormFile("image")
	if err != nil {
		return nil, invalidField("image is required")
	}
	if header.Size > maxBytes {
		file.Close()
		return nil, &formError{status: http.StatusRequestEntityTooLarge, detail: "Image too large"}
	}
	form.Image = file
	form.Filename = header.Filename

	return form, nil
}

func writeFormError(w http.ResponseWriter, err error) {
	var fe *formError
	if errors.As(err, &fe) {
		writeDetail(w, fe.status, fe.detail)
		return
	}
	writeDetail(w, http.StatusBadRequest, err.Error())
}
