// cmd/api/images.go
// Cover image upload. The file lands on disk under a generated name and its
// URL is stored on the book row; the files themselves are served read-only
// under /images/ (see routes.go).
package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/yacineKHA/library-api/internal/data"
)

// maxCoverBytes caps the size of an uploaded cover image (10 MB).
const maxCoverBytes = 10 << 20

// allowedCoverExtensions is the set of upload file extensions we accept.
var allowedCoverExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// uploadBookCoverHandler handles POST /v1/books/:id/cover.
// The request is multipart/form-data with the image in the "file" field.
// Responds 404 if the book does not exist and 400 if the file extension is
// not an allowed image format. The book row keeps the resulting image URL.
//
// The file is written before the row update, but removed again if the update
// fails, so a failed request never leaves an orphaned file behind.
func (app *applicationDependencies) uploadBookCoverHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Confirm the book exists before reading the upload at all.
	_, err = app.models.Books.Get(bookID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxCoverBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		app.badRequestResponse(w, r, errors.New("request must contain a \"file\" form field"))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedCoverExtensions[ext] {
		app.badRequestResponse(w, r, fmt.Errorf("unsupported image format %q", ext))
		return
	}

	// A random component in the filename makes collisions between uploads for
	// the same book a non-issue.
	filename := fmt.Sprintf("book_%d_%s%s", bookID, uuid.NewString(), ext)
	path := filepath.Join(app.config.uploadDir, filename)

	dst, err := os.Create(path)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	_, err = io.Copy(dst, file)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		app.serverErrorResponse(w, r, err)
		return
	}

	coverURL := "/images/" + filename
	err = app.models.Books.UpdateCoverURL(bookID, coverURL)
	if err != nil {
		// Don't leave the file behind if the row update failed.
		os.Remove(path)
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"cover_url": coverURL}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
