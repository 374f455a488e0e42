// cmd/api/handlers.go
// This file contains all HTTP request handlers for the books resource.
// Each handler is a method on *applicationDependencies so it has access
// to the logger and database models.
package main

import (
	"errors"
	"net/http"

	"github.com/avelro/bookcatalog/internal/data"
	"github.com/avelro/bookcatalog/internal/validator"
)

// createBookHandler handles POST /books.
// It validates the payload (collecting every failure into one 422
// message), rejects a duplicate (title, author) pair among non-terminated
// books with a 409, and otherwise inserts the record with status Present.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var input data.CreateBookInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	data.ValidateCreateBookInput(v, input)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v)
		return
	}

	// The pair check is case-insensitive and ignores terminated books, so
	// deleting a book frees its (title, author) pair for reuse.
	exists, err := app.models.Books.ExistsByTitleAuthor(input.Title, input.Author)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if exists {
		app.conflictResponse(w, r, "Title and Author already present")
		return
	}

	book := &data.Book{
		Title:         input.Title,
		Author:        input.Author,
		PublishedYear: input.PublishedYear,
		Genre:         input.Genre,
		Available:     *input.Available,
	}

	err = app.models.Books.Insert(book)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, success("Sucessfully created", map[string]any{"id": book.ID}), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listBooksHandler handles GET /books.
// Optional query parameters: author (case-insensitive substring), genre
// (exact), available (exact), start and limit (pagination). Pagination
// only applies when both start and limit are present; the response shape
// reflects which mode was used. An empty result set is still a success.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	v := validator.New()

	filters := data.Filters{
		Author:    app.readString(qs, "author", ""),
		Genre:     app.readString(qs, "genre", ""),
		Available: app.readOptionalBool(qs, "available", v),
		Start:     app.readOptionalInt(qs, "start", v),
		Limit:     app.readOptionalInt(qs, "limit", v),
	}

	data.ValidateFilters(v, filters)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v)
		return
	}

	books, metadata, err := app.models.Books.GetAll(filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	var payload map[string]any
	if filters.Paginated() {
		payload = map[string]any{"data": books, "pagination": metadata}
	} else {
		payload = map[string]any{"items": books}
	}

	err = app.writeJSON(w, http.StatusOK, success("Successfully Fetched", payload), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showBookHandler handles GET /books/:id.
// Terminated books are invisible here; looking one up responds 404 just
// like an id that never existed.
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book, err := app.models.Books.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusNotFound, "id not found")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, success("Successfully Fetched", book), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateBookHandler handles PUT /books/:id.
// The body is a partial update: every field is optional and only supplied
// fields are validated and applied. A body with no recognized fields is a
// no-op, reported with a failure flag on a 200 rather than an error, and
// it must not stamp updated_at.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input data.UpdateBookInput
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Terminated books cannot be updated; the lookup already excludes them.
	book, err := app.models.Books.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusNotFound, "Book with provided ID Not Found")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	v := validator.New()
	data.ValidateUpdateBookInput(v, input)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v)
		return
	}

	if input.IsEmpty() {
		body := envelope{Status: false, Message: "No changes provided", Data: map[string]any{"id": id}}
		err = app.writeJSON(w, http.StatusOK, body, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	input.ApplyTo(book)

	err = app.models.Books.Update(book)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusNotFound, "Book with provided ID Not Found")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, success("Successfully Updated", map[string]any{"id": id}), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteBookHandler handles DELETE /books/:id.
// Delete is a soft delete and is idempotent: the first call on a present
// book terminates it, any repeat reports "already terminated" on a 200.
// Only an id that never existed responds 404.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.models.Books.SoftDelete(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusNotFound, "Book with provided ID Not Found")
		case errors.Is(err, data.ErrAlreadyTerminated):
			writeErr := app.writeJSON(w, http.StatusOK, success("Book is already terminated", nil), nil)
			if writeErr != nil {
				app.serverErrorResponse(w, r, writeErr)
			}
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, success("Successfully Deleted", nil), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
