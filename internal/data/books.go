package data

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // register the postgres dialect
)

// dialect builds every books query with PostgreSQL placeholders.
var dialect = goqu.Dialect("postgres")

const booksTable = "books"

// BookStore defines every database operation the handlers need. BookModel
// is the PostgreSQL implementation; tests substitute a fake.
type BookStore interface {
	Insert(book *Book) error
	ExistsByTitleAuthor(title, author string) (bool, error)
	GetAll(filters Filters) ([]*Book, Metadata, error)
	Get(id int64) (*Book, error)
	Update(book *Book) error
	SoftDelete(id int64) error
}

// BookModel wraps a *sql.DB connection pool and provides methods for
// creating, reading, updating, and soft-deleting book records.
type BookModel struct {
	DB *sql.DB
}

// Insert persists a new book with status Present. After a successful
// insert, the database-assigned id and created_at are written back into
// the book struct.
func (m BookModel) Insert(book *Book) error {
	query, args, err := dialect.Insert(booksTable).
		Rows(goqu.Record{
			"title":          book.Title,
			"author":         book.Author,
			"published_year": book.PublishedYear,
			"genre":          book.Genre,
			"available":      book.Available,
			"status":         StatusPresent,
		}).
		Returning("id", "created_at").
		Prepared(true).ToSQL()
	if err != nil {
		return err
	}

	book.Status = StatusPresent
	return m.DB.QueryRow(query, args...).Scan(&book.ID, &book.CreatedAt)
}

// ExistsByTitleAuthor reports whether a non-Terminated book with the same
// (title, author) pair already exists, compared case-insensitively.
// A Terminated record never blocks reuse of the pair.
func (m BookModel) ExistsByTitleAuthor(title, author string) (bool, error) {
	query, args, err := dialect.From(booksTable).
		Select(goqu.C("id")).
		Where(
			goqu.Func("lower", goqu.C("title")).Eq(strings.ToLower(title)),
			goqu.Func("lower", goqu.C("author")).Eq(strings.ToLower(author)),
			goqu.C("status").Neq(StatusTerminated),
		).
		Limit(1).
		Prepared(true).ToSQL()
	if err != nil {
		return false, err
	}

	var id int64
	err = m.DB.QueryRow(query, args...).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

// likeEscaper neutralizes the LIKE pattern metacharacters in user input,
// so an author filter of "100%" matches that literal text rather than
// acting as a wildcard.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// filterExpressions translates the filters into the WHERE conditions
// shared by the list and count queries. All filters are AND-combined;
// absent filters impose no constraint, and status != 'Terminated' is
// always applied.
func filterExpressions(f Filters) []goqu.Expression {
	exprs := []goqu.Expression{goqu.C("status").Neq(StatusTerminated)}

	if f.Author != "" {
		exprs = append(exprs, goqu.C("author").ILike("%"+likeEscaper.Replace(f.Author)+"%"))
	}
	if f.Genre != "" {
		exprs = append(exprs, goqu.C("genre").Eq(f.Genre))
	}
	if f.Available != nil {
		exprs = append(exprs, goqu.C("available").Eq(*f.Available))
	}

	return exprs
}

// listQuery builds the SELECT over non-Terminated books. count(*) OVER()
// carries the total matching count before any offset/limit, so one
// round-trip usually serves both the page and the total. Ordering is
// id ASC, which is insertion order.
func listQuery(f Filters) *goqu.SelectDataset {
	ds := dialect.From(booksTable).
		Select(
			goqu.L("count(*) OVER()"),
			goqu.C("id"),
			goqu.C("title"),
			goqu.C("author"),
			goqu.C("published_year"),
			goqu.C("genre"),
			goqu.C("available"),
		).
		Where(filterExpressions(f)...).
		Order(goqu.C("id").Asc())

	if f.Paginated() {
		ds = ds.Offset(uint(*f.Start)).Limit(uint(*f.Limit))
	}

	return ds
}

// countQuery builds a plain COUNT over the same WHERE clause as
// listQuery, with no offset or limit. It backs the total when a
// requested page lies past the end of the result set and the window
// count therefore comes back on no rows at all.
func countQuery(f Filters) *goqu.SelectDataset {
	return dialect.From(booksTable).
		Select(goqu.COUNT(goqu.Star())).
		Where(filterExpressions(f)...)
}

// GetAll retrieves the filtered list of non-Terminated books. The returned
// Metadata is only meaningful when filters.Paginated() is true.
func (m BookModel) GetAll(filters Filters) ([]*Book, Metadata, error) {
	query, args, err := listQuery(filters).Prepared(true).ToSQL()
	if err != nil {
		return nil, Metadata{}, err
	}

	rows, err := m.DB.Query(query, args...)
	if err != nil {
		return nil, Metadata{}, err
	}
	defer rows.Close()

	totalItems := 0
	books := []*Book{}

	for rows.Next() {
		var book Book
		err := rows.Scan(
			&totalItems, // count(*) OVER() is the same value on every row
			&book.ID,
			&book.Title,
			&book.Author,
			&book.PublishedYear,
			&book.Genre,
			&book.Available,
		)
		if err != nil {
			return nil, Metadata{}, err
		}
		book.Status = StatusPresent
		books = append(books, &book)
	}
	if err = rows.Err(); err != nil {
		return nil, Metadata{}, err
	}

	// An out-of-range page returns no rows, so the window count above
	// never ran; fetch the pre-pagination total separately so callers can
	// still compute page counts.
	if filters.Paginated() && len(books) == 0 {
		query, args, err = countQuery(filters).Prepared(true).ToSQL()
		if err != nil {
			return nil, Metadata{}, err
		}
		err = m.DB.QueryRow(query, args...).Scan(&totalItems)
		if err != nil {
			return nil, Metadata{}, err
		}
	}

	metadata := Metadata{TotalItems: totalItems}
	if filters.Paginated() {
		metadata.Start = *filters.Start
		metadata.Limit = *filters.Limit
	}
	return books, metadata, nil
}

// Get retrieves a single non-Terminated book by its primary key.
// Returns ErrRecordNotFound if the id is unknown or the book has been
// terminated; a terminated book is indistinguishable from a missing one
// on the read path.
func (m BookModel) Get(id int64) (*Book, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query, args, err := dialect.From(booksTable).
		Select(
			goqu.C("id"),
			goqu.C("title"),
			goqu.C("author"),
			goqu.C("published_year"),
			goqu.C("genre"),
			goqu.C("available"),
			goqu.C("status"),
			goqu.C("created_at"),
			goqu.C("updated_at"),
		).
		Where(goqu.C("id").Eq(id), goqu.C("status").Neq(StatusTerminated)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	var book Book
	err = m.DB.QueryRow(query, args...).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.PublishedYear,
		&book.Genre,
		&book.Available,
		&book.Status,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &book, nil
}

// Update writes the mutable columns of book back to the database and
// stamps updated_at, which is scanned back into the struct. The write is
// a single atomic statement; it refuses to touch a book that was
// terminated after the caller fetched it.
func (m BookModel) Update(book *Book) error {
	query, args, err := dialect.Update(booksTable).
		Set(goqu.Record{
			"title":          book.Title,
			"author":         book.Author,
			"published_year": book.PublishedYear,
			"genre":          book.Genre,
			"available":      book.Available,
			"updated_at":     goqu.L("now()"),
		}).
		Where(goqu.C("id").Eq(book.ID), goqu.C("status").Neq(StatusTerminated)).
		Returning("updated_at").
		Prepared(true).ToSQL()
	if err != nil {
		return err
	}

	err = m.DB.QueryRow(query, args...).Scan(&book.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRecordNotFound
	}
	return err
}

// SoftDelete flips a book's status to Terminated inside an explicit
// transaction: commit on success, rollback on any failure. The lookup
// deliberately does NOT exclude Terminated rows, so a repeat delete is
// observable as ErrAlreadyTerminated rather than a not-found. No column
// other than status is touched; updated_at is left alone.
func (m BookModel) SoftDelete(id int64) (err error) {
	if id < 1 {
		return ErrRecordNotFound
	}

	tx, err := m.DB.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	query, args, err := dialect.From(booksTable).
		Select(goqu.C("status")).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return err
	}

	var status string
	err = tx.QueryRow(query, args...).Scan(&status)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrRecordNotFound
	case err != nil:
		return err
	}

	if status == StatusTerminated {
		return ErrAlreadyTerminated
	}

	query, args, err = dialect.Update(booksTable).
		Set(goqu.Record{"status": StatusTerminated}).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return err
	}

	_, err = tx.Exec(query, args...)
	return err
}
