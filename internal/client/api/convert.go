package api

import (
	"fmt"

	"github.com/nlimbasiya24/bookadmin/internal/models"
	pkgapi "github.com/nlimbasiya24/bookadmin/pkg/api"
)

// toAuthor конвертирует автора из формата API в доменную модель.
// Автор без id не может попасть в снимок.
func toAuthor(in *pkgapi.Author) (*models.Author, error) {
	if in.ID == nil {
		return nil, fmt.Errorf("%w: author id missing", ErrMalformedResponse)
	}

	author := &models.Author{
		ID:           *in.ID,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Birthday:     in.Birthday,
		Biography:    in.Biography,
		Gender:       in.Gender,
		PlaceOfBirth: in.PlaceOfBirth,
	}

	if in.Books != nil {
		author.Books = make([]models.Book, 0, len(in.Books))
		for i := range in.Books {
			book, err := toBook(&in.Books[i], author.ID)
			if err != nil {
				return nil, fmt.Errorf("author %d: %w", author.ID, err)
			}
			author.Books = append(author.Books, *book)
		}
		author.BookCount = len(author.Books)
	}

	return author, nil
}

// toBook конвертирует книгу; authorID используется, если API не прислал ссылку на автора
func toBook(in *pkgapi.Book, authorID int64) (*models.Book, error) {
	if in.ID == nil {
		return nil, fmt.Errorf("%w: book id missing", ErrMalformedResponse)
	}
	if in.NumberOfPages < 0 {
		return nil, fmt.Errorf("%w: book %d has negative number_of_pages", ErrMalformedResponse, *in.ID)
	}

	book := &models.Book{
		ID:            *in.ID,
		AuthorID:      authorID,
		Title:         in.Title,
		Description:   in.Description,
		ISBN:          in.ISBN,
		Format:        in.Format,
		ReleaseDate:   in.ReleaseDate,
		NumberOfPages: in.NumberOfPages,
	}
	if in.Author != nil && in.Author.ID != 0 {
		book.AuthorID = in.Author.ID
	}

	return book, nil
}

// ToUser конвертирует пользователя из формата API
func ToUser(in *pkgapi.User) (*models.User, error) {
	if in == nil || in.ID == nil {
		return nil, fmt.Errorf("%w: user id missing", ErrMalformedResponse)
	}
	return &models.User{
		ID:             *in.ID,
		Email:          in.Email,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Gender:         in.Gender,
		Active:         in.Active,
		EmailConfirmed: in.EmailConfirmed,
	}, nil
}

// BookRequestFrom строит тело PUT/POST запроса из книги
func BookRequestFrom(b *models.Book) pkgapi.BookRequest {
	return pkgapi.BookRequest{
		Author:        pkgapi.AuthorRef{ID: b.AuthorID},
		Title:         b.Title,
		ReleaseDate:   b.ReleaseDate,
		Description:   b.Description,
		ISBN:          b.ISBN,
		Format:        b.Format,
		NumberOfPages: b.NumberOfPages,
	}
}
