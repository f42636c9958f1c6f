package models

import "strings"

// Book представляет книгу автора в том виде, в котором её отдаёт Remote Record API.
// Связь с автором (AuthorID) это только ссылка: владельцем книги считается
// список Books автора.
type Book struct {
	Title         string `json:"title"`          // Title название книги
	Description   string `json:"description"`    // Description описание
	ISBN          string `json:"isbn"`           // ISBN код
	Format        string `json:"format"`         // Format формат издания (свободный текст)
	ReleaseDate   string `json:"release_date"`   // ReleaseDate дата выхода в формате ISO-8601
	ID            int64  `json:"id"`             // ID стабильный идентификатор, назначенный API
	AuthorID      int64  `json:"author_id"`      // AuthorID обратная ссылка на автора
	NumberOfPages int    `json:"number_of_pages"` // NumberOfPages количество страниц (>= 0)
}

// Author представляет автора вместе с его книгами.
// Инвариант: BookCount == len(Books), если оба поля заполнены в одной записи снимка.
type Author struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Birthday     string `json:"birthday,omitempty"`
	Biography    string `json:"biography,omitempty"`
	Gender       string `json:"gender,omitempty"`
	PlaceOfBirth string `json:"place_of_birth,omitempty"`
	Books        []Book `json:"books"`
	ID           int64  `json:"id"`
	BookCount    int    `json:"book_count"`
}

// FullName возвращает отображаемое имя автора
func (a *Author) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// BookIndex возвращает позицию книги в списке автора или -1
func (a *Author) BookIndex(bookID int64) int {
	for i := range a.Books {
		if a.Books[i].ID == bookID {
			return i
		}
	}
	return -1
}

// BookPatch описывает частичное изменение книги.
// Применяются только поля, отличные от nil.
type BookPatch struct {
	Title         *string
	Description   *string
	ISBN          *string
	Format        *string
	ReleaseDate   *string
	NumberOfPages *int
}

// IsEmpty сообщает, что патч ничего не меняет
func (p BookPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.ISBN == nil &&
		p.Format == nil && p.ReleaseDate == nil && p.NumberOfPages == nil
}

// Apply сливает заданные поля патча в книгу
func (p BookPatch) Apply(b *Book) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.ISBN != nil {
		b.ISBN = *p.ISBN
	}
	if p.Format != nil {
		b.Format = *p.Format
	}
	if p.ReleaseDate != nil {
		b.ReleaseDate = *p.ReleaseDate
	}
	if p.NumberOfPages != nil {
		b.NumberOfPages = *p.NumberOfPages
	}
}

// CanonicalPatch строит патч из полей, за которые API является источником истины
// после редактирования: title, description, format.
func CanonicalPatch(b *Book) BookPatch {
	title, description, format := b.Title, b.Description, b.Format
	return BookPatch{
		Title:       &title,
		Description: &description,
		Format:      &format,
	}
}
