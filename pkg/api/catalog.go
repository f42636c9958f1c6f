package api

// Поля-идентификаторы объявлены указателями: отсутствие поля в ответе
// отличается от нулевого значения и считается некорректным ответом.

// Author представляет автора в ответах API
type Author struct {
	ID           *int64 `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Birthday     string `json:"birthday,omitempty"`
	Biography    string `json:"biography,omitempty"`
	Gender       string `json:"gender,omitempty"`
	PlaceOfBirth string `json:"place_of_birth,omitempty"`
	Books        []Book `json:"books,omitempty"`
}

// AuthorsPage представляет ответ GET /authors
type AuthorsPage struct {
	Items       []Author `json:"items"`
	TotalPages  int      `json:"total_pages"`
	CurrentPage int      `json:"current_page"`
}

// AuthorRef ссылка на автора в теле запроса книги
type AuthorRef struct {
	ID int64 `json:"id"`
}

// Book представляет книгу в ответах API
type Book struct {
	ID            *int64     `json:"id"`
	Author        *AuthorRef `json:"author,omitempty"`
	Title         string     `json:"title"`
	ReleaseDate   string     `json:"release_date"`
	Description   string     `json:"description"`
	ISBN          string     `json:"isbn"`
	Format        string     `json:"format"`
	NumberOfPages int        `json:"number_of_pages"`
}

// BookRequest представляет тело POST /books и PUT /books/{id}
type BookRequest struct {
	Author        AuthorRef `json:"author"`
	Title         string    `json:"title"`
	ReleaseDate   string    `json:"release_date"`
	Description   string    `json:"description"`
	ISBN          string    `json:"isbn"`
	Format        string    `json:"format"`
	NumberOfPages int       `json:"number_of_pages"`
}
