package catalog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mitchellh/copystructure"

	"github.com/nlimbasiya24/bookadmin/internal/models"
)

// MutationState состояние изменения книги в детальном просмотре
type MutationState int

const (
	// Idle изменений нет
	Idle MutationState = iota
	// Submitting запрос отправлен, ответа ещё нет
	Submitting
	// Succeeded API подтвердил изменение
	Succeeded
	// Failed API отклонил изменение, копии не тронуты
	Failed
)

func (s MutationState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("MutationState(%d)", int(s))
	}
}

// DetailView рабочая копия автора для детального просмотра.
// Снимок она не разделяет: меняется только через Synchronizer.
type DetailView struct {
	states map[int64]MutationState
	query  string
	author models.Author
	mu     sync.RWMutex
}

func newDetailView(author *models.Author) (*DetailView, error) {
	dup, err := copystructure.Copy(*author)
	if err != nil {
		return nil, fmt.Errorf("failed to copy author %d: %w", author.ID, err)
	}

	return &DetailView{
		author: dup.(models.Author),
		states: make(map[int64]MutationState),
	}, nil
}

// Author возвращает копию рабочего состояния автора
func (v *DetailView) Author() models.Author {
	v.mu.RLock()
	defer v.mu.RUnlock()

	author := v.author
	author.Books = append([]models.Book(nil), v.author.Books...)
	return author
}

// Book возвращает книгу рабочей копии
func (v *DetailView) Book(bookID int64) (models.Book, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	idx := v.author.BookIndex(bookID)
	if idx < 0 {
		return models.Book{}, false
	}
	return v.author.Books[idx], true
}

// Filter задает поисковый запрос и возвращает видимые книги
func (v *DetailView) Filter(query string) []models.Book {
	v.mu.Lock()
	v.query = query
	v.mu.Unlock()

	return v.Visible()
}

// Visible возвращает книги, чьи title, format или release_date
// содержат запрос без учета регистра. Запрос не обрезается: пробелы
// тоже ищутся. Только пустой запрос оставляет все книги.
func (v *DetailView) Visible() []models.Book {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return FilterBooks(v.author.Books, v.query)
}

// Query текущий поисковый запрос
func (v *DetailView) Query() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.query
}

// State состояние последнего изменения книги
func (v *DetailView) State(bookID int64) MutationState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.states[bookID]
}

func (v *DetailView) setState(bookID int64, state MutationState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.states[bookID] = state
}

func (v *DetailView) applyPatch(bookID int64, patch models.BookPatch) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if idx := v.author.BookIndex(bookID); idx >= 0 {
		patch.Apply(&v.author.Books[idx])
	}
}

func (v *DetailView) removeBook(bookID int64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	idx := v.author.BookIndex(bookID)
	if idx < 0 {
		return
	}
	books := make([]models.Book, 0, len(v.author.Books)-1)
	books = append(books, v.author.Books[:idx]...)
	books = append(books, v.author.Books[idx+1:]...)
	v.author.Books = books
	v.author.BookCount = max(v.author.BookCount-1, 0)
}

// FilterBooks возвращает подпоследовательность книг, подходящих под запрос
func FilterBooks(books []models.Book, query string) []models.Book {
	q := strings.ToLower(query)

	out := make([]models.Book, 0, len(books))
	for _, b := range books {
		if q == "" || matches(b, q) {
			out = append(out, b)
		}
	}
	return out
}

func matches(b models.Book, q string) bool {
	for _, field := range []string{b.Title, b.Format, b.ReleaseDate} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
