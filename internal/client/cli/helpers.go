package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/nlimbasiya24/bookadmin/internal/client/iocli"
	"github.com/nlimbasiya24/bookadmin/internal/models"
)

// displayDate отбрасывает время из ISO-8601 даты API
func displayDate(value string) string {
	date, _, _ := strings.Cut(value, "T")
	return date
}

// parseID разбирает положительный идентификатор из аргумента команды
func parseID(kind, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, arg)
	}
	return id, nil
}

func newTable(out iocli.IO) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func printAuthorsTable(out iocli.IO, authors []models.Author) error {
	w := newTable(out)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tBIRTHDAY\tPLACE OF BIRTH\tBOOKS")
	for i := range authors {
		a := &authors[i]
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", a.ID, a.FullName(), displayDate(a.Birthday), a.PlaceOfBirth, a.BookCount)
	}
	return w.Flush()
}

func printBooksTable(out iocli.IO, books []models.Book) error {
	w := newTable(out)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tFORMAT\tRELEASED\tPAGES")
	for _, b := range books {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", b.ID, b.Title, b.Format, displayDate(b.ReleaseDate), humanize.Comma(int64(b.NumberOfPages)))
	}
	return w.Flush()
}
