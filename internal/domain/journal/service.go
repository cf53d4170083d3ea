package journal

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"time"

	"vet-clinic/internal/platform/dates"
	"vet-clinic/internal/platform/paging"
	"vet-clinic/internal/platform/textmatch"
)

const (
	Path = "/visits/journal"

	// DaysPerPage: el journal pagina por días, no por filas.
	DaysPerPage = 7

	// DefaultSpanDays es el rango por defecto: hoy .. hoy+14.
	DefaultSpanDays = 14
)

type Repository interface {
	// VisitsBetween devuelve visitas con fecha normalizada en [from, to],
	// ordenadas por fecha, hora (vacía primero) e id.
	VisitsBetween(ctx context.Context, from, to string) ([]Row, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// ParseQuery nunca falla: from/to inválidos caen a los defaults y una
// página inválida a 1.
func (s *Service) ParseQuery(v url.Values) Query {
	return ParseQuery(v, s.now())
}

func ParseQuery(v url.Values, today time.Time) Query {
	y, m, d := today.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	q := Query{
		From: strings.TrimSpace(v.Get("from")),
		To:   strings.TrimSpace(v.Get("to")),
		Text: strings.TrimSpace(v.Get("q")),
		Page: paging.ParsePage(strings.TrimSpace(v.Get("page"))),
	}
	if !dates.IsISODate(q.From) {
		q.From = day.Format(dates.StorageLayout)
	}
	if !dates.IsISODate(q.To) {
		q.To = day.AddDate(0, 0, DefaultSpanDays).Format(dates.StorageLayout)
	}
	return q
}

func (s *Service) Build(ctx context.Context, q Query) (Page, error) {
	rows, err := s.repo.VisitsBetween(ctx, q.From, q.To)
	if err != nil {
		return Page{}, err
	}

	days := groupByDay(filter(rows, q.Text))

	meta := paging.New(len(days), q.Page, DaysPerPage).
		WithLinks(Path, url.Values{
			"from": {q.From},
			"to":   {q.To},
			"q":    {q.Text},
		})
	lo, hi := meta.Bounds()

	q.Page = meta.Page
	return Page{Query: q, Days: days[lo:hi], Meta: meta}, nil
}

func filter(rows []Row, text string) []Row {
	text = strings.TrimSpace(text)
	if text == "" {
		return rows
	}
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if textmatch.Any(text, r.ClientFullName, r.ClientPhone, r.PetName, r.PetSpecies, r.PetBreed, r.Complaint) {
			out = append(out, r)
		}
	}
	return out
}

// groupByDay respeta el orden de las filas dentro de cada día.
func groupByDay(rows []Row) []Day {
	days := make([]Day, 0)
	idx := map[string]int{}

	for _, r := range rows {
		if r.DateISO == "" {
			continue
		}
		i, ok := idx[r.DateISO]
		if !ok {
			i = len(days)
			idx[r.DateISO] = i
			days = append(days, Day{DateISO: r.DateISO, DateView: r.DateView()})
		}
		days[i].Items = append(days[i].Items, r)
	}

	sort.SliceStable(days, func(i, j int) bool { return days[i].DateISO < days[j].DateISO })
	return days
}
