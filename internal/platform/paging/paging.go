// Package paging calcula la paginación de listas (páginas, ventana de
// números alrededor de la actual y enlaces prev/next).
package paging

import (
	"net/url"
	"strconv"
)

// WindowRadius es cuántas páginas se muestran a cada lado de la actual.
const WindowRadius = 3

type Link struct {
	Num     int
	URL     string
	Current bool
}

type Meta struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int

	// Posición (1-indexed) del primer y último elemento de la página; 0 si no hay.
	First int
	Last  int

	Pages      []Link
	PrevURL    string
	NextURL    string
	CurrentURL string
}

// New calcula la meta para total elementos. page < 1 se trata como 1 y
// page > TotalPages se recorta a la última.
func New(total, page, perPage int) Meta {
	if perPage < 1 {
		perPage = 1
	}
	if total < 0 {
		total = 0
	}

	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	m := Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
	if total > 0 {
		m.First = m.Offset() + 1
		m.Last = min(m.Offset()+perPage, total)
	}
	return m
}

// Offset es el índice del primer elemento de la página actual.
func (m Meta) Offset() int {
	return (m.Page - 1) * m.PerPage
}

// Bounds devuelve [lo, hi) para recortar un slice de longitud Total.
func (m Meta) Bounds() (int, int) {
	lo := min(m.Offset(), m.Total)
	hi := min(lo+m.PerPage, m.Total)
	return lo, hi
}

// WithLinks rellena ventana, prev/next y URL actual conservando base
// (filtros de búsqueda) en cada enlace.
func (m Meta) WithLinks(path string, base url.Values) Meta {
	link := func(p int) string {
		q := url.Values{}
		for k, vs := range base {
			for _, v := range vs {
				if v != "" {
					q.Add(k, v)
				}
			}
		}
		q.Set("page", strconv.Itoa(p))
		return path + "?" + q.Encode()
	}

	start := max(1, m.Page-WindowRadius)
	end := min(m.TotalPages, m.Page+WindowRadius)

	m.Pages = make([]Link, 0, end-start+1)
	for p := start; p <= end; p++ {
		m.Pages = append(m.Pages, Link{Num: p, URL: link(p), Current: p == m.Page})
	}

	m.PrevURL, m.NextURL = "", ""
	if m.Page > 1 {
		m.PrevURL = link(m.Page - 1)
	}
	if m.Page < m.TotalPages {
		m.NextURL = link(m.Page + 1)
	}
	m.CurrentURL = link(m.Page)
	return m
}

// ParsePage lee un número de página de la query; inválido o < 1 da 1.
func ParsePage(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
