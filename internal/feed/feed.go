// Package feed defines the feed request shape shared by the API client
// and the storage backends, and derives the cache key used to locate a
// stored payload.
package feed

import (
	"strings"

	"github.com/mysportsfeeds/mysportsfeeds-go/internal/errors"
)

// Format is a recognized feed output format.
type Format string

const (
	// FormatJSON decodes to a structured tree.
	FormatJSON Format = "json"
	// FormatXML is passed through as raw text.
	FormatXML Format = "xml"
	// FormatCSV decodes to an ordered sequence of rows.
	FormatCSV Format = "csv"
)

// Formats lists every recognized format, in declaration order.
var Formats = []Format{FormatJSON, FormatXML, FormatCSV}

// Valid reports whether f is a recognized format.
func (f Format) Valid() bool {
	switch f {
	case FormatJSON, FormatXML, FormatCSV:
		return true
	}
	return false
}

// ParseFormat converts a format string into a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if !f.Valid() {
		return "", errors.Newf(errors.KindValidation,
			"unsupported format %q, valid formats are: %v", s, Formats)
	}
	return f, nil
}

// Well-known parameter names consumed by the cache key resolver. The
// upstream service historically accepted both "data" and "fordate" for
// the date filter; "data" was a misspelling that read a key nobody set,
// so "fordate" is the single canonical name here.
const (
	ParamGameID  = "gameid"
	ParamForDate = "fordate"
	ParamForce   = "force"
	ParamSeason  = "season"
)

// Request identifies one feed pull. It is treated as immutable per call;
// nothing in this module mutates Params.
type Request struct {
	League string
	Season string
	Feed   string
	Format Format
	// Params carries extra query parameters (game id, date, force flag,
	// player filters, ...). Keys the resolver does not recognize are
	// ignored by it and forwarded to the upstream service untouched.
	Params map[string]string
}

// CacheKey derives the deterministic filename/object key for the
// request: "{feed}-{league}-{season}" plus "-{gameid}" or "-{fordate}"
// when present, with the format as extension. League is lowercased;
// unrelated Params entries do not affect the result.
func (r Request) CacheKey() string {
	var b strings.Builder
	b.WriteString(r.Feed)
	b.WriteByte('-')
	b.WriteString(strings.ToLower(r.League))
	b.WriteByte('-')
	b.WriteString(r.Season)

	if game, ok := r.Params[ParamGameID]; ok {
		b.WriteByte('-')
		b.WriteString(game)
	} else if date, ok := r.Params[ParamForDate]; ok {
		b.WriteByte('-')
		b.WriteString(date)
	}

	b.WriteByte('.')
	b.WriteString(string(r.Format))
	return b.String()
}
