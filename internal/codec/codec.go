// Package codec serializes feed payloads between their in-memory shape
// and a backend byte stream. json payloads are structured trees
// (map[string]any / []any), xml payloads are raw strings, csv payloads
// are [][]string row sequences.
package codec

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strings"

	"github.com/mysportsfeeds/mysportsfeeds-go/internal/errors"
	"github.com/mysportsfeeds/mysportsfeeds-go/internal/feed"
)

// Decode reads and decodes a payload of the given format from r.
func Decode(format feed.Format, r io.Reader) (any, error) {
	switch format {
	case feed.FormatJSON:
		var data any
		if err := json.NewDecoder(r).Decode(&data); err != nil {
			return nil, errors.Wrap(err, errors.KindCodec, "decode json payload")
		}
		return data, nil
	case feed.FormatXML:
		raw, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.Wrap(err, errors.KindCodec, "read xml payload")
		}
		return string(raw), nil
	case feed.FormatCSV:
		cr := csv.NewReader(r)
		cr.FieldsPerRecord = -1
		rows, err := cr.ReadAll()
		if err != nil {
			return nil, errors.Wrap(err, errors.KindCodec, "decode csv payload")
		}
		return rows, nil
	}
	return nil, errors.Newf(errors.KindCodec, "invalid data format %q", format)
}

// Encode writes data in the given format to w.
//
// Known defect, kept for layout compatibility with existing stores: csv
// encoding writes each row as a single joined field, so a multi-field
// row does not survive an encode/decode round trip. Decode of such
// output yields one field per row containing the joined original.
func Encode(data any, format feed.Format, w io.Writer) error {
	switch format {
	case feed.FormatJSON:
		if err := json.NewEncoder(w).Encode(data); err != nil {
			return errors.Wrap(err, errors.KindCodec, "encode json payload")
		}
		return nil
	case feed.FormatXML:
		text, ok := data.(string)
		if !ok {
			return errors.Newf(errors.KindCodec, "xml payload must be a string, got %T", data)
		}
		if _, err := io.WriteString(w, text); err != nil {
			return errors.Wrap(err, errors.KindCodec, "write xml payload")
		}
		return nil
	case feed.FormatCSV:
		rows, ok := data.([][]string)
		if !ok {
			return errors.Newf(errors.KindCodec, "csv payload must be [][]string, got %T", data)
		}
		cw := csv.NewWriter(w)
		for _, row := range rows {
			if err := cw.Write([]string{strings.Join(row, ",")}); err != nil {
				return errors.Wrap(err, errors.KindCodec, "write csv row")
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return errors.Wrap(err, errors.KindCodec, "flush csv payload")
		}
		return nil
	}
	return errors.Newf(errors.KindCodec, "invalid data format %q", format)
}
