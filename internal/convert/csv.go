package convert

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
)

// CSVOptions tunes CSVToJSONWith.
type CSVOptions struct {
	// Quoted parses RFC 4180 quoting. The default is a naive comma split that
	// does not understand quoted commas.
	Quoted bool
}

// CSVToJSON converts CSV text to a pretty-printed JSON array of flat objects.
// The first line holds the headers; rows shorter than the header get empty
// strings for the missing fields. Fields are split on every comma.
func CSVToJSON(input string) (string, error) {
	return CSVToJSONWith(input, CSVOptions{})
}

// CSVToJSONWith is CSVToJSON with options.
func CSVToJSONWith(input string, opts CSVOptions) (string, error) {
	var rows [][]string
	var err error
	if opts.Quoted {
		rows, err = quotedRows(input)
	} else {
		rows = naiveRows(input)
	}
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", ErrEmptyInput
	}

	headers := rows[0]
	out := make([]record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(record, 0, len(headers))
		for i, h := range headers {
			v := ""
			if i < len(row) {
				v = row[i]
			}
			rec.set(h, stringValue(v))
		}
		out = append(out, rec)
	}
	return marshalIndent(out)
}

func naiveRows(input string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := strings.Split(line, ",")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		rows = append(rows, cells)
	}
	return rows
}

func quotedRows(input string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(input))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV: %w", err)
	}
	for _, row := range rows {
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
	}
	return rows, nil
}

// JSONToCSV converts a JSON array of objects to CSV. The header row is the
// key list of the first object. Values containing a comma, quote or newline
// are quoted with inner quotes doubled.
func JSONToCSV(input string) (string, error) {
	records, err := decodeRecords(input)
	if err != nil {
		return "", err
	}

	headers := records[0].keys()
	var b strings.Builder
	writeCSVRow(&b, headers)
	for _, rec := range records {
		b.WriteByte('\n')
		row := make([]string, len(headers))
		for i, h := range headers {
			if raw, ok := rec.get(h); ok {
				row[i] = rawString(raw)
			}
		}
		writeCSVRow(&b, row)
	}
	return b.String(), nil
}

func writeCSVRow(b *strings.Builder, cells []string) {
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escapeCSV(c))
	}
}

func escapeCSV(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// rawString renders a JSON value as a CSV cell. Strings are unquoted, null is
// empty, and objects or arrays stay compact JSON.
func rawString(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return string(trimmed)
	}
	return compact.String()
}
