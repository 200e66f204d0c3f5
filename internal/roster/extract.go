package roster

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/imamik/rosterkeys/internal/apperr"
)

const utf8BOM = "\ufeff"

// Extract reads the roster at path and returns one Student per data row,
// in file order. A row without a username or student ID fails the whole
// extraction.
func Extract(path, emailDomain string) ([]Student, error) {
	// #nosec G304
	f, err := os.Open(path)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to read CSV file %s", path)
	}
	defer func() { _ = f.Close() }()

	return Parse(f, emailDomain)
}

// Parse extracts students from CSV content with a header row.
func Parse(r io.Reader, emailDomain string) ([]Student, error) {
	reader := csv.NewReader(skipBOM(r))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Wrap(err, "failed to parse CSV header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	domain := strings.TrimSpace(emailDomain)
	var students []Student

	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperr.Wrap(err, "failed to parse CSV")
		}

		row := newRow(header, fields)

		username := row.lookup(usernameColumns)
		studentID := row.lookup(studentIDColumns)
		if username == "" || studentID == "" {
			return nil, apperr.Operational("Missing required fields for student: %s", row.String())
		}

		students = append(students, Student{
			LastName:  row.lookup(lastNameColumns),
			FirstName: row.lookup(firstNameColumns),
			Username:  username,
			StudentID: studentID,
			Email:     username + "@" + domain,
		})
	}

	return students, nil
}

// skipBOM drops a leading UTF-8 byte order mark, which spreadsheet exports often add.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, []byte(utf8BOM)) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// row pairs header names with trimmed field values.
type row struct {
	header []string
	values map[string]string
	order  []string
}

func newRow(header, fields []string) row {
	r := row{header: header, values: make(map[string]string, len(header))}
	for i, name := range header {
		value := ""
		if i < len(fields) {
			value = strings.TrimSpace(fields[i])
		}
		if _, seen := r.values[name]; !seen {
			r.order = append(r.order, name)
		}
		r.values[name] = value
	}
	return r
}

func (r row) lookup(candidates []string) string {
	for _, key := range candidates {
		if v := r.values[key]; v != "" {
			return v
		}
	}
	return ""
}

// String renders the row as a JSON-style object in header order.
func (r row) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range r.order {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(name))
		b.WriteByte(':')
		b.WriteString(strconv.Quote(r.values[name]))
	}
	b.WriteByte('}')
	return b.String()
}
