// Package planilla imports the payroll CSV into the planilla_sueldos collection.
package planilla

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"examen-portal/internal/models"
	"examen-portal/internal/storage"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrFileNotFound aborts an import before anything is written.
var ErrFileNotFound = errors.New("csv file not found")

// date layouts tried in order for FECHA INGRESO
var dateLayouts = []string{"2/1/2006", "2-1-2006"}

// ConversionWarning records a value that could not be converted and was
// stored as null. Line is the physical line in the CSV file, header included.
type ConversionWarning struct {
	Line  int
	Field string
	Value string
}

func (w ConversionWarning) Error() string {
	return fmt.Sprintf("line %d: invalid %s %q, stored as null", w.Line, w.Field, w.Value)
}

type Result struct {
	Inserted int
	Warnings []ConversionWarning
}

type Options struct {
	// Replace clears the collection before inserting.
	Replace bool
}

type Importer struct {
	store storage.PayrollStore
	log   zerolog.Logger
}

func NewImporter(store storage.PayrollStore, logger zerolog.Logger) *Importer {
	return &Importer{store: store, log: logger}
}

// ImportFile opens path and imports it. A missing file returns ErrFileNotFound
// without touching the store.
func (im *Importer) ImportFile(ctx context.Context, path string, opts Options) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			im.log.Error().Str("file", path).Msg("csv file not found")
			return Result{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return Result{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	im.log.Info().Str("file", path).Msg("importing planilla")
	return im.Import(ctx, f, opts)
}

// Import reads a UTF-8 CSV (BOM optional) and inserts one record per row.
// Rows are independent: a store error stops the run and the returned Result
// counts what was inserted before it.
func (im *Importer) Import(ctx context.Context, r io.Reader, opts Options) (Result, error) {
	var res Result

	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		im.log.Warn().Msg("csv file is empty")
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("read csv header: %w", err)
	}
	index := im.indexHeader(header)

	if opts.Replace {
		deleted, err := im.store.DeleteAllRegistros(ctx)
		if err != nil {
			return res, fmt.Errorf("clear planilla: %w", err)
		}
		im.log.Info().Int64("deleted", deleted).Msg("existing planilla records removed")
	}

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read csv: %w", err)
		}
		line, _ := cr.FieldPos(0)

		values := make(map[string]string, len(index))
		for key, col := range index {
			if col < len(record) {
				values[key] = record[col]
			}
		}

		registro, warnings := ParseRow(line, values)
		for _, w := range warnings {
			im.log.Warn().
				Int("line", w.Line).
				Str("field", w.Field).
				Str("value", w.Value).
				Msg("value could not be converted, stored as null")
		}
		res.Warnings = append(res.Warnings, warnings...)

		if _, err := im.store.InsertRegistro(ctx, registro); err != nil {
			im.log.Error().Err(err).Int("line", line).Int("inserted", res.Inserted).Msg("import aborted")
			return res, fmt.Errorf("insert line %d: %w", line, err)
		}
		res.Inserted++
	}

	im.log.Info().Int("inserted", res.Inserted).Int("warnings", len(res.Warnings)).Msg("import completed")
	return res, nil
}

// indexHeader maps normalized field names to column positions. Missing
// columns are reported once and read as empty values.
func (im *Importer) indexHeader(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := NormalizeFieldName(h)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	var missing []string
	for _, h := range Headers {
		if _, ok := index[NormalizeFieldName(h)]; !ok {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		im.log.Warn().Strs("missing_columns", missing).Msg("csv header is incomplete")
	}
	return index
}

// ParseRow builds a record from values keyed by normalized field name.
// Values are trimmed; typed columns that fail to convert become nil and
// produce a warning for the given line.
func ParseRow(line int, values map[string]string) (models.RegistroPlanilla, []ConversionWarning) {
	get := func(header string) string {
		return strings.TrimSpace(values[NormalizeFieldName(header)])
	}

	var warnings []ConversionWarning
	warn := func(header, value string) {
		warnings = append(warnings, ConversionWarning{Line: line, Field: header, Value: value})
	}

	reg := models.RegistroPlanilla{
		Nombre:      get(ColNombre),
		Apellido:    get(ColApellido),
		Sexo:        get(ColSexo),
		DNI:         get(ColDNI),
		EstadoCivil: get(ColEstadoCivil),
		Deporte:     get(ColDeporte),
		Profesion:   get(ColProfesion),
	}

	if f, err := strconv.ParseFloat(get(ColSueldo), 64); err == nil {
		reg.Sueldo = &f
	} else {
		warn(ColSueldo, get(ColSueldo))
	}

	if d, ok := parseDate(get(ColFechaIngreso)); ok {
		reg.FechaIngreso = &d
	} else {
		warn(ColFechaIngreso, get(ColFechaIngreso))
	}

	if n, err := strconv.Atoi(get(ColHijos)); err == nil {
		reg.NHijos = &n
	} else {
		warn(ColHijos, get(ColHijos))
	}

	return reg, warnings
}

func parseDate(v string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, v); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
