package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// FileName is the name of the ledger file inside the data directory.
const FileName = "hours.json"

// tmpSuffix marks the sibling file written before the atomic rename.
const tmpSuffix = ".tmp"

// renameFile is swapped in tests to simulate a crash before the rename.
var renameFile = os.Rename

// wireRecord mirrors WeekRecord with every field mandatory.
type wireRecord struct {
	Start                 *civil.Date `json:"start" validate:"required"`
	End                   *civil.Date `json:"end" validate:"required"`
	IndividualSupervision *float64    `json:"individual_supervision" validate:"required"`
	GroupSupervision      *float64    `json:"group_supervision" validate:"required"`
	Direct                *float64    `json:"direct" validate:"required"`
	Indirect              *float64    `json:"indirect" validate:"required"`
}

type wireLedger struct {
	Weeks []wireRecord `json:"weeks" validate:"required,dive"`
}

var schema = newSchemaValidator()

func newSchemaValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	return v
}

// Store loads and saves a ledger at Path.
type Store struct {
	Path string
	Log  *zap.Logger
}

// NewStore returns a store for the ledger file at path.
func NewStore(path string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{Path: path, Log: log}
}

// Exists reports whether the ledger file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

// Load reads the ledger. Missing fields, unknown fields and broken invariants
// are all reported as ErrCorruptStore.
func (s *Store) Load() (*Ledger, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("no hours file at %s. Run 'hours init' to set up: %w", s.Path, err)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}

	l, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptStore, s.Path, err)
	}

	s.Log.Debug("ledger loaded", zap.String("path", s.Path), zap.Int("weeks", len(l.Weeks)))
	return l, nil
}

func decode(data []byte) (*Ledger, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var wire wireLedger
	if err := dec.Decode(&wire); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after ledger object")
	}
	if err := schema.Struct(wire); err != nil {
		return nil, schemaError(err)
	}

	l := &Ledger{Weeks: make([]WeekRecord, len(wire.Weeks))}
	for i, w := range wire.Weeks {
		l.Weeks[i] = WeekRecord{
			Start:                 *w.Start,
			End:                   *w.End,
			IndividualSupervision: *w.IndividualSupervision,
			GroupSupervision:      *w.GroupSupervision,
			Direct:                *w.Direct,
			Indirect:              *w.Indirect,
		}
	}

	l.Normalize()
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func schemaError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	missing := make([]string, len(verrs))
	for i, fe := range verrs {
		_, field, _ := strings.Cut(fe.Namespace(), ".")
		missing[i] = field
	}
	return fmt.Errorf("missing field(s): %s", strings.Join(missing, ", "))
}

// Save normalizes and validates l, then atomically replaces the ledger file.
// Nothing is written when validation fails.
func (s *Store) Save(l *Ledger) error {
	l.Normalize()
	if err := l.Validate(); err != nil {
		return fmt.Errorf("refusing to save %s: %w", s.Path, err)
	}
	if l.Weeks == nil {
		l.Weeks = []WeekRecord{}
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}
	data = append(data, '\n')

	if err := writeAtomic(s.Path, data); err != nil {
		return err
	}
	s.Log.Debug("ledger saved", zap.String("path", s.Path), zap.Int("weeks", len(l.Weeks)))
	return nil
}

// writeAtomic writes data to a sibling temp file, syncs it, and renames it
// over path. path holds either the old or the new content at every point.
func writeAtomic(path string, data []byte) (err error) {
	tmp := path + tmpSuffix

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err = f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("syncing %s: %w", tmp, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp, err)
	}
	if err = renameFile(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	syncDir(filepath.Dir(path))
	return nil
}

// syncDir persists the rename. Not every platform supports syncing a
// directory, so failures are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
