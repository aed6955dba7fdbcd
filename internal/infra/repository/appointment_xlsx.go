package repository

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	domain "github.com/BruksfildServices01/pharma-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pharma-scheduler/internal/models"
)

const defaultSheet = "Agenda"

// AppointmentXLSXStore keeps the agenda in a single xlsx workbook. The file
// may be opened by people in a spreadsheet program at any time.
type AppointmentXLSXStore struct {
	path string
	log  zerolog.Logger

	// serializes mutations from this process
	mu sync.Mutex

	newID func() string
}

var _ domain.Store = (*AppointmentXLSXStore)(nil)

func NewAppointmentXLSXStore(path string, log zerolog.Logger) *AppointmentXLSXStore {
	return &AppointmentXLSXStore{
		path:  path,
		log:   log.With().Str("component", "xlsx_store").Logger(),
		newID: uuid.NewString,
	}
}

func (s *AppointmentXLSXStore) Path() string {
	return s.path
}

// snapshot is one read of the workbook.
type snapshot struct {
	records []models.Appointment
	version string
	exists  bool

	// ids were generated for blank rows
	healed bool
	// header lacks at least one column
	partial bool
}

// --------------------------------------------------
// Public API
// --------------------------------------------------

// Init creates the workbook with the column header when it is missing, and
// completes the header and ids of an existing one.
func (s *AppointmentXLSXStore) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return s.classify("create directory", err)
	}

	snap, err := s.load()
	if err != nil {
		return err
	}

	if !snap.exists || snap.healed || snap.partial {
		s.log.Info().
			Bool("created", !snap.exists).
			Bool("healed", snap.healed || snap.partial).
			Msg("initializing agenda workbook")
		return s.save(snap.records, "")
	}
	return nil
}

func (s *AppointmentXLSXStore) ReadAll(ctx context.Context) ([]models.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return nil, err
	}

	if snap.healed {
		s.log.Warn().Msg("rows without ID_Servicio found, persisting generated ids")
		if err := s.save(snap.records, snap.version); err != nil {
			return nil, err
		}
	}
	return snap.records, nil
}

func (s *AppointmentXLSXStore) WriteAll(ctx context.Context, records []models.Appointment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(records, "")
}

// Mutate reads the table, applies fn and writes the result. The write is
// rejected with ErrStoreConflict when the workbook changed on disk after the
// read. The check runs just before the rename, so an outside save landing
// between the two is still overwritten.
func (s *AppointmentXLSXStore) Mutate(
	ctx context.Context,
	fn func(records []models.Appointment) ([]models.Appointment, error),
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return err
	}

	next, err := fn(snap.records)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return s.save(next, snap.version)
}

// Snapshot returns the raw workbook bytes, taken while no mutation runs.
func (s *AppointmentXLSXStore) Snapshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, s.classify("read agenda", err)
	}
	return data, nil
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (s *AppointmentXLSXStore) load() (snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return snapshot{records: []models.Appointment{}}, nil
	}
	if err != nil {
		return snapshot{}, s.classify("read", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return snapshot{}, fmt.Errorf("%w: parse workbook: %v", domain.ErrStore, err)
	}
	defer f.Close()

	snap := snapshot{
		records: []models.Appointment{},
		version: digest(data),
		exists:  true,
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		snap.partial = true
		return snap, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return snapshot{}, fmt.Errorf("%w: read rows: %v", domain.ErrStore, err)
	}
	if len(rows) == 0 {
		snap.partial = true
		return snap, nil
	}

	index := map[string]int{}
	for i, h := range rows[0] {
		index[strings.TrimSpace(h)] = i
	}
	for _, col := range models.Columns {
		if _, ok := index[col]; !ok {
			snap.partial = true
			s.log.Warn().Str("column", col).Msg("missing column in agenda, synthesizing empty values")
		}
	}

	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}

		var ap models.Appointment
		for _, col := range models.Columns {
			i, ok := index[col]
			if !ok || i >= len(row) {
				continue
			}
			ap.SetField(col, strings.TrimSpace(row[i]))
		}

		if ap.ServiceID == "" {
			ap.ServiceID = s.newID()
			snap.healed = true
		}
		snap.records = append(snap.records, ap)
	}

	return snap, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// --------------------------------------------------
// Write
// --------------------------------------------------

// save stages the workbook next to the canonical file and renames it into
// place. When expect is not empty the canonical file must still hash to it.
func (s *AppointmentXLSXStore) save(records []models.Appointment, expect string) error {
	if owner := s.lockOwnerFile(); owner != "" {
		s.log.Warn().Str("lock_file", owner).Msg("agenda is open in another program")
		return fmt.Errorf("%w: %s is open in another program", domain.ErrStoreLocked, filepath.Base(s.path))
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".agenda-*.tmp.xlsx")
	if err != nil {
		return s.classify("create staging file", err)
	}
	tmpName := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if err := writeWorkbook(tmp, records); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write staging file: %v", domain.ErrStore, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return s.classify("sync staging file", err)
	}
	if err := tmp.Close(); err != nil {
		return s.classify("close staging file", err)
	}

	if expect != "" {
		current, err := s.currentVersion()
		if err != nil {
			return err
		}
		if current != expect {
			s.log.Warn().Msg("agenda changed on disk since it was read, rejecting write")
			return fmt.Errorf("%w: %s was modified by another program", domain.ErrStoreConflict, filepath.Base(s.path))
		}
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return s.classify("replace agenda", err)
	}
	committed = true

	if err := syncDir(dir); err != nil {
		s.log.Warn().Err(err).Msg("could not sync agenda directory")
	}

	s.log.Debug().Int("rows", len(records)).Msg("agenda written")
	return nil
}

func writeWorkbook(w *os.File, records []models.Appointment) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), defaultSheet); err != nil {
		return err
	}

	header := make([]any, len(models.Columns))
	for i, col := range models.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(defaultSheet, "A1", &header); err != nil {
		return err
	}

	for i := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := records[i].Row()
		row := make([]any, len(values))
		for j, v := range values {
			row[j] = v
		}
		if err := f.SetSheetRow(defaultSheet, cell, &row); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}

// syncDir flushes the directory entry so the rename survives a crash.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Sync(); err != nil && runtime.GOOS != "windows" {
		return err
	}
	return nil
}

func (s *AppointmentXLSXStore) currentVersion() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", s.classify("read", err)
	}
	return digest(data), nil
}

// lockOwnerFile returns the lock file left by Excel or LibreOffice while
// the workbook is open, or "".
func (s *AppointmentXLSXStore) lockOwnerFile() string {
	dir, base := filepath.Split(s.path)
	for _, name := range []string{"~$" + base, ".~lock." + base + "#"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func (s *AppointmentXLSXStore) classify(op string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		s.log.Error().Err(err).Str("op", op).Msg("agenda is locked")
		return fmt.Errorf("%w: %s: %v", domain.ErrStoreLocked, op, err)
	}
	s.log.Error().Err(err).Str("op", op).Msg("agenda i/o failed")
	return fmt.Errorf("%w: %s: %v", domain.ErrStore, op, err)
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
