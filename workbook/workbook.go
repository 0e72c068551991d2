// Package workbook implements the credential and asset stores over a
// spreadsheet workbook, the original durable format for this system:
// a Users sheet (username, password_hash, role) and an Assets sheet
// (id, username, name, status), each with a header row.
package workbook

import (
	"context"
	"fmt"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	"github.com/xuri/excelize/v2"

	assets "github.com/goliatone/go-assets"
)

const (
	// SheetUsers holds credential records
	SheetUsers = "Users"
	// SheetAssets holds asset records
	SheetAssets = "Assets"
)

var usersHeader = []any{"username", "password_hash", "role"}
var assetsHeader = []any{"id", "username", "name", "status"}

// Store reads and writes the workbook at a fixed path. Every read
// reloads the file; every update runs the full load-mutate-save cycle
// under a single writer, so concurrent editors are serialized instead
// of clobbering each other's saves.
type Store struct {
	path   string
	logger assets.Logger

	// mu is held across the whole load-decide-save span
	mu sync.Mutex
}

// Option customizes store construction.
type Option func(*Store)

// WithLogger overrides the store logger.
func WithLogger(logger assets.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore returns a store over the workbook at path. The file is not
// touched until the first operation.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: noopLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// Path returns the workbook location.
func (s *Store) Path() string {
	return s.path
}

// FindByUsername scans the Users sheet for an exact, case-sensitive
// username match.
func (s *Store) FindByUsername(ctx context.Context, username string) (*assets.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}

	return nil, notFound(username)
}

// LoadAll reconstructs the full asset list from the Assets sheet.
func (s *Store) LoadAll(ctx context.Context) ([]assets.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := s.open()
	if err != nil {
		return nil, err
	}
	defer s.close(f)

	return s.readAssets(f)
}

// UpdateStatus re-reads the workbook, overwrites the status cell of
// every row whose id matches, and saves the whole file back. The
// writer lock covers the full span. An unmatched id leaves the file
// untouched and reports UpdateNotFound without error.
func (s *Store) UpdateStatus(ctx context.Context, id string, status assets.Status) (assets.UpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return assets.UpdateResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return assets.UpdateResult{}, err
	}
	defer s.close(f)

	rows, err := f.GetRows(SheetAssets)
	if err != nil {
		return assets.UpdateResult{}, assets.WrapStorageError(err, "failed to read assets sheet")
	}

	var updated *assets.Asset
	matched := false
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		record := assetFromRow(row)
		if !assets.SameID(record.ID, id) {
			continue
		}

		cell, err := excelize.CoordinatesToCellName(4, i+1)
		if err != nil {
			return assets.UpdateResult{}, assets.WrapStorageError(err, "failed to address status cell")
		}
		if err := f.SetCellValue(SheetAssets, cell, status); err != nil {
			return assets.UpdateResult{}, assets.WrapStorageError(err, "failed to write status cell")
		}

		record.Status = status
		matched = true
		if updated == nil {
			updated = &record
		}
	}

	if !matched {
		return assets.UpdateResult{Outcome: assets.UpdateNotFound}, nil
	}

	if err := f.Save(); err != nil {
		return assets.UpdateResult{}, assets.WrapStorageError(err, "failed to save workbook")
	}

	return assets.UpdateResult{Outcome: assets.UpdateApplied, Asset: updated}, nil
}

// Seed creates or overwrites the workbook with the given records.
// Provisioning is out of band for the engine; this exists for setup
// tooling and tests.
func (s *Store) Seed(ctx context.Context, users []assets.User, records []assets.Asset) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f := excelize.NewFile()
	defer s.close(f)

	if _, err := f.NewSheet(SheetUsers); err != nil {
		return assets.WrapStorageError(err, "failed to create users sheet")
	}
	if _, err := f.NewSheet(SheetAssets); err != nil {
		return assets.WrapStorageError(err, "failed to create assets sheet")
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return assets.WrapStorageError(err, "failed to drop default sheet")
	}

	if err := f.SetSheetRow(SheetUsers, "A1", &usersHeader); err != nil {
		return assets.WrapStorageError(err, "failed to write users header")
	}
	for i, user := range users {
		row := []any{user.Username, user.PasswordHash, user.Role}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(SheetUsers, cell, &row); err != nil {
			return assets.WrapStorageError(err, "failed to write user row")
		}
	}

	if err := f.SetSheetRow(SheetAssets, "A1", &assetsHeader); err != nil {
		return assets.WrapStorageError(err, "failed to write assets header")
	}
	for i, record := range records {
		row := []any{record.ID, record.Owner, record.Name, record.Status}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(SheetAssets, cell, &row); err != nil {
			return assets.WrapStorageError(err, "failed to write asset row")
		}
	}

	if err := f.SaveAs(s.path); err != nil {
		return assets.WrapStorageError(err, "failed to save workbook")
	}

	return nil
}

func (s *Store) loadUsers() ([]assets.User, error) {
	f, err := s.open()
	if err != nil {
		return nil, err
	}
	defer s.close(f)

	rows, err := f.GetRows(SheetUsers)
	if err != nil {
		return nil, assets.WrapStorageError(err, "failed to read users sheet")
	}

	users := []assets.User{}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if isBlank(row) {
			continue
		}
		users = append(users, assets.User{
			Username:     column(row, 0),
			PasswordHash: column(row, 1),
			Role:         column(row, 2),
		})
	}

	return users, nil
}

func (s *Store) readAssets(f *excelize.File) ([]assets.Asset, error) {
	rows, err := f.GetRows(SheetAssets)
	if err != nil {
		return nil, assets.WrapStorageError(err, "failed to read assets sheet")
	}

	records := []assets.Asset{}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if isBlank(row) {
			continue
		}
		records = append(records, assetFromRow(row))
	}

	return records, nil
}

func (s *Store) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, assets.WrapStorageError(err, "failed to open workbook")
	}
	return f, nil
}

func (s *Store) close(f *excelize.File) {
	if err := f.Close(); err != nil {
		s.logger.Warn("workbook close error: %v", err)
	}
}

func assetFromRow(row []string) assets.Asset {
	return assets.Asset{
		ID:     column(row, 0),
		Owner:  column(row, 1),
		Name:   column(row, 2),
		Status: assets.Status(column(row, 3)),
	}
}

func notFound(username string) error {
	return goerrors.New("user not found", goerrors.CategoryNotFound).
		WithCode(goerrors.CodeNotFound).
		WithMetadata(map[string]any{
			"username": username,
		})
}

func column(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

var (
	_ assets.CredentialStore = (*Store)(nil)
	_ assets.AssetStore      = (*Store)(nil)
)
