/*
* GoCsInfo, a directory of TLS cipher suites, RFCs and the cryptographic algorithms they are built from.
*
* Copyright (c) Siemens AG, 2016-2024.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

// Package sqlite persists the catalog with gorm in a SQLite database. Algorithms are unique per category and short
// name by a unique index, concurrent get-or-creates resolve their conflict by reading the winning row.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/siemens/GoCsInfo/directory"
	"github.com/siemens/GoCsInfo/utils"
)

const maxResolveAttempts = 3

// Store implements directory.Store on SQLite
type Store struct {
	logger utils.Logger
	db     *gorm.DB
}

// Open opens or creates the database at the given path and migrates the schema. ":memory:" opens a private
// in-memory database.
func Open(logger utils.Logger, path string) (*Store, error) {

	// SQLite creates the file but not its folder
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if errFolder := utils.IsValidFolder(filepath.Dir(path)); errFolder != nil {
			return nil, fmt.Errorf("could not open database '%s': %w", path, errFolder)
		}
	}

	db, errOpen := gorm.Open(gormsqlite.Open(path), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if errOpen != nil {
		return nil, fmt.Errorf("could not open database '%s': %w", path, errOpen)
	}

	// SQLite allows a single writer, a single connection also keeps in-memory databases alive
	sqlDb, errDb := db.DB()
	if errDb != nil {
		return nil, errDb
	}
	sqlDb.SetMaxOpenConns(1)

	// Auto Migrate
	errMigrate := db.AutoMigrate(
		&algorithmModel{},
		&linkModel{},
		&cipherSuiteModel{},
		&vulnerabilityModel{},
		&rfcModel{},
	)
	if errMigrate != nil {
		return nil, fmt.Errorf("could not migrate database '%s': %w", path, errMigrate)
	}

	logger.Debugf("Opened database '%s'.", path)
	return &Store{logger: logger, db: db}, nil
}

// Close releases the database connection
func (s *Store) Close() error {
	sqlDb, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDb.Close()
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func notFound(err error, format string, v ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf(format+": %w", append(v, directory.ErrNotFound)...)
	}
	return fmt.Errorf(format+": %w", append(v, err)...)
}

func (s *Store) ResolveAlgorithm(ctx context.Context, ref directory.AlgorithmRef) (*directory.Algorithm, error) {
	if !directory.IsValidCategory(ref.Category) {
		return nil, fmt.Errorf("%w: %d", directory.ErrInvalidCategory, ref.Category)
	}
	shortName := directory.CanonicalShortName(ref.ShortName)

	var resolved *directory.Algorithm
	var errResolve error
	for attempt := 1; attempt <= maxResolveAttempts; attempt++ {
		resolved, errResolve = s.resolveOnce(ctx, ref, shortName)
		if errResolve == nil || !isDuplicate(errResolve) {
			break
		}
		s.logger.Debugf("Retrying get-or-create of %s '%s' after conflict.", ref.Category, shortName)
	}
	return resolved, errResolve
}

func (s *Store) resolveOnce(ctx context.Context, ref directory.AlgorithmRef, shortName string) (*directory.Algorithm, error) {
	var resolved *directory.Algorithm
	errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Create if missing, an existing row wins
		candidate := algorithmModel{Category: uint8(ref.Category), ShortName: shortName}
		errCreate := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&candidate).Error
		if errCreate != nil {
			return errCreate
		}

		// Read the stored row
		var model algorithmModel
		errFirst := tx.Where("category = ? AND short_name = ?", uint8(ref.Category), shortName).First(&model).Error
		if errFirst != nil {
			return errFirst
		}

		// Apply flags, the last write wins
		updates := map[string]interface{}{}
		if ref.Pfs != nil {
			updates["pfs"] = *ref.Pfs
			model.Pfs = *ref.Pfs
		}
		if ref.Aead != nil {
			updates["aead"] = *ref.Aead
			model.Aead = *ref.Aead
		}
		if len(updates) > 0 {
			if errUpdate := tx.Model(&algorithmModel{}).Where("id = ?", model.ID).Updates(updates).Error; errUpdate != nil {
				return errUpdate
			}
		}

		names, errLinks := linkedNames(tx, model.ID)
		if errLinks != nil {
			return errLinks
		}
		resolved = toAlgorithm(model, names)
		return nil
	})
	if errTx != nil {
		return nil, errTx
	}
	return resolved, nil
}

func linkedNames(tx *gorm.DB, algorithmId uint) ([]string, error) {
	var names []string
	err := tx.Model(&linkModel{}).
		Where("algorithm_id = ?", algorithmId).
		Order("vulnerability_name").
		Pluck("vulnerability_name", &names).Error
	return names, err
}

func (s *Store) findAlgorithm(tx *gorm.DB, key directory.AlgorithmKey) (algorithmModel, error) {
	var model algorithmModel
	err := tx.Where("category = ? AND short_name = ?", uint8(key.Category), key.ShortName).First(&model).Error
	if err != nil {
		return model, notFound(err, "algorithm '%s'", key)
	}
	return model, nil
}

func (s *Store) GetAlgorithm(ctx context.Context, key directory.AlgorithmKey) (*directory.Algorithm, error) {
	tx := s.db.WithContext(ctx)
	model, errFind := s.findAlgorithm(tx, key)
	if errFind != nil {
		return nil, errFind
	}
	names, errLinks := linkedNames(tx, model.ID)
	if errLinks != nil {
		return nil, errLinks
	}
	return toAlgorithm(model, names), nil
}

func (s *Store) ListAlgorithms(ctx context.Context) ([]*directory.Algorithm, error) {
	var algorithms []*directory.Algorithm
	errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		algorithms, err = listAlgorithms(tx)
		return err
	})
	if errTx != nil {
		return nil, fmt.Errorf("could not list algorithms: %w", errTx)
	}
	return algorithms, nil
}

func listAlgorithms(tx *gorm.DB) ([]*directory.Algorithm, error) {
	var models []algorithmModel
	if err := tx.Order("category, short_name").Find(&models).Error; err != nil {
		return nil, err
	}
	var links []linkModel
	if err := tx.Order("vulnerability_name").Find(&links).Error; err != nil {
		return nil, err
	}

	linked := make(map[uint][]string, len(links))
	for _, l := range links {
		linked[l.AlgorithmID] = append(linked[l.AlgorithmID], l.VulnerabilityName)
	}
	algorithms := make([]*directory.Algorithm, 0, len(models))
	for _, m := range models {
		algorithms = append(algorithms, toAlgorithm(m, linked[m.ID]))
	}
	return algorithms, nil
}

func (s *Store) SaveAlgorithm(ctx context.Context, algorithm *directory.Algorithm) error {
	tx := s.db.WithContext(ctx)
	model, errFind := s.findAlgorithm(tx, algorithm.Key())
	if errFind != nil {
		return errFind
	}
	return tx.Model(&algorithmModel{}).Where("id = ?", model.ID).Updates(map[string]interface{}{
		"long_name": algorithm.LongName,
		"pfs":       algorithm.Pfs,
		"aead":      algorithm.Aead,
	}).Error
}

func (s *Store) CreateCipherSuite(ctx context.Context, cs *directory.CipherSuite) error {
	model := toCipherSuiteModel(cs)
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("cipher suite '%s' (%s): %w", cs.Name, cs.CodePoint(), directory.ErrDuplicate)
		}
		return fmt.Errorf("could not create cipher suite '%s': %w", cs.Name, err)
	}
	return nil
}

func (s *Store) GetCipherSuite(ctx context.Context, name string) (*directory.CipherSuite, error) {
	var model cipherSuiteModel
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		return nil, notFound(err, "cipher suite '%s'", name)
	}
	return toCipherSuite(model)
}

func (s *Store) GetCipherSuiteByCodePoint(ctx context.Context, hex1 string, hex2 string) (*directory.CipherSuite, error) {
	var model cipherSuiteModel
	errFirst := s.db.WithContext(ctx).Where("hex_byte1 = ? AND hex_byte2 = ?", hex1, hex2).First(&model).Error
	if errFirst != nil {
		return nil, notFound(errFirst, "code point %s,%s", hex1, hex2)
	}
	return toCipherSuite(model)
}

func (s *Store) ListCipherSuites(ctx context.Context) ([]*directory.CipherSuite, error) {
	var models []cipherSuiteModel
	if err := s.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("could not list cipher suites: %w", err)
	}
	suites := make([]*directory.CipherSuite, 0, len(models))
	for _, m := range models {
		cs, errConvert := toCipherSuite(m)
		if errConvert != nil {
			return nil, errConvert
		}
		suites = append(suites, cs)
	}
	return suites, nil
}

func (s *Store) SaveCipherSuite(ctx context.Context, cs *directory.CipherSuite) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing cipherSuiteModel
		if err := tx.Where("name = ?", cs.Name).First(&existing).Error; err != nil {
			return notFound(err, "cipher suite '%s'", cs.Name)
		}
		if existing.HexByte1 != cs.HexByte1 || existing.HexByte2 != cs.HexByte2 {
			return fmt.Errorf("code point of cipher suite '%s' is immutable", cs.Name)
		}
		model := toCipherSuiteModel(cs)
		return tx.Save(&model).Error
	})
}

func (s *Store) SaveVulnerability(ctx context.Context, v *directory.Vulnerability) (*directory.Vulnerability, error) {
	var previous *directory.Vulnerability
	errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing vulnerabilityModel
		errFirst := tx.Where("name = ?", v.Name).First(&existing).Error
		if errFirst == nil {
			previous = &directory.Vulnerability{
				Name:        existing.Name,
				Description: existing.Description,
				Severity:    directory.Severity(existing.Severity),
			}
		} else if !errors.Is(errFirst, gorm.ErrRecordNotFound) {
			return errFirst
		}
		model := vulnerabilityModel{Name: v.Name, Description: v.Description, Severity: uint8(v.Severity)}
		return tx.Save(&model).Error
	})
	if errTx != nil {
		return nil, fmt.Errorf("could not save vulnerability '%s': %w", v.Name, errTx)
	}
	return previous, nil
}

func (s *Store) GetVulnerability(ctx context.Context, name string) (*directory.Vulnerability, error) {
	var model vulnerabilityModel
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		return nil, notFound(err, "vulnerability '%s'", name)
	}
	return &directory.Vulnerability{
		Name:        model.Name,
		Description: model.Description,
		Severity:    directory.Severity(model.Severity),
	}, nil
}

func (s *Store) ListVulnerabilities(ctx context.Context) ([]*directory.Vulnerability, error) {
	vulnerabilities, err := listVulnerabilities(s.db.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("could not list vulnerabilities: %w", err)
	}
	return vulnerabilities, nil
}

func listVulnerabilities(tx *gorm.DB) ([]*directory.Vulnerability, error) {
	var models []vulnerabilityModel
	if err := tx.Order("name").Find(&models).Error; err != nil {
		return nil, err
	}
	vulnerabilities := make([]*directory.Vulnerability, 0, len(models))
	for _, m := range models {
		vulnerabilities = append(vulnerabilities, &directory.Vulnerability{
			Name:        m.Name,
			Description: m.Description,
			Severity:    directory.Severity(m.Severity),
		})
	}
	return vulnerabilities, nil
}

// ReadSnapshot lists algorithms and vulnerabilities within one transaction
func (s *Store) ReadSnapshot(ctx context.Context) ([]*directory.Algorithm, []*directory.Vulnerability, error) {
	var algorithms []*directory.Algorithm
	var vulnerabilities []*directory.Vulnerability
	errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if algorithms, err = listAlgorithms(tx); err != nil {
			return err
		}
		vulnerabilities, err = listVulnerabilities(tx)
		return err
	})
	if errTx != nil {
		return nil, nil, fmt.Errorf("could not read snapshot: %w", errTx)
	}
	return algorithms, vulnerabilities, nil
}

func (s *Store) LinkVulnerability(ctx context.Context, key directory.AlgorithmKey, vulnerability string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model, errFind := s.findAlgorithm(tx, key)
		if errFind != nil {
			return errFind
		}
		var v vulnerabilityModel
		if err := tx.Where("name = ?", vulnerability).First(&v).Error; err != nil {
			return notFound(err, "vulnerability '%s'", vulnerability)
		}
		link := linkModel{AlgorithmID: model.ID, VulnerabilityName: vulnerability}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
	})
}

func (s *Store) SaveRfc(ctx context.Context, rfc *directory.Rfc) error {
	model := rfcModel{
		Number:  rfc.Number,
		Title:   rfc.Title,
		Status:  uint8(rfc.Status),
		Year:    rfc.Year,
		Url:     rfc.Url,
		IsDraft: rfc.IsDraft,
	}
	return s.db.WithContext(ctx).Save(&model).Error
}

func (s *Store) GetRfc(ctx context.Context, number int) (*directory.Rfc, error) {
	var model rfcModel
	if err := s.db.WithContext(ctx).Where("number = ?", number).First(&model).Error; err != nil {
		return nil, notFound(err, "RFC %d", number)
	}
	return toRfc(model), nil
}

func (s *Store) ListRfcs(ctx context.Context) ([]*directory.Rfc, error) {
	var models []rfcModel
	if err := s.db.WithContext(ctx).Order("number").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("could not list RFCs: %w", err)
	}
	rfcs := make([]*directory.Rfc, 0, len(models))
	for _, m := range models {
		rfcs = append(rfcs, toRfc(m))
	}
	return rfcs, nil
}
