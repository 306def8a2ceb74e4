package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/yildizm/BrandSum/internal/common"
	applog "github.com/yildizm/BrandSum/internal/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const (
	DefaultDBFile = "brandsum.sqlite3"

	// DefaultRetention is how many analyses the store keeps
	DefaultRetention = 100
)

const errStoreNil = "history store is nil"

// newestFirst orders rows by record time, then by arrival
const newestFirst = "recorded_at DESC, stored_at ASC"

// analysisRow is the stored form of one record. Payload holds the full record
// JSON; the other columns exist for filtering and ordering. RecordedAt is the
// parsed record timestamp, zero when unparseable.
type analysisRow struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)"`
	Username   string    `gorm:"index:idx_analysis_owner"`
	Type       string    `gorm:"type:varchar(16)"`
	Timestamp  string    `gorm:"type:varchar(40)"`
	RecordedAt time.Time `gorm:"index:idx_analysis_recorded"`
	StoredAt   time.Time
	Payload    []byte
}

func (analysisRow) TableName() string {
	return "analyses"
}

// Store persists analysis records in SQLite
type Store struct {
	DB        *gorm.DB
	db        *sql.DB
	retention int
	now       func() time.Time
	log       *applog.Logger
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithRetention keeps only the newest n analyses; n <= 0 keeps everything
func WithRetention(n int) StoreOption {
	return func(s *Store) {
		s.retention = n
	}
}

// WithStoreLogger sets the logger used for retention and import messages
func WithStoreLogger(log *applog.Logger) StoreOption {
	return func(s *Store) {
		s.log = log.WithComponent("history")
	}
}

// OpenStore opens or creates the database at dbPath
func OpenStore(dbPath string, opts ...StoreOption) (*Store, error) {
	if dbPath == "" {
		dbPath = DefaultDBFile
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(dbPath), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&analysisRow{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	s := &Store{DB: db, db: sqlDB, retention: DefaultRetention, now: time.Now, log: applog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close releases the database
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save stores a record, replacing any record with the same id, and returns its id.
// Records without an id get a new UUID. Malformed records are rejected.
func (s *Store) Save(ctx context.Context, record *common.AnalysisRecord) (string, error) {
	if s == nil || s.DB == nil {
		return "", errors.New(errStoreNil)
	}

	var id string
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		id, err = s.save(tx, record)
		if err != nil {
			return err
		}
		return s.applyRetention(tx)
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// ImportResult counts the outcome of Import
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Import saves every well-formed record in one transaction. Malformed records are skipped.
func (s *Store) Import(ctx context.Context, records []*common.AnalysisRecord) (ImportResult, error) {
	var result ImportResult
	if s == nil || s.DB == nil {
		return result, errors.New(errStoreNil)
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, record := range records {
			if record.Malformed() {
				result.Skipped++
				continue
			}
			if _, err := s.save(tx, record); err != nil {
				return err
			}
			result.Imported++
		}
		return s.applyRetention(tx)
	})
	if err != nil {
		return ImportResult{}, err
	}
	if result.Skipped > 0 {
		s.log.WarnWithFields("skipped malformed records during import", []applog.Field{applog.Count(result.Skipped)})
	}
	return result, nil
}

func (s *Store) save(tx *gorm.DB, record *common.AnalysisRecord) (string, error) {
	if record.Malformed() {
		return "", fmt.Errorf("%w: record has no video_info or brand_analysis", common.ErrInvalidInput)
	}

	stored := *record
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}

	payload, err := json.Marshal(&stored)
	if err != nil {
		return "", fmt.Errorf("encoding record %s: %w", stored.ID, err)
	}

	row := analysisRow{
		ID:         stored.ID,
		Username:   stored.Username,
		Type:       stored.Type,
		Timestamp:  stored.Timestamp,
		RecordedAt: stored.CreatedAt().UTC(),
		StoredAt:   s.now().UTC(),
		Payload:    payload,
	}

	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "type", "timestamp", "recorded_at", "payload"}),
	}).Create(&row).Error
	if err != nil {
		return "", fmt.Errorf("storing record %s: %w", stored.ID, err)
	}
	return stored.ID, nil
}

func (s *Store) applyRetention(tx *gorm.DB) error {
	if s.retention <= 0 {
		return nil
	}

	keep := tx.Model(&analysisRow{}).Select("id").Order(newestFirst).Limit(s.retention)
	result := tx.Where("id NOT IN (?)", keep).Delete(&analysisRow{})
	if result.Error != nil {
		return fmt.Errorf("applying retention: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		s.log.Debug("retention removed %d analyses (keeping %d)", result.RowsAffected, s.retention)
	}
	return nil
}

// List returns one page of records, newest first
func (s *Store) List(ctx context.Context, q Query) (*Page, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New(errStoreNil)
	}

	base := s.DB.WithContext(ctx).Model(&analysisRow{})
	if q.Owner != "" {
		base = base.Where("username = ?", q.Owner)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting records: %w", err)
	}

	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	query := base.Session(&gorm.Session{}).Order(newestFirst)
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	if offset > 0 {
		// SQLite needs a LIMIT before OFFSET
		if q.Limit <= 0 {
			query = query.Limit(math.MaxInt32)
		}
		query = query.Offset(offset)
	}

	var rows []analysisRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}

	page := &Page{
		Total:   int(total),
		Records: make([]*common.AnalysisRecord, 0, len(rows)),
	}
	for _, row := range rows {
		page.Records = append(page.Records, row.record())
	}
	page.HasMore = offset+len(rows) < page.Total
	return page, nil
}

// Get returns a record. A record owned by someone other than a non-empty owner
// is reported as ErrNotFound.
func (s *Store) Get(ctx context.Context, id, owner string) (*common.AnalysisRecord, error) {
	row, err := s.find(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	return row.record(), nil
}

// Delete removes a record under the same ownership rule as Get
func (s *Store) Delete(ctx context.Context, id, owner string) error {
	if _, err := s.find(ctx, id, owner); err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&analysisRow{}).Error; err != nil {
		return fmt.Errorf("deleting record %s: %w", id, err)
	}
	return nil
}

func (s *Store) find(ctx context.Context, id, owner string) (*analysisRow, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New(errStoreNil)
	}

	var row analysisRow
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying record %s: %w", id, err)
	}
	if owner != "" && row.Username != owner {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &row, nil
}

func (r analysisRow) record() *common.AnalysisRecord {
	record := common.DecodeRecord(r.Payload)
	if record.ID == "" {
		record.ID = r.ID
	}
	return record
}
