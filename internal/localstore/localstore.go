// Package localstore is the Go stand-in for the browser local storage the
// original client used: a single sqlite-backed key-value table holding the
// settings blob, the remembered sign-in email and the session token
// placeholder. Read and write failures are logged and otherwise swallowed,
// the same way the client ignored storage errors.
package localstore

import (
	"encoding/json"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/sirupsen/logrus"

	"comanda/internal/models"
)

// SettingsKey is the key the restaurant settings blob lives under.
const SettingsKey = "comanda.settings"

// Entry is one stored key-value pair.
type Entry struct {
	Key       string `gorm:"primary_key"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// TableName keeps the table name short and stable.
func (Entry) TableName() string { return "entries" }

// Store wraps the sqlite file. All methods are safe to call concurrently;
// gorm serializes access to the single connection.
type Store struct {
	db  *gorm.DB
	log *logrus.Logger
}

// Open creates or opens the sqlite file at path and migrates the entries
// table. There is no versioning of the stored shape beyond this.
func Open(path string, log *logrus.Logger) (*Store, error) {
	db, err := gorm.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Entry{}).Error; err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, log: log}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value for key. Missing keys and read errors both come
// back as not-found.
func (s *Store) Get(key string) (string, bool) {
	var e Entry
	if err := s.db.Where("key = ?", key).First(&e).Error; err != nil {
		if !gorm.IsRecordNotFoundError(err) {
			s.log.WithError(err).WithField("key", key).Warn("localstore: read failed")
		}
		return "", false
	}
	return e.Value, true
}

// Put upserts the value for key. Errors are logged and swallowed.
func (s *Store) Put(key, value string) {
	res := s.db.Model(&Entry{}).Where("key = ?", key).Update("value", value)
	if res.Error != nil {
		s.log.WithError(res.Error).WithField("key", key).Warn("localstore: write failed")
		return
	}
	if res.RowsAffected == 0 {
		if err := s.db.Create(&Entry{Key: key, Value: value}).Error; err != nil {
			s.log.WithError(err).WithField("key", key).Warn("localstore: write failed")
		}
	}
}

// Delete removes key if present.
func (s *Store) Delete(key string) {
	if err := s.db.Where("key = ?", key).Delete(&Entry{}).Error; err != nil {
		s.log.WithError(err).WithField("key", key).Warn("localstore: delete failed")
	}
}

// Clear wipes every entry.
func (s *Store) Clear() {
	if err := s.db.Delete(&Entry{}).Error; err != nil {
		s.log.WithError(err).Warn("localstore: clear failed")
	}
}

// LoadSettings reads and decodes the settings blob. A missing or corrupt
// blob yields the zero settings and false.
func (s *Store) LoadSettings() (models.Settings, bool) {
	raw, ok := s.Get(SettingsKey)
	if !ok {
		return models.Settings{}, false
	}
	var settings models.Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		s.log.WithError(err).Warn("localstore: settings blob corrupt")
		return models.Settings{}, false
	}
	return settings, true
}

// SaveSettings encodes and stores the settings blob.
func (s *Store) SaveSettings(settings models.Settings) {
	raw, err := json.Marshal(settings)
	if err != nil {
		s.log.WithError(err).Warn("localstore: settings encode failed")
		return
	}
	s.Put(SettingsKey, string(raw))
}

// ClearSettings drops the settings blob only.
func (s *Store) ClearSettings() {
	s.Delete(SettingsKey)
}
