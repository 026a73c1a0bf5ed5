package store

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	"github.com/starkpulse/gas-backend/internal/model"
	"github.com/starkpulse/gas-backend/internal/utils/config"
	"github.com/starkpulse/gas-backend/internal/utils/logger"
)

// PostgresStore keeps the key/value state in a single storage_entries table.
type PostgresStore struct {
	notifier

	db     *gorm.DB
	logger *logger.Logger
}

func NewPostgresStore(appConfig *config.AppConfig, logger *logger.Logger) *PostgresStore {
	db, err := connectPostgres(appConfig)
	if err != nil {
		logger.Fatal("failed to connect to postgres", map[string]string{
			"error": err.Error(),
		})
	}

	if err := db.AutoMigrate(&model.StorageEntry{}); err != nil {
		logger.Fatal("failed to migrate storage entries", map[string]string{
			"error": err.Error(),
		})
	}

	return &PostgresStore{
		db:     db,
		logger: logger,
	}
}

func (s *PostgresStore) Get(keys ...string) (map[string]string, error) {
	var entries []model.StorageEntry
	if err := s.db.Where("key IN ?", keys).Find(&entries).Error; err != nil {
		return nil, err
	}

	values := make(map[string]string, len(entries))
	for _, entry := range entries {
		values[entry.Key] = entry.Value
	}
	return values, nil
}

func (s *PostgresStore) Set(values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	entries := make([]model.StorageEntry, 0, len(values))
	changed := make([]string, 0, len(values))
	for key, value := range values {
		entries = append(entries, model.StorageEntry{Key: key, Value: value})
		changed = append(changed, key)
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entries).Error
	if err != nil {
		return err
	}

	s.publish(changed)
	return nil
}

func connectPostgres(appConfig *config.AppConfig) (*gorm.DB, error) {
	ds := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		appConfig.Postgres.Host,
		appConfig.Postgres.User,
		appConfig.Postgres.Pass,
		appConfig.Postgres.Name,
		appConfig.Postgres.Port,
		appConfig.Postgres.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(ds),
		&gorm.Config{
			NamingStrategy: schema.NamingStrategy{
				SingularTable: false,
			},
		})
	if err != nil {
		return nil, err
	}

	return db, nil
}
