package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/phenrril/bfguitars/internal/config"
	"github.com/phenrril/bfguitars/internal/domain"
)

// Open connects to the configured relational store.
func Open(cfg config.DB) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.ConnString())
	case config.DriverMySQL, "":
		dialector = mysql.Open(cfg.ConnString())
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
	return gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Store runs catalog statements. Every statement gets its own connection,
// handed back to the pool before the call returns, on error paths as well.
type Store struct{ db *gorm.DB }

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) ReadProducts(ctx context.Context, st domain.Statement) ([]domain.Product, error) {
	list := []domain.Product{}
	err := s.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return conn.Raw(st.SQL, st.Args...).Scan(&list).Error
	})
	if err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}
	return list, nil
}

func (s *Store) Write(ctx context.Context, st domain.Statement) error {
	err := s.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return conn.Exec(st.SQL, st.Args...).Error
	})
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
