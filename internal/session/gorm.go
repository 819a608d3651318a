package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type itemRow struct {
	ItemID    uint      `gorm:"primaryKey;autoIncrement"`
	SessionID string    `gorm:"size:191;not null;index:idx_session_items_session"`
	Role      string    `gorm:"size:32;not null"`
	Content   string    `gorm:"type:text;not null"`
	Agent     string    `gorm:"size:191;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (itemRow) TableName() string {
	return "session_items"
}

func (r itemRow) toItem() Item {
	return Item{Role: r.Role, Content: r.Content, Agent: r.Agent, CreatedAt: r.CreatedAt.UTC()}
}

// GormStore persists sessions in postgres through gorm.
type GormStore struct {
	db *gorm.DB
}

// OpenGorm opens a gorm connection to postgres.
func OpenGorm(dsn string) (*gorm.DB, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("dsn is required for driver %q", DriverPostgres)
	}
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// NewGormStore opens the database and migrates the item table.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := OpenGorm(dsn)
	if err != nil {
		return nil, fmt.Errorf("open gorm store: %w", err)
	}
	if err := db.AutoMigrate(&itemRow{}); err != nil {
		return nil, fmt.Errorf("migrate session items: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Items(ctx context.Context, id string, limit int) ([]Item, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	q := s.db.WithContext(ctx).Where("session_id = ?", id).Order("item_id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []itemRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list session items: %w", err)
	}

	items := make([]Item, len(rows))
	for i, r := range rows {
		items[len(rows)-1-i] = r.toItem()
	}
	return items, nil
}

func (s *GormStore) Append(ctx context.Context, id string, items ...Item) error {
	if err := checkID(id); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	rows := make([]itemRow, 0, len(items))
	for _, it := range stamp(items) {
		rows = append(rows, itemRow{
			SessionID: id,
			Role:      it.Role,
			Content:   it.Content,
			Agent:     it.Agent,
			CreatedAt: it.CreatedAt,
		})
	}
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("append session items: %w", err)
	}
	return nil
}

func (s *GormStore) Clear(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Where("session_id = ?", id).Delete(&itemRow{}).Error; err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
