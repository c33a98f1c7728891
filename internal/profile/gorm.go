package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/DoyleJ11/ball-contest-support/internal/config"
)

// profileRow is the table layout. The tuning is kept as its YAML document so
// a row can be copied straight into a tuning file.
type profileRow struct {
	Name      string `gorm:"primaryKey;size:64"`
	Document  string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (profileRow) TableName() string { return "tuning_profiles" }

func toRow(p Profile) (profileRow, error) {
	doc, err := p.Tuning.Marshal()
	if err != nil {
		return profileRow{}, fmt.Errorf("encode profile %s: %w", p.Name, err)
	}
	return profileRow{Name: p.Name, Document: string(doc), UpdatedAt: p.UpdatedAt}, nil
}

func fromRow(r profileRow) (Profile, error) {
	t, err := config.ParseTuning([]byte(r.Document))
	if err != nil {
		return Profile{}, fmt.Errorf("decode profile %s: %w", r.Name, err)
	}
	return Profile{Name: r.Name, Tuning: t, UpdatedAt: r.UpdatedAt}, nil
}

// GormStore keeps profiles in postgres.
type GormStore struct {
	db *gorm.DB
}

// OpenPostgres connects to dsn and migrates the profile table.
func OpenPostgres(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return NewGormStore(db)
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&profileRow{}); err != nil {
		return nil, fmt.Errorf("migrate profiles: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Save(ctx context.Context, p Profile) error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if err := p.Tuning.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	row, err := toRow(p)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
	}).Create(&row).Error
}

func (s *GormStore) Get(ctx context.Context, name string) (Profile, error) {
	var row profileRow
	err := s.db.WithContext(ctx).First(&row, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Profile{}, ErrProfileNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("get profile %s: %w", name, err)
	}
	return fromRow(row)
}

func (s *GormStore) List(ctx context.Context) ([]Profile, error) {
	var rows []profileRow
	if err := s.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	out := make([]Profile, 0, len(rows))
	for _, r := range rows {
		p, err := fromRow(r)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *GormStore) Delete(ctx context.Context, name string) error {
	res := s.db.WithContext(ctx).Delete(&profileRow{}, "name = ?", name)
	if res.Error != nil {
		return fmt.Errorf("delete profile %s: %w", name, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}
