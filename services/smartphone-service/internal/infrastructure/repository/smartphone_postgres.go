package repository

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"smartphones/services/smartphone-service/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONFields maps domain.Fields onto a jsonb column.
type JSONFields map[string]interface{}

func (JSONFields) GormDataType() string {
	return "jsonb"
}

func (f JSONFields) Value() (driver.Value, error) {
	if f == nil {
		return "{}", nil
	}
	data, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (f *JSONFields) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*f = JSONFields{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("jsonb: unsupported type %T", value)
	}
	out := JSONFields{}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*f = out
	return nil
}

// GORM model
type SmartphoneGorm struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Nom       string     `gorm:"index"`
	Marque    string     `gorm:"index"`
	Fields    JSONFields `gorm:"type:jsonb"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SmartphoneGorm) TableName() string {
	return "smartphones"
}

func toGormSmartphone(p *domain.Smartphone) *SmartphoneGorm {
	return &SmartphoneGorm{
		ID:        p.ID,
		Nom:       p.Nom,
		Marque:    p.Marque,
		Fields:    JSONFields(p.Fields),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toDomainSmartphone(g *SmartphoneGorm) *domain.Smartphone {
	fields := domain.Fields(g.Fields)
	if fields == nil {
		fields = domain.Fields{}
	}
	return &domain.Smartphone{
		ID:        g.ID,
		Nom:       g.Nom,
		Marque:    g.Marque,
		Fields:    fields,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

type SmartphoneRepository struct {
	db *gorm.DB
}

func NewSmartphoneRepository(db *gorm.DB) *SmartphoneRepository {
	return &SmartphoneRepository{db: db}
}

func (r *SmartphoneRepository) Migrate() error {
	return r.db.AutoMigrate(&SmartphoneGorm{})
}

func (r *SmartphoneRepository) List(ctx context.Context) ([]domain.Smartphone, error) {
	var rows []SmartphoneGorm
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, err
	}

	phones := make([]domain.Smartphone, 0, len(rows))
	for i := range rows {
		phones = append(phones, *toDomainSmartphone(&rows[i]))
	}
	return phones, nil
}

func (r *SmartphoneRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Smartphone, error) {
	var row SmartphoneGorm

	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSmartphoneNotFound
		}
		return nil, err
	}

	return toDomainSmartphone(&row), nil
}

func (r *SmartphoneRepository) Create(ctx context.Context, p *domain.Smartphone) error {
	row := toGormSmartphone(p)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}

	p.CreatedAt = row.CreatedAt
	p.UpdatedAt = row.UpdatedAt
	return nil
}

// Update replaces every descriptive column in one statement, so a missing id
// never results in a write.
func (r *SmartphoneRepository) Update(ctx context.Context, p *domain.Smartphone) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&SmartphoneGorm{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"nom":        p.Nom,
			"marque":     p.Marque,
			"fields":     JSONFields(p.Fields),
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrSmartphoneNotFound
	}

	p.UpdatedAt = now
	return nil
}

func (r *SmartphoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&SmartphoneGorm{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrSmartphoneNotFound
	}
	return nil
}

func (r *SmartphoneRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&SmartphoneGorm{}).Count(&count).Error
	return count, err
}
