package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"juegos/backend/internal/models"
)

// GameRecord is the SQL row for a game.
type GameRecord struct {
	ID        string  `gorm:"primaryKey;size:24"`
	Name      string  `gorm:"size:255;not null"`
	Levels    float64 `gorm:"not null"`
	Date      time.Time
	Image     *string `gorm:"size:512"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (GameRecord) TableName() string { return GamesCollection }

func (r GameRecord) toModel() models.Game {
	return models.Game{
		ID:     r.ID,
		Name:   r.Name,
		Levels: r.Levels,
		Date:   r.Date.UTC(),
		Image:  r.Image,
	}
}

// GormGameRepository stores games in a SQL table through gorm.
type GormGameRepository struct {
	db *gorm.DB
}

// NewGormGameRepository wraps an open gorm connection. The table must
// already exist; see database.ConnectPostgres.
func NewGormGameRepository(db *gorm.DB) *GormGameRepository {
	return &GormGameRepository{db: db}
}

func (r *GormGameRepository) FindAll(ctx context.Context) ([]models.Game, error) {
	var records []GameRecord
	if err := r.db.WithContext(ctx).Order("created_at").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("find games: %w", err)
	}

	games := make([]models.Game, 0, len(records))
	for _, rec := range records {
		games = append(games, rec.toModel())
	}
	return games, nil
}

func (r *GormGameRepository) FindByID(ctx context.Context, id string) (models.Game, error) {
	if err := ValidateID(id); err != nil {
		return models.Game{}, err
	}

	var rec GameRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Game{}, ErrNotFound
	}
	if err != nil {
		return models.Game{}, fmt.Errorf("find game %s: %w", id, err)
	}
	return rec.toModel(), nil
}

func (r *GormGameRepository) Insert(ctx context.Context, game models.Game) (models.Game, error) {
	rec := GameRecord{
		ID:     NewID(),
		Name:   game.Name,
		Levels: game.Levels,
		Date:   game.Date,
		Image:  game.Image,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return models.Game{}, fmt.Errorf("insert game: %w", err)
	}
	return rec.toModel(), nil
}

func (r *GormGameRepository) UpdateFields(ctx context.Context, id string, update models.GameUpdate) error {
	if err := ValidateID(id); err != nil {
		return err
	}

	fields := map[string]any{
		"name":   update.Name,
		"levels": update.Levels,
		"date":   update.Date,
	}
	if update.Image != nil {
		fields["image"] = *update.Image
	}

	result := r.db.WithContext(ctx).Model(&GameRecord{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("update game %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormGameRepository) DeleteByID(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&GameRecord{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete game %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
