package media

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"juegos/backend/internal/models"
	"juegos/backend/internal/repository"
)

// GameFinder looks up the record whose image is being cleaned up.
type GameFinder interface {
	FindByID(ctx context.Context, id string) (models.Game, error)
}

// Remover deletes a stored image by its public path.
type Remover interface {
	Remove(rel string) error
}

// Lifecycle removes the image file that belongs to a game record.
type Lifecycle struct {
	games GameFinder
	files Remover
	log   *zap.Logger
}

func NewLifecycle(games GameFinder, files Remover, log *zap.Logger) *Lifecycle {
	return &Lifecycle{games: games, files: files, log: log}
}

// RemoveImage deletes the image of game id, if it has one. It never fails:
// lookup and filesystem errors are logged and dropped.
func (l *Lifecycle) RemoveImage(ctx context.Context, id string) {
	game, err := l.games.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			l.log.Warn("image cleanup: lookup failed", zap.String("game_id", id), zap.Error(err))
		}
		return
	}
	if game.Image == nil || *game.Image == "" {
		return
	}

	if err := l.files.Remove(*game.Image); err != nil {
		l.log.Warn("image cleanup: remove failed",
			zap.String("game_id", id),
			zap.String("image", *game.Image),
			zap.Error(err),
		)
		return
	}
	l.log.Debug("image removed", zap.String("game_id", id), zap.String("image", *game.Image))
}
