package handler

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"juegos/backend/internal/hub"
	"juegos/backend/internal/models"
	"juegos/backend/internal/repository"
	"juegos/backend/internal/validation"
)

// ImageField is the multipart field carrying the game image.
const ImageField = "imagen"

// ImageStore persists uploaded images.
type ImageStore interface {
	Accepts(fh *multipart.FileHeader) bool
	Save(fh *multipart.FileHeader) (string, error)
	Remove(rel string) error
}

// ImageCleaner removes the image currently attached to a game, best-effort.
type ImageCleaner interface {
	RemoveImage(ctx context.Context, id string)
}

// EventPublisher receives change notifications.
type EventPublisher interface {
	Publish(event hub.Event) error
}

// GameHandler serves the /api/games resource.
type GameHandler struct {
	games   repository.GameRepository
	images  ImageStore
	cleaner ImageCleaner
	events  EventPublisher
	log     *zap.Logger
}

func NewGameHandler(games repository.GameRepository, images ImageStore, cleaner ImageCleaner, events EventPublisher, log *zap.Logger) *GameHandler {
	return &GameHandler{
		games:   games,
		images:  images,
		cleaner: cleaner,
		events:  events,
		log:     log,
	}
}

// GetGames godoc
// @Summary      List games or get one by ID
// @Description  Without an ID returns every game; with an ID returns that game.
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  false  "Game ID (ObjectID hex)"
// @Success      200  {object}  Response
// @Failure      400  {object}  Response "Invalid ID"
// @Failure      404  {object}  Response "Game not found"
// @Failure      500  {object}  Response
// @Router       /games [get]
// @Router       /games/{id} [get]
func (h *GameHandler) GetGames(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if id == "" {
		games, err := h.games.FindAll(ctx)
		if err != nil {
			fail(c, h.log, err)
			return
		}
		ok(c, Response{Data: games})
		return
	}

	if err := repository.ValidateID(id); err != nil {
		fail(c, h.log, err)
		return
	}
	game, err := h.games.FindByID(ctx, id)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, Response{Data: game})
}

// CreateGame godoc
// @Summary      Create a game
// @Description  Creates a game from multipart form fields. An image is required.
// @Tags         games
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name    formData  string  true  "Name"
// @Param        levels  formData  number  true  "Number of levels"
// @Param        date    formData  string  true  "Date (YYYY-MM-DD)"
// @Param        imagen  formData  file    true  "Image (jpg or png)"
// @Success      200  {object}  Response
// @Failure      400  {object}  Response "Validation failed"
// @Failure      500  {object}  Response
// @Router       /games [post]
func (h *GameHandler) CreateGame(c *gin.Context) {
	ctx := c.Request.Context()

	var form validation.GameForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		badRequest(c, err.Error())
		return
	}
	upload := h.uploadedImage(c)
	if messages := validation.Validate(form, upload != nil, true); len(messages) > 0 {
		badRequest(c, messages...)
		return
	}

	fields, err := form.ToUpdate()
	if err != nil {
		fail(c, h.log, err)
		return
	}
	game := models.Game{Name: fields.Name, Levels: fields.Levels, Date: fields.Date}
	if upload != nil {
		rel, err := h.images.Save(upload)
		if err != nil {
			fail(c, h.log, fmt.Errorf("store image: %w", err))
			return
		}
		game.Image = &rel
	}

	stored, err := h.games.Insert(ctx, game)
	if err != nil {
		h.discardImage(game.Image)
		fail(c, h.log, err)
		return
	}

	h.publish(models.EventGameCreated, stored)
	ok(c, Response{Message: "game saved", Data: stored})
}

// UpdateGame godoc
// @Summary      Update a game
// @Description  Replaces name, levels and date. A new image replaces the stored one.
// @Tags         games
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true   "Game ID (ObjectID hex)"
// @Param        name    formData  string  true   "Name"
// @Param        levels  formData  number  true   "Number of levels"
// @Param        date    formData  string  true   "Date (YYYY-MM-DD)"
// @Param        imagen  formData  file    false  "Image (jpg or png)"
// @Success      200  {object}  Response
// @Failure      400  {object}  Response "Invalid ID or validation failed"
// @Failure      404  {object}  Response "Game not found"
// @Failure      500  {object}  Response
// @Router       /games/{id} [put]
func (h *GameHandler) UpdateGame(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if err := repository.ValidateID(id); err != nil {
		fail(c, h.log, err)
		return
	}

	var form validation.GameForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		badRequest(c, err.Error())
		return
	}
	upload := h.uploadedImage(c)
	if messages := validation.Validate(form, upload != nil, false); len(messages) > 0 {
		badRequest(c, messages...)
		return
	}

	update, err := form.ToUpdate()
	if err != nil {
		fail(c, h.log, err)
		return
	}
	if upload != nil {
		rel, err := h.images.Save(upload)
		if err != nil {
			fail(c, h.log, fmt.Errorf("store image: %w", err))
			return
		}
		h.cleaner.RemoveImage(ctx, id)
		update.Image = &rel
	}

	if err := h.games.UpdateFields(ctx, id, update); err != nil {
		h.discardImage(update.Image)
		fail(c, h.log, err)
		return
	}

	h.publish(models.EventGameUpdated, gin.H{"id": id})
	ok(c, Response{Message: "game updated"})
}

// DeleteGame godoc
// @Summary      Delete a game
// @Description  Removes the game's image file, then the game.
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Game ID (ObjectID hex)"
// @Success      200  {object}  Response
// @Failure      400  {object}  Response "Invalid ID"
// @Failure      404  {object}  Response "Game not found"
// @Failure      500  {object}  Response
// @Router       /games/{id} [delete]
func (h *GameHandler) DeleteGame(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if err := repository.ValidateID(id); err != nil {
		fail(c, h.log, err)
		return
	}

	h.cleaner.RemoveImage(ctx, id)
	if err := h.games.DeleteByID(ctx, id); err != nil {
		fail(c, h.log, err)
		return
	}

	h.publish(models.EventGameDeleted, gin.H{"id": id})
	ok(c, Response{Message: "game deleted"})
}

// uploadedImage returns the image upload when present and of an accepted type.
func (h *GameHandler) uploadedImage(c *gin.Context) *multipart.FileHeader {
	fh, err := c.FormFile(ImageField)
	if err != nil || !h.images.Accepts(fh) {
		return nil
	}
	return fh
}

// discardImage removes a file stored earlier in a request that then failed.
func (h *GameHandler) discardImage(rel *string) {
	if rel == nil {
		return
	}
	if err := h.images.Remove(*rel); err != nil {
		h.log.Warn("discard uploaded image", zap.String("image", *rel), zap.Error(err))
	}
}

func (h *GameHandler) publish(typ models.EventType, payload any) {
	if h.events == nil {
		return
	}
	if err := h.events.Publish(hub.Event{Type: typ, Payload: payload}); err != nil {
		h.log.Warn("publish event", zap.String("type", string(typ)), zap.Error(err))
	}
}
