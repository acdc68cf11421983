package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"juegos/backend/internal/models"
)

// GamesCollection is the collection name used by the original service.
const GamesCollection = "juegos"

type gameDocument struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Name   string             `bson:"nombre"`
	Image  *string            `bson:"imagen,omitempty"`
	Levels float64            `bson:"niveles"`
	Date   time.Time          `bson:"fecha"`
}

func (d gameDocument) toModel() models.Game {
	return models.Game{
		ID:     d.ID.Hex(),
		Name:   d.Name,
		Levels: d.Levels,
		Date:   d.Date.UTC(),
		Image:  d.Image,
	}
}

// MongoGameRepository stores games in a MongoDB collection.
type MongoGameRepository struct {
	coll *mongo.Collection
}

// NewMongoGameRepository uses the juegos collection of db.
func NewMongoGameRepository(db *mongo.Database) *MongoGameRepository {
	return &MongoGameRepository{coll: db.Collection(GamesCollection)}
}

func (r *MongoGameRepository) FindAll(ctx context.Context) ([]models.Game, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find games: %w", err)
	}
	defer cur.Close(ctx)

	games := []models.Game{}
	for cur.Next(ctx) {
		var doc gameDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode game: %w", err)
		}
		games = append(games, doc.toModel())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	return games, nil
}

func (r *MongoGameRepository) FindByID(ctx context.Context, id string) (models.Game, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Game{}, ErrInvalidID
	}

	var doc gameDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Game{}, ErrNotFound
	}
	if err != nil {
		return models.Game{}, fmt.Errorf("find game %s: %w", id, err)
	}
	return doc.toModel(), nil
}

func (r *MongoGameRepository) Insert(ctx context.Context, game models.Game) (models.Game, error) {
	doc := gameDocument{
		ID:     primitive.NewObjectID(),
		Name:   game.Name,
		Image:  game.Image,
		Levels: game.Levels,
		Date:   game.Date,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return models.Game{}, fmt.Errorf("insert game: %w", err)
	}
	return doc.toModel(), nil
}

func (r *MongoGameRepository) UpdateFields(ctx context.Context, id string, update models.GameUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	set := bson.M{
		"nombre":  update.Name,
		"niveles": update.Levels,
		"fecha":   update.Date,
	}
	if update.Image != nil {
		set["imagen"] = *update.Image
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update game %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoGameRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete game %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
