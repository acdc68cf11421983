package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"juegos/backend/internal/models"
)

func newMockMongo(t *testing.T) *mtest.T {
	t.Helper()
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func gamesNamespace(mt *mtest.T) string {
	return mt.DB.Name() + "." + GamesCollection
}

func TestMongoFindAll(t *testing.T) {
	mt := newMockMongo(t)

	mt.Run("empty collection", func(mt *mtest.T) {
		repo := NewMongoGameRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, gamesNamespace(mt), mtest.FirstBatch))

		games, err := repo.FindAll(context.Background())
		if err != nil {
			mt.Fatalf("find all: %v", err)
		}
		if games == nil || len(games) != 0 {
			mt.Fatalf("expected empty non-nil list, got %#v", games)
		}
	})

	mt.Run("decodes documents", func(mt *mtest.T) {
		repo := NewMongoGameRepository(mt.DB)
		date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, gamesNamespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: first}, {Key: "nombre", Value: "Chess"}, {Key: "niveles", Value: 5.0}, {Key: "fecha", Value: date}, {Key: "imagen", Value: "/uploads/a.png"}},
			bson.D{{Key: "_id", Value: second}, {Key: "nombre", Value: "Go"}, {Key: "niveles", Value: 2.5}, {Key: "fecha", Value: date}},
		))

		games, err := repo.FindAll(context.Background())
		if err != nil {
			mt.Fatalf("find all: %v", err)
		}
		if len(games) != 2 {
			mt.Fatalf("expected 2 games, got %d", len(games))
		}
		if games[0].ID != first.Hex() || games[0].Name != "Chess" || games[0].Levels != 5 || !games[0].Date.Equal(date) {
			mt.Fatalf("unexpected first game %+v", games[0])
		}
		if games[0].Image == nil || *games[0].Image != "/uploads/a.png" {
			mt.Fatalf("unexpected first image %v", games[0].Image)
		}
		if games[1].Image != nil {
			mt.Fatalf("expected no image on second game, got %q", *games[1].Image)
		}
	})
}

func TestMongoInsertAndFind(t *testing.T) {
	mt := newMockMongo(t)

	mt.Run("round trip", func(mt *mtest.T) {
		repo := NewMongoGameRepository(mt.DB)
		ctx := context.Background()
		date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		mt.AddMockResponses(mtest.CreateSuccessResponse())
		stored, err := repo.Insert(ctx, models.Game{Name: "Chess", Levels: 5, Date: date})
		if err != nil {
			mt.Fatalf("insert: %v", err)
		}
		if err := ValidateID(stored.ID); err != nil {
			mt.Fatalf("assigned id %q is not valid", stored.ID)
		}

		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "insert" {
			mt.Fatalf("expected insert command, got %v", evt)
		}
		doc := evt.Command.Lookup("documents", "0").Document()
		if got := doc.Lookup("nombre").StringValue(); got != "Chess" {
			mt.Fatalf("expected nombre Chess, got %q", got)
		}
		if got := doc.Lookup("niveles").Double(); got != 5 {
			mt.Fatalf("expected niveles 5, got %v", got)
		}
		if _, err := doc.LookupErr("fecha"); err != nil {
			mt.Fatalf("fecha missing: %v", err)
		}
		if _, err := doc.LookupErr("imagen"); err == nil {
			mt.Fatal("imagen should be omitted when unset")
		}

		oid, _ := primitive.ObjectIDFromHex(stored.ID)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, gamesNamespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: oid}, {Key: "nombre", Value: "Chess"}, {Key: "niveles", Value: 5.0}, {Key: "fecha", Value: date}},
		))
		got, err := repo.FindByID(ctx, stored.ID)
		if err != nil {
			mt.Fatalf("find: %v", err)
		}
		if got.ID != stored.ID || got.Name != "Chess" || got.Levels != 5 || !got.Date.Equal(date) {
			mt.Fatalf("unexpected game %+v", got)
		}
	})

	mt.Run("missing document", func(mt *mtest.T) {
		repo := NewMongoGameRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, gamesNamespace(mt), mtest.FirstBatch))

		if _, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex()); !errors.Is(err, ErrNotFound) {
			mt.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestMongoUpdateFields(t *testing.T) {
	mt := newMockMongo(t)
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	mt.Run("sets fields", func(mt *mtest.T) {
		repo := NewMongoGameRepository(mt.DB)
		img := "/uploads/new.png"
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		err := repo.UpdateFields(context.Background(), primitive.NewObjectID().Hex(), models.GameUpdate{Name: "Go", Levels: 9, Date: date, Image: &img})
		if err != nil {
			mt.Fatalf("update: %v", err)
		}

		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "update" {
			mt.Fatalf("expected update command, got %v", evt)
		}
		set := evt.Command.Lookup("updates", "0", "u", "$set").Document()
		if got := set.Lookup("nombre").StringValue(); got != "Go" {
			mt.Fatalf("expected nombre Go, got %q", got)
		}
		if got := set.Lookup("imagen").StringValue(); got != img {
			mt.Fatalf("expected imagen %q, got %q", img, got)
		}
	})

	mt.Run("keeps image when unset", func(mt *mtest.T) {
		repo := NewMongoGameRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		if err := repo.UpdateFields(context.Background(), primitive.NewObjectID().Hex(), models.GameUpdate{Name: "Go", Levels: 9, Date: date}); err != nil {
			mt.Fatalf("update: %v", err)
		}
		set := mt.GetStartedEvent().Command.Lookup("updates", "0", "u", "$set").Document()
		if _, err := set.LookupErr("imagen"); err == nil {
			mt.Fatal("imagen should not be overwritten")
		}
	})

	mt.Run("no match", func(mt *mtest.T) {
		repo := NewMongoGameRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.UpdateFields(context.Background(), primitive.NewObjectID().Hex(), models.GameUpdate{Name: "Go", Levels: 9, Date: date})
		if !errors.Is(err, ErrNotFound) {
			mt.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestMongoDeleteByID(t *testing.T) {
	mt := newMockMongo(t)

	mt.Run("deleted", func(mt *mtest.T) {
		repo := NewMongoGameRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		if err := repo.DeleteByID(context.Background(), primitive.NewObjectID().Hex()); err != nil {
			mt.Fatalf("delete: %v", err)
		}
	})

	mt.Run("nothing deleted", func(mt *mtest.T) {
		repo := NewMongoGameRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		if err := repo.DeleteByID(context.Background(), primitive.NewObjectID().Hex()); !errors.Is(err, ErrNotFound) {
			mt.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestMongoRejectsInvalidIDs(t *testing.T) {
	mt := newMockMongo(t)

	mt.Run("no command sent", func(mt *mtest.T) {
		repo := NewMongoGameRepository(mt.DB)
		ctx := context.Background()

		if _, err := repo.FindByID(ctx, "nope"); !errors.Is(err, ErrInvalidID) {
			mt.Fatalf("find: expected ErrInvalidID, got %v", err)
		}
		if err := repo.UpdateFields(ctx, "nope", models.GameUpdate{}); !errors.Is(err, ErrInvalidID) {
			mt.Fatalf("update: expected ErrInvalidID, got %v", err)
		}
		if err := repo.DeleteByID(ctx, "nope"); !errors.Is(err, ErrInvalidID) {
			mt.Fatalf("delete: expected ErrInvalidID, got %v", err)
		}
		if evt := mt.GetStartedEvent(); evt != nil {
			mt.Fatalf("unexpected command %s", evt.CommandName)
		}
	})
}
