package repository

import (
	"context"

	"quizbank-service/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CodeRepository struct {
	Col *mongo.Collection
}

func NewCodeRepository(db *mongo.Database) *CodeRepository {
	return &CodeRepository{Col: db.Collection("codes")}
}

func (r *CodeRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *CodeRepository) Create(ctx context.Context, code *models.AccessCode) error {
	if code.ID == "" {
		code.ID = uuid.NewString()
	}
	_, err := r.Col.InsertOne(ctx, code)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// EnsureExists creates the code if it is missing, leaving existing codes
// untouched. Used by bulk question upload to derive referenced codes.
func (r *CodeRepository) EnsureExists(ctx context.Context, code string, isPaid bool) error {
	_, err := r.Col.UpdateOne(ctx,
		bson.M{"code": code},
		bson.M{"$setOnInsert": bson.M{"_id": uuid.NewString(), "code": code, "active": true, "isPaid": isPaid}},
		options.Update().SetUpsert(true),
	)
	return err
}

// FindListings returns the {code, active} projection for every code matching
// the filter, sorted by code for a stable listing order.
func (r *CodeRepository) FindListings(ctx context.Context, filter bson.M) ([]models.CodeListing, error) {
	opts := options.Find().
		SetProjection(bson.M{"code": 1, "active": 1, "_id": 0}).
		SetSort(bson.M{"code": 1})

	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	listings := []models.CodeListing{}
	if err := cur.All(ctx, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}
