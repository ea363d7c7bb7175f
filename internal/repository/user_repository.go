package repository

import (
	"context"
	"errors"
	"time"

	"quizbank-service/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository struct {
	Col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{Col: db.Collection("users")}
}

// EnsureIndexes enforces email uniqueness at the write boundary.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.Col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	_, err := r.Col.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// SetPaid overwrites the cached entitlement flag. The overwrite is what
// makes reconciliation idempotent under duplicate or out-of-order delivery.
func (r *UserRepository) SetPaid(ctx context.Context, email string, paid bool) error {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"isPaid": paid, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) HideCode(ctx context.Context, email, code string) error {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$addToSet": bson.M{"hiddenCodes": code}, "$set": bson.M{"updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) UnhideCode(ctx context.Context, email, code string) error {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$pull": bson.M{"hiddenCodes": code}, "$set": bson.M{"updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
