package repository

import (
	"context"

	"quizbank-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type QuestionRepository struct {
	Col *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{Col: db.Collection("questions")}
}

func (r *QuestionRepository) InsertMany(ctx context.Context, questions []models.Question) error {
	docs := make([]any, len(questions))
	for i := range questions {
		docs[i] = questions[i]
	}
	_, err := r.Col.InsertMany(ctx, docs)
	return err
}

// SampleByCode draws up to size questions for a code, uniformly at random
// without replacement. Codes with fewer questions return everything they
// have; unknown codes return an empty slice.
func (r *QuestionRepository) SampleByCode(ctx context.Context, code string, size int) ([]models.Question, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"code": code}}},
		{{Key: "$sample", Value: bson.M{"size": size}}},
	}

	cur, err := r.Col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	questions := []models.Question{}
	if err := cur.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *QuestionRepository) CountByCode(ctx context.Context, code string) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{"code": code})
}
