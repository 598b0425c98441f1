package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medfeedback/internal/model"
)

// SubmissionRepo persists categorized submissions
type SubmissionRepo interface {
	Create(ctx context.Context, sub *model.Submission) (string, error)
	GetByID(ctx context.Context, id string) (*model.Submission, error)
	List(ctx context.Context, filter model.SubmissionFilter) ([]*model.Submission, error)
	Delete(ctx context.Context, id, patientID string) (bool, error)
}

const defaultListLimit = 100

type submissionRepo struct {
	collection *mongo.Collection
}

// NewSubmissionRepo creates a MongoDB-backed submission repository
func NewSubmissionRepo(db *mongo.Database) SubmissionRepo {
	return &submissionRepo{
		collection: db.Collection("submissions"),
	}
}

func (r *submissionRepo) Create(ctx context.Context, sub *model.Submission) (string, error) {
	if sub.ID == "" {
		sub.ID = primitive.NewObjectID().Hex()
	}
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, sub); err != nil {
		return "", err
	}
	return sub.ID, nil
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	var sub model.Submission
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepo) List(ctx context.Context, filter model.SubmissionFilter) ([]*model.Submission, error) {
	query := bson.M{}
	if filter.PatientID != "" {
		query["patientId"] = filter.PatientID
	}
	if filter.Overall != "" {
		query["category.overall"] = filter.Overall
	}
	if filter.DepartmentID != "" {
		query["departments"] = filter.DepartmentID
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "submittedAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	subs := []*model.Submission{}
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *submissionRepo) Delete(ctx context.Context, id, patientID string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "patientId": patientID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
