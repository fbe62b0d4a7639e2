package recordsRepo

import (
	"context"

	"asumo/database"
	"asumo/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// RecordRepository stores the generic portal records: news posts,
// maintenance tickets and polls.
type RecordRepository interface {
	Create(ctx context.Context, record models.Record) (*models.Record, error)
	GetByID(ctx context.Context, id string) (*models.Record, error)
	ListByKind(ctx context.Context, kind string) ([]models.Record, error)
	ListByKindAndAuthor(ctx context.Context, kind, authorID string) ([]models.Record, error)
	SetTicketStatus(ctx context.Context, id, status string) error
	AddPollVote(ctx context.Context, pollID string, vote models.PollVote) error
}

type mongoRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoRecordRepo returns a new RecordRepository instance using MongoDB.
func NewMongoRecordRepo() RecordRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoRecordRepo{
		coll: db.Collection("records"),
	}
}
