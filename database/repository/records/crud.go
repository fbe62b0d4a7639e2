package recordsRepo

import (
	"context"
	"errors"
	"time"

	"asumo/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new portal record and returns it with its ID assigned.
func (r *mongoRecordRepo) Create(ctx context.Context, record models.Record) (*models.Record, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return nil, err
	}
	return &record, nil
}

// GetByID returns a portal record by its ID.
func (r *mongoRecordRepo) GetByID(ctx context.Context, id string) (*models.Record, error) {
	var record models.Record
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

// ListByKind fetches all records of one kind, newest first.
func (r *mongoRecordRepo) ListByKind(ctx context.Context, kind string) ([]models.Record, error) {
	return r.list(ctx, bson.M{"kind": kind})
}

// ListByKindAndAuthor fetches one author's records of one kind, newest first.
func (r *mongoRecordRepo) ListByKindAndAuthor(ctx context.Context, kind, authorID string) ([]models.Record, error) {
	return r.list(ctx, bson.M{"kind": kind, "author_id": authorID})
}

// SetTicketStatus moves a maintenance ticket to a new status.
func (r *mongoRecordRepo) SetTicketStatus(ctx context.Context, id, status string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "kind": models.RecordKindTicket},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("ticket not found")
	}
	return nil
}

// AddPollVote appends a vote unless the resident has already voted. The
// guard lives in the filter so repeated submissions stay single votes.
func (r *mongoRecordRepo) AddPollVote(ctx context.Context, pollID string, vote models.PollVote) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{
			"id":   pollID,
			"kind": models.RecordKindPoll,
			"votes.user_id": bson.M{
				"$ne": vote.UserID,
			},
		},
		bson.M{
			"$push": bson.M{"votes": vote},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("poll not found or already voted")
	}
	return nil
}

func (r *mongoRecordRepo) list(ctx context.Context, filter bson.M) ([]models.Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.Record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
