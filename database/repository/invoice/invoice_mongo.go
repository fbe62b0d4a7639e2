package invoiceRepo

import (
	"context"
	"fmt"
	"time"

	"asumo/database"
	"asumo/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoInvoiceRepo implements InvoiceRepository using MongoDB.
type MongoInvoiceRepo struct {
	coll *mongo.Collection
}

// NewMongoInvoiceRepo creates a new InvoiceRepository backed by MongoDB.
func NewMongoInvoiceRepo() InvoiceRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("invoices")
	repo := &MongoInvoiceRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create invoice indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoInvoiceRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoInvoiceRepo) Create(ctx context.Context, inv models.Invoice) (*models.Invoice, error) {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	if inv.Status == "" {
		inv.Status = models.InvoiceStatusUnpaid
	}
	inv.CreatedAt = time.Now()
	inv.UpdatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to insert invoice: %w", err)
	}
	return &inv, nil
}

func (r *MongoInvoiceRepo) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	var inv models.Invoice
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&inv); err != nil {
		return nil, fmt.Errorf("failed to fetch invoice %s: %w", id, err)
	}
	return &inv, nil
}

func (r *MongoInvoiceRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Invoice, error) {
	return r.find(ctx, bson.M{"user_id": ownerID})
}

func (r *MongoInvoiceRepo) ListAll(ctx context.Context) ([]models.Invoice, error) {
	return r.find(ctx, bson.M{})
}

// FindPayableByOwner applies the owner and status filters in the query itself
// so a caller can never select another resident's invoices, whatever ids the
// client supplied.
func (r *MongoInvoiceRepo) FindPayableByOwner(ctx context.Context, ownerID string, ids []string) ([]models.Invoice, error) {
	filter := bson.M{
		"user_id": ownerID,
		"status":  bson.M{"$ne": models.InvoiceStatusPaid},
	}
	if len(ids) > 0 {
		filter["id"] = bson.M{"$in": ids}
	}
	return r.find(ctx, filter)
}

// MarkPaid is a single conditional UpdateMany: id in the set AND owner
// matching. It is safe to re-run for already paid invoices.
func (r *MongoInvoiceRepo) MarkPaid(ctx context.Context, ownerID string, ids []string) (int64, error) {
	filter := bson.M{
		"id":      bson.M{"$in": ids},
		"user_id": ownerID,
	}
	update := bson.M{"$set": bson.M{
		"status":     models.InvoiceStatusPaid,
		"updated_at": time.Now(),
	}}

	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to mark invoices paid: %w", err)
	}
	return res.MatchedCount, nil
}

func (r *MongoInvoiceRepo) find(ctx context.Context, filter bson.M) ([]models.Invoice, error) {
	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("invoice query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var invoices []models.Invoice
	if err := cursor.All(ctx, &invoices); err != nil {
		return nil, fmt.Errorf("failed to decode invoices: %w", err)
	}
	return invoices, nil
}
