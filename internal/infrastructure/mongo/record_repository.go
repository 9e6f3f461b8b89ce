package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sngm3741/match-intake/api/internal/intake/domain"
)

// RecordRepository はレコードを MongoDB コレクションへ 1 件ずつ追記する。
// 単一ドキュメントの InsertOne は原子的なので、アプリ側のロックは持たない。
type RecordRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
	location   string
}

// NewRecordRepository binds the repository to db.collection.
func NewRecordRepository(client *mongo.Client, database, collection string) *RecordRepository {
	return &RecordRepository{
		client:     client,
		collection: client.Database(database).Collection(collection),
		location:   fmt.Sprintf("mongodb/%s/%s", database, collection),
	}
}

// Location identifies the target collection.
func (r *RecordRepository) Location() string {
	return r.location
}

// Append inserts record as a new document keyed by a fresh UUID. Documents
// are never updated. No deadline is added here: an insert that commits must
// not be reported as failed.
func (r *RecordRepository) Append(ctx context.Context, record domain.Record) error {
	doc := buildSubmissionDocument(uuid.NewString(), record, time.Now())
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return &domain.StoreError{Location: r.location, Err: err}
	}
	return nil
}

// Close disconnects the underlying client.
func (r *RecordRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
