package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rs/zerolog"
)

const collectionRecords = "collections"

// collectionDoc holds one logical collection as a single document. Keeping
// the whole sequence in one document makes a full replace atomic, so readers
// observe either the old or the new collection, never a mix.
type collectionDoc struct {
	Name      string    `bson:"_id"`
	Records   []string  `bson:"records"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// RecordStore implements the record store contract on MongoDB for hosted
// deployments. Records are stored as their JSON text to preserve insertion
// order and field shape exactly as the engine wrote them.
type RecordStore struct {
	col *mongo.Collection
	log zerolog.Logger
}

// NewRecordStore returns a RecordStore writing into db.
func NewRecordStore(db *mongo.Database, log zerolog.Logger) *RecordStore {
	return &RecordStore{col: db.Collection(collectionRecords), log: log}
}

// ReadCollection returns the records of the named collection. A missing
// document degrades to an empty sequence; connectivity failures surface as
// errors for the caller to classify.
func (r *RecordStore) ReadCollection(ctx context.Context, name string) ([]json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc collectionDoc
	err := r.col.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("mongo store: read %s: %w", name, err)
	}

	records := make([]json.RawMessage, 0, len(doc.Records))
	for i, rec := range doc.Records {
		if !json.Valid([]byte(rec)) {
			r.log.Warn().Str("collection", name).Int("index", i).Msg("skipping corrupt record")
			continue
		}
		records = append(records, json.RawMessage(rec))
	}
	return records, nil
}

// WriteCollection replaces the named collection in full.
func (r *RecordStore) WriteCollection(ctx context.Context, name string, records []json.RawMessage) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := collectionDoc{
		Name:      name,
		Records:   make([]string, 0, len(records)),
		UpdatedAt: time.Now().UTC(),
	}
	for _, rec := range records {
		doc.Records = append(doc.Records, string(rec))
	}

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo store: write %s: %w", name, err)
	}
	return nil
}
