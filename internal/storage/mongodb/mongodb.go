// Package mongodb provides the MongoDB-backed implementation of the
// storage.Storage interface.
//
// A single *mongo.Client is created at startup and shared by every request;
// the driver pools connections internally and is safe for concurrent use.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aanand-mishra/student-records-api/internal/config"
	"github.com/aanand-mishra/student-records-api/internal/storage"
	"github.com/aanand-mishra/student-records-api/internal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultConnectTimeout = 10 * time.Second

// MongoDB is the concrete implementation of storage.Storage.
type MongoDB struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ storage.Storage = (*MongoDB)(nil)

// New connects to the cluster described by cfg.Mongo, pings the primary
// and returns a handle bound to the configured collection.
func New(ctx context.Context, cfg *config.Config) (*MongoDB, error) {
	timeout := cfg.Mongo.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.Mongo.ConnectionURI()).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb.New: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb.New: ping: %w", err)
	}

	coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
	return &MongoDB{client: client, coll: coll}, nil
}

func byID(id primitive.ObjectID) bson.D {
	return bson.D{{Key: types.IDKey, Value: id}}
}

// ListStudents pages through the collection newest first. ObjectIDs start
// with their creation timestamp, so sorting on _id descending is creation
// order descending.
func (m *MongoDB) ListStudents(ctx context.Context, skip, limit int64) ([]types.Record, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: types.IDKey, Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := m.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("ListStudents: find: %w", err)
	}
	defer cur.Close(ctx)

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("ListStudents: decode: %w", err)
	}

	records := make([]types.Record, 0, len(docs))
	for _, doc := range docs {
		rec, err := fromBSON(doc)
		if err != nil {
			return nil, fmt.Errorf("ListStudents: convert: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// CountStudents uses collection metadata rather than scanning documents.
func (m *MongoDB) CountStudents(ctx context.Context) (int64, error) {
	n, err := m.coll.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("CountStudents: %w", err)
	}
	return n, nil
}

func (m *MongoDB) GetStudentByID(ctx context.Context, id primitive.ObjectID) (types.Record, error) {
	var doc bson.M
	err := m.coll.FindOne(ctx, byID(id)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetStudentByID: %w", err)
	}

	rec, err := fromBSON(doc)
	if err != nil {
		return nil, fmt.Errorf("GetStudentByID: convert: %w", err)
	}
	return rec, nil
}

// CreateStudent lets the driver generate the ObjectID.
func (m *MongoDB) CreateStudent(ctx context.Context, record types.Record) (types.InsertResult, error) {
	res, err := m.coll.InsertOne(ctx, toBSON(record.Without(types.IDKey)))
	if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
		return types.InsertResult{Acknowledged: false}, nil
	}
	if err != nil {
		return types.InsertResult{}, fmt.Errorf("CreateStudent: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return types.InsertResult{}, fmt.Errorf("CreateStudent: unexpected id type %T", res.InsertedID)
	}
	return types.InsertResult{ID: id, Acknowledged: true}, nil
}

// UpdateStudentByID issues a $set of the patch fields.
func (m *MongoDB) UpdateStudentByID(ctx context.Context, id primitive.ObjectID, patch types.Record) (types.UpdateResult, error) {
	update := bson.D{{Key: "$set", Value: toBSON(patch.Without(types.IDKey))}}

	res, err := m.coll.UpdateOne(ctx, byID(id), update)
	if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
		return types.UpdateResult{Acknowledged: false}, nil
	}
	if err != nil {
		return types.UpdateResult{}, fmt.Errorf("UpdateStudentByID: %w", err)
	}

	return types.UpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		Acknowledged:  true,
	}, nil
}

func (m *MongoDB) DeleteStudentByID(ctx context.Context, id primitive.ObjectID) (types.DeleteResult, error) {
	res, err := m.coll.DeleteOne(ctx, byID(id))
	if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
		return types.DeleteResult{Acknowledged: false}, nil
	}
	if err != nil {
		return types.DeleteResult{}, fmt.Errorf("DeleteStudentByID: %w", err)
	}
	return types.DeleteResult{DeletedCount: res.DeletedCount, Acknowledged: true}, nil
}

func (m *MongoDB) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
