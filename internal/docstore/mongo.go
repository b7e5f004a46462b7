package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const mongoCollection = "resumes"

// mongoStore is the remote backend: one BSON document per resume,
// with the identifier assigned by the server (ObjectID).
type mongoStore struct {
	client *mongo.Client
	dbName string
}

type mongoDoc struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Title     string        `bson:"title"`
	Data      string        `bson:"data"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

func openMongo(uri, dbName string) (*mongoStore, error) {
	if dbName == "" {
		dbName = "vitae"
	}
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return &mongoStore{client: client, dbName: dbName}, nil
}

func (m *mongoStore) coll() *mongo.Collection {
	return m.client.Database(m.dbName).Collection(mongoCollection)
}

func (m *mongoStore) Get(ctx context.Context, id string) (*Record, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid id %q", ErrNotFound, id)
	}
	var doc mongoDoc
	err = m.coll().FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &Record{
		ID:        doc.ID.Hex(),
		Title:     doc.Title,
		Data:      []byte(doc.Data),
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func (m *mongoStore) Create(ctx context.Context, title string, data []byte) (string, error) {
	res, err := m.coll().InsertOne(ctx, mongoDoc{
		Title:     title,
		Data:      string(data),
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", fmt.Errorf("create document: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (m *mongoStore) Update(ctx context.Context, id string, title string, data []byte) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("update document: invalid id %q", id)
	}
	_, err = m.coll().UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":     title,
		"data":      string(data),
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

func (m *mongoStore) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil // unknown id, nothing to delete
	}
	_, err = m.coll().DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (m *mongoStore) List(ctx context.Context) ([]Info, error) {
	opts := options.Find().
		SetProjection(bson.M{"title": 1, "updatedAt": 1}).
		SetSort(bson.M{"updatedAt": -1})
	cursor, err := m.coll().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer cursor.Close(ctx)

	var infos []Info
	for cursor.Next(ctx) {
		var doc mongoDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		infos = append(infos, Info{ID: doc.ID.Hex(), Title: doc.Title, UpdatedAt: doc.UpdatedAt})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return infos, nil
}

func (m *mongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}
