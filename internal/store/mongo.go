package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCollection adapts a *mongo.Collection.
type MongoCollection struct {
	coll *mongo.Collection
}

func NewMongoCollection(coll *mongo.Collection) *MongoCollection {
	return &MongoCollection{coll: coll}
}

func (m *MongoCollection) Find(ctx context.Context, filter Filter) ([]Document, error) {
	cursor, err := m.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", m.coll.Name(), err)
	}
	docs := []Document{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("read %s cursor: %w", m.coll.Name(), err)
	}
	return docs, nil
}

func (m *MongoCollection) FindOne(ctx context.Context, filter Filter) (Document, error) {
	var doc Document
	err := m.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find one %s: %w", m.coll.Name(), err)
	}
	return doc, nil
}

func (m *MongoCollection) InsertOne(ctx context.Context, doc Document) (*InsertResult, error) {
	res, err := m.coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return nil, fmt.Errorf("insert %s: %w: %v", m.coll.Name(), ErrDuplicateKey, err)
	}
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", m.coll.Name(), err)
	}
	return &InsertResult{Acknowledged: true, InsertedID: res.InsertedID}, nil
}

func (m *MongoCollection) UpdateOne(ctx context.Context, filter Filter, set Document) (*UpdateResult, error) {
	res, err := m.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", m.coll.Name(), err)
	}
	return &UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}, nil
}

func (m *MongoCollection) DeleteOne(ctx context.Context, filter Filter) (*DeleteResult, error) {
	res, err := m.coll.DeleteOne(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("delete %s: %w", m.coll.Name(), err)
	}
	return &DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}
