package store

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryCollection keeps documents in insertion order. It backs DB_DRIVER=memory
// and the handler tests.
type MemoryCollection struct {
	mu   sync.RWMutex
	docs []Document
}

func NewMemoryCollection(seed ...Document) *MemoryCollection {
	m := &MemoryCollection{}
	for _, doc := range seed {
		if _, err := m.InsertOne(context.Background(), doc); err != nil {
			panic(err)
		}
	}
	return m
}

// NewMemoryCollections returns an empty in-memory set of bistro collections.
func NewMemoryCollections() Collections {
	return Collections{
		Users:   NewMemoryCollection(),
		Menu:    NewMemoryCollection(),
		Reviews: NewMemoryCollection(),
		Carts:   NewMemoryCollection(),
	}
}

func (m *MemoryCollection) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

func (m *MemoryCollection) Find(_ context.Context, filter Filter) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []Document{}
	for _, doc := range m.docs {
		if matches(doc, filter) {
			out = append(out, clone(doc))
		}
	}
	return out, nil
}

func (m *MemoryCollection) FindOne(_ context.Context, filter Filter) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.index(filter); i >= 0 {
		return clone(m.docs[i]), nil
	}
	return nil, ErrNotFound
}

func (m *MemoryCollection) InsertOne(_ context.Context, doc Document) (*InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := clone(doc)
	id, ok := stored["_id"]
	if !ok {
		id = primitive.NewObjectID()
		stored["_id"] = id
	}
	if m.index(Filter{"_id": id}) >= 0 {
		return nil, fmt.Errorf("insert _id %v: %w", id, ErrDuplicateKey)
	}
	m.docs = append(m.docs, stored)
	return &InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (m *MemoryCollection) UpdateOne(_ context.Context, filter Filter, set Document) (*UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := &UpdateResult{Acknowledged: true}
	i := m.index(filter)
	if i < 0 {
		return res, nil
	}
	res.MatchedCount = 1

	doc := m.docs[i]
	for k, v := range set {
		if cur, ok := doc[k]; !ok || !reflect.DeepEqual(cur, v) {
			doc[k] = v
			res.ModifiedCount = 1
		}
	}
	return res, nil
}

func (m *MemoryCollection) DeleteOne(_ context.Context, filter Filter) (*DeleteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := &DeleteResult{Acknowledged: true}
	if i := m.index(filter); i >= 0 {
		m.docs = append(m.docs[:i], m.docs[i+1:]...)
		res.DeletedCount = 1
	}
	return res, nil
}

// index must be called with mu held.
func (m *MemoryCollection) index(filter Filter) int {
	for i, doc := range m.docs {
		if matches(doc, filter) {
			return i
		}
	}
	return -1
}

// matches applies field equality; a nil value also matches a missing field,
// as a MongoDB null query does.
func matches(doc Document, filter Filter) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if want == nil {
			if ok && got != nil {
				return false
			}
			continue
		}
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

func clone(doc Document) Document {
	out := make(Document, len(doc)+1)
	for k, v := range doc {
		out[k] = v
	}
	return out
}
