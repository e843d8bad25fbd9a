package store

import (
	"context"
	"fmt"
)

// Unavailable fails every operation with err. It stands in for a collection
// whose database could not be opened at startup, so the process keeps serving
// and each database-backed request ends as a server fault.
type Unavailable struct {
	Err error
}

func (u Unavailable) fail(op string) error {
	return fmt.Errorf("%s: database unavailable: %w", op, u.Err)
}

func (u Unavailable) Find(context.Context, Filter) ([]Document, error) {
	return nil, u.fail("find")
}

func (u Unavailable) FindOne(context.Context, Filter) (Document, error) {
	return nil, u.fail("find one")
}

func (u Unavailable) InsertOne(context.Context, Document) (*InsertResult, error) {
	return nil, u.fail("insert")
}

func (u Unavailable) UpdateOne(context.Context, Filter, Document) (*UpdateResult, error) {
	return nil, u.fail("update")
}

func (u Unavailable) DeleteOne(context.Context, Filter) (*DeleteResult, error) {
	return nil, u.fail("delete")
}

// UnavailableCollections returns a Collections set where everything fails with err.
func UnavailableCollections(err error) Collections {
	u := Unavailable{Err: err}
	return Collections{Users: u, Menu: u, Reviews: u, Carts: u}
}
