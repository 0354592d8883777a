package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readconcern"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.mongodb.org/mongo-driver/v2/mongo/writeconcern"

	"invento/internal/domain"
)

type transactor struct {
	client *mongo.Client
}

// NewTransactor returns a Transactor backed by client sessions.
func NewTransactor(client *mongo.Client) domain.Transactor {
	return &transactor{client: client}
}

// WithinTransaction runs fn in a snapshot transaction on the primary. The driver retries fn
// on transient errors such as write conflicts, so fn must be safe to re-run.
func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	txnOpts := options.Transaction().
		SetReadPreference(readpref.Primary()).
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = sess.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		return nil, fn(ctx)
	}, txnOpts)
	return err
}
