package mongo

import (
	"context"

	"fitforge/internal/repository"

	"go.mongodb.org/mongo-driver/mongo"
)

// mongoTxRunner implements repository.TxRunner on top of MongoDB sessions.
// Requires the server to run as a replica set (standalone mongod does not
// support transactions).
type mongoTxRunner struct {
	client *mongo.Client
}

// NewMongoTxRunner creates a TxRunner backed by the given client.
func NewMongoTxRunner(client *mongo.Client) repository.TxRunner {
	return &mongoTxRunner{client: client}
}

// WithTransaction runs fn inside one session transaction. All repository
// calls made with the session context commit or abort together.
func (r *mongoTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}
