// SPDX-License-Identifier: MPL-2.0

package mongosupply

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/x/mongo/driver/connstring"

	"supplyloader/pkg/datamodel"
)

const (
	// DefaultDatabase is used when the URI names no database.
	DefaultDatabase = "test"

	serverSelectionTimeout = 10 * time.Second
	disconnectTimeout      = 5 * time.Second
)

var (
	// ErrNoConnection is returned for a nil container or empty URI.
	ErrNoConnection = errors.New("no connection string")
	// ErrNoCollection is returned when an entity is not bound to a named
	// collection.
	ErrNoCollection = errors.New("entity has no collection")
	// ErrNoEntities is returned by LoadSamples for an empty batch.
	ErrNoEntities = errors.New("no entities to load")
)

type store struct {
	logger *slog.Logger
}

// DatabaseName returns the database named by uri, or DefaultDatabase.
func DatabaseName(uri string) (string, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", fmt.Errorf("parse mongo connection string: %w", err)
	}
	if cs.Database == "" {
		return DefaultDatabase, nil
	}
	return cs.Database, nil
}

// connect returns a pinged client and the target database. Callers run the
// returned release func when done.
func (s *store) connect(ctx context.Context, container *datamodel.DataContainer) (*mongo.Database, func(), error) {
	uri := container.String()
	if uri == "" {
		return nil, nil, ErrNoConnection
	}
	dbName, err := DatabaseName(uri)
	if err != nil {
		return nil, nil, err
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri).SetServerSelectionTimeout(serverSelectionTimeout))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			s.logger.Warn("disconnecting mongo client", "error", err)
		}
	}
	if err := client.Ping(ctx, nil); err != nil {
		release()
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client.Database(dbName), release, nil
}
