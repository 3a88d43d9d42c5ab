/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package transactions

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nuts-foundation/ion-crawler/core"
	"github.com/nuts-foundation/ion-crawler/transactions/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// CollectionName is the name of the collection Sidetree core stores its transactions in.
const CollectionName = "transactions"

var errNotInitialized = errors.New("transaction store not initialized")

var _ Store = (*mongoStore)(nil)

// NewMongoStore creates a Store that reads the transactions collection of the given MongoDB database.
// connectTimeout bounds connecting and the initial ping.
func NewMongoStore(connectionString string, databaseName string, connectTimeout time.Duration) Store {
	return &mongoStore{
		connectionString: connectionString,
		databaseName:     databaseName,
		connectTimeout:   connectTimeout,
	}
}

type mongoStore struct {
	connectionString string
	databaseName     string
	connectTimeout   time.Duration
	mux              sync.Mutex
	client           *mongo.Client
	collection       *mongo.Collection
}

func (m *mongoStore) Initialize(ctx context.Context) error {
	m.mux.Lock()
	defer m.mux.Unlock()
	if m.collection != nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, m.connectTimeout)
	defer cancel()
	opts := options.Client().
		ApplyURI(m.connectionString).
		SetConnectTimeout(m.connectTimeout).
		SetServerSelectionTimeout(m.connectTimeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return core.WrapError(ErrStoreInitialization, err)
	}
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return core.WrapError(ErrStoreInitialization, err)
	}
	log.Logger().Infof("Connected to transaction log (database: %s)", m.databaseName)
	m.client = client
	m.collection = client.Database(m.databaseName).Collection(CollectionName)
	return nil
}

func (m *mongoStore) Count(ctx context.Context) (int64, error) {
	collection, err := m.getCollection()
	if err != nil {
		return 0, err
	}
	return collection.CountDocuments(ctx, bson.D{})
}

func (m *mongoStore) All(ctx context.Context) ([]Transaction, error) {
	collection, err := m.getCollection()
	if err != nil {
		return nil, err
	}
	cursor, err := collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "transactionNumber", Value: 1}}))
	if err != nil {
		return nil, err
	}
	result := make([]Transaction, 0)
	if err = cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Close disconnects from MongoDB, if connected.
func (m *mongoStore) Close(ctx context.Context) error {
	m.mux.Lock()
	defer m.mux.Unlock()
	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	m.collection = nil
	return err
}

func (m *mongoStore) getCollection() (*mongo.Collection, error) {
	m.mux.Lock()
	defer m.mux.Unlock()
	if m.collection == nil {
		return nil, errNotInitialized
	}
	return m.collection, nil
}
