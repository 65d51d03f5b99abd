// Package db provides MongoDB storage for users, campgrounds and the
// processed webhook-event ledger.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/opencamp-hq/backend/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultTimeout = 10 * time.Second

// MongoStorage uses an external MongoDB service for storing users,
// campgrounds and processed webhook events.
type MongoStorage struct {
	client *mongo.Client

	users         *mongo.Collection
	campgrounds   *mongo.Collection
	webhookEvents *mongo.Collection
}

// New connects to the MongoDB server and initializes the collections and
// indexes. It returns an error if the connection cannot be established.
func New(url, database string) (*MongoStorage, error) {
	ms := &MongoStorage{}
	if url == "" {
		return nil, fmt.Errorf("mongo URL is not defined")
	}
	if database == "" {
		return nil, fmt.Errorf("mongo database is not defined")
	}
	log.Infow("connecting to mongodb", "url", url, "database", database)
	// preparing connection
	opts := options.Client()
	opts.ApplyURI(url)
	opts.SetMaxConnecting(200)
	timeout := defaultTimeout
	opts.ConnectTimeout = &timeout
	// create a new client with the connection options
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to mongodb: %w", err)
	}
	// check if the connection is successful
	ctx, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("cannot connect to mongodb: %w", err)
	}
	// init the collections
	ms.client = client
	ms.users = client.Database(database).Collection("users")
	ms.campgrounds = client.Database(database).Collection("campgrounds")
	ms.webhookEvents = client.Database(database).Collection("webhookEvents")
	if err := ms.createIndexes(); err != nil {
		return nil, err
	}
	return ms, nil
}

// Close disconnects the client from the MongoDB server.
func (ms *MongoStorage) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	if err := ms.client.Disconnect(ctx); err != nil {
		log.Warn(err)
	}
}

// Reset drops the collections and recreates the indexes.
func (ms *MongoStorage) Reset() error {
	log.Infof("resetting database")
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	for _, col := range []*mongo.Collection{ms.users, ms.campgrounds, ms.webhookEvents} {
		if err := col.Drop(ctx); err != nil {
			return err
		}
	}
	return ms.createIndexes()
}

func (ms *MongoStorage) createIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	// unique email index for user lookups by email
	if _, err := ms.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}
	// owned-campground references, used by the earnings positional update
	if _, err := ms.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "campgrounds.campground", Value: 1}},
	}); err != nil {
		return fmt.Errorf("failed to create campgrounds index: %w", err)
	}
	// campground owner lookups
	if _, err := ms.campgrounds.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}},
	}); err != nil {
		return fmt.Errorf("failed to create owner index: %w", err)
	}
	return nil
}
