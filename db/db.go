package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collections groups every handle the service owns. It is built once in
// main and injected into the stores; nothing holds package-level
// collection state.
type Collections struct {
	Users         *mongo.Collection
	Camps         *mongo.Collection
	Registrations *mongo.Collection
	Reviews       *mongo.Collection
	Payments      *mongo.Collection
	Subscribers   *mongo.Collection
	Messages      *mongo.Collection
}

func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *Collections, error) {
	opts := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, err
	}

	database := client.Database(dbName)
	colls := &Collections{
		Users:         database.Collection("users"),
		Camps:         database.Collection("camps"),
		Registrations: database.Collection("registeredCamps"),
		Reviews:       database.Collection("reviews"),
		Payments:      database.Collection("payments"),
		Subscribers:   database.Collection("subscribers"),
		Messages:      database.Collection("messages"),
	}
	return client, colls, nil
}
