// Package test provides testing utilities for the backend service, including
// test containers for MongoDB and a local mail catcher.
package test

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// MongoPort is the MongoDB port exposed by the test container.
const MongoPort = "27017"

// StartMongoContainer starts a MongoDB container for testing. Use
// Endpoint(ctx, "mongodb") on the returned container to get a connection
// string.
func StartMongoContainer(ctx context.Context) (testcontainers.Container, error) {
	port := fmt.Sprintf("%s/tcp", MongoPort)
	return testcontainers.GenericContainer(ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "mongo:7",
				ExposedPorts: []string{port},
				WaitingFor:   wait.ForListeningPort(MongoPort),
			},
			Started: true,
		})
}

// RandomDatabaseName returns a random database name, so parallel test
// packages never collide on the same container.
func RandomDatabaseName() string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	name := make([]byte, 12)
	for i := range name {
		name[i] = letters[rand.Intn(len(letters))]
	}
	return "test_" + string(name)
}
