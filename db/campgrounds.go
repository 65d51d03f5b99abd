package db

import (
	"context"

	"github.com/opencamp-hq/backend/internal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Campground method returns the campground with the given ID. If it doesn't
// exist, it returns ErrNotFound.
func (ms *MongoStorage) Campground(id internal.ObjectID) (*Campground, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	result := ms.campgrounds.FindOne(ctx, bson.M{"_id": id})
	campground := &Campground{}
	if err := result.Decode(campground); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return campground, nil
}

// SetCampground creates or updates the campground in the database.
func (ms *MongoStorage) SetCampground(campground *Campground) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if campground.ID.IsZero() {
		campground.ID = internal.NewObjectID()
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := ms.campgrounds.ReplaceOne(ctx, bson.M{"_id": campground.ID}, campground, opts); err != nil {
		return err
	}
	return nil
}

// AddCampgroundEarnings increments the earnings accumulator the owning user
// keeps for the given campground. A negative delta reverses earnings on
// cancellation. It returns ErrNotFound if no user owns the campground.
func (ms *MongoStorage) AddCampgroundEarnings(campgroundID internal.ObjectID, delta float64) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	filter := bson.M{"campgrounds.campground": campgroundID}
	updateDoc := bson.M{"$inc": bson.M{"campgrounds.$.earnings": delta}}
	result, err := ms.users.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CampgroundEarnings returns the current earnings accumulator the owning
// user keeps for the given campground.
func (ms *MongoStorage) CampgroundEarnings(campgroundID internal.ObjectID) (float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	result := ms.users.FindOne(ctx, bson.M{"campgrounds.campground": campgroundID})
	user := &User{}
	if err := result.Decode(user); err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, ErrNotFound
		}
		return 0, err
	}
	for _, owned := range user.Campgrounds {
		if owned.Campground == campgroundID {
			return owned.Earnings, nil
		}
	}
	return 0, ErrNotFound
}
