package db

import (
	"context"

	"github.com/opencamp-hq/backend/internal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (ms *MongoStorage) fetchUserFromDB(ctx context.Context, id internal.ObjectID) (*User, error) {
	result := ms.users.FindOne(ctx, bson.M{"_id": id})
	user := &User{}
	if err := result.Decode(user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// User method returns the user with the given ID. If the user doesn't exist,
// it returns ErrNotFound.
func (ms *MongoStorage) User(id internal.ObjectID) (*User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return ms.fetchUserFromDB(ctx, id)
}

// UserByEmail method returns the user with the given email. If the user
// doesn't exist, it returns ErrNotFound.
func (ms *MongoStorage) UserByEmail(email string) (*User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	result := ms.users.FindOne(ctx, bson.M{"email": email})
	user := &User{}
	if err := result.Decode(user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// SetUser method creates or updates the user in the database. New users get
// an ObjectID assigned if they don't carry one.
func (ms *MongoStorage) SetUser(user *User) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if user.ID.IsZero() {
		user.ID = internal.NewObjectID()
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := ms.users.ReplaceOne(ctx, bson.M{"_id": user.ID}, user, opts); err != nil {
		return err
	}
	return nil
}

// SetUserPremium flips the premium-subscribed flag of the user with the given
// email. It returns ErrNotFound if no user matches.
func (ms *MongoStorage) SetUserPremium(email string, subscribed bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	updateDoc := bson.M{"$set": bson.M{"premium": Premium{Subscribed: subscribed}}}
	result, err := ms.users.UpdateOne(ctx, bson.M{"email": email}, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddTrip appends the trip to the user's trip list.
func (ms *MongoStorage) AddTrip(userID internal.ObjectID, trip *Trip) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	updateDoc := bson.M{"$push": bson.M{"trips": trip}}
	result, err := ms.users.UpdateOne(ctx, bson.M{"_id": userID}, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DelTrip removes the trip with the given ID from the user's trip list.
// Selection is by trip ID only, so a user with several trips at the same
// campground always gets an unambiguous match.
func (ms *MongoStorage) DelTrip(userID, tripID internal.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	updateDoc := bson.M{"$pull": bson.M{"trips": bson.M{"_id": tripID}}}
	result, err := ms.users.UpdateOne(ctx, bson.M{"_id": userID}, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddNotification appends the notification to the owner's notification list.
func (ms *MongoStorage) AddNotification(ownerID internal.ObjectID, notification *Notification) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	updateDoc := bson.M{"$push": bson.M{"notifications": notification}}
	result, err := ms.users.UpdateOne(ctx, bson.M{"_id": ownerID}, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
