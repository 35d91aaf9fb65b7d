package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dchahine/chatline_backend/config"
	"github.com/dchahine/chatline_backend/models"
)

// MongoUserRepository stores profiles in the users collection.
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a user repository backed by MongoDB
func NewMongoUserRepository(client *mongo.Client) *MongoUserRepository {
	return &MongoUserRepository{
		collection: config.GetCollection(client, "users"),
	}
}

func (r *MongoUserRepository) Upsert(ctx context.Context, user models.User) (models.User, error) {
	now := time.Now()

	filter := bson.M{"phoneNumber": user.PhoneNumber}
	update := bson.M{
		"$set": bson.M{
			"name":        user.Name,
			"about":       user.About,
			"picturePath": user.PicturePath,
			"updatedAt":   now,
		},
		"$setOnInsert": bson.M{
			"phoneNumber": user.PhoneNumber,
			"createdAt":   now,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return models.User{}, err
	}
	return r.GetByPhone(ctx, user.PhoneNumber)
}

func (r *MongoUserRepository) Update(ctx context.Context, phone string, update models.ProfileUpdate) (models.User, error) {
	set := bson.M{"updatedAt": time.Now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.About != nil {
		set["about"] = *update.About
	}
	if update.PicturePath != nil {
		set["picturePath"] = *update.PicturePath
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"phoneNumber": phone}, bson.M{"$set": set})
	if err != nil {
		return models.User{}, err
	}
	if result.MatchedCount == 0 {
		return models.User{}, ErrUserNotFound
	}
	return r.GetByPhone(ctx, phone)
}

func (r *MongoUserRepository) GetByPhone(ctx context.Context, phone string) (models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"phoneNumber": phone}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
