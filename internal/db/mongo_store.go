package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const usersCollection = "users"

// userDocument is the BSON shape of a user. Field names match the
// documents written by earlier deployments of the service, which may lack
// profilePicture and createdAt or carry a null name.
type userDocument struct {
	ID             bson.ObjectID `bson:"_id,omitempty"`
	Name           string        `bson:"name"`
	Phone          string        `bson:"phone"`
	Email          string        `bson:"email"`
	Password       string        `bson:"password,omitempty"`
	ProfilePicture string        `bson:"profilePicture"`
	CreatedAt      time.Time     `bson:"createdAt"`
}

func toDocument(u *User) userDocument {
	return userDocument{
		Name:           u.Name,
		Phone:          u.Phone,
		Email:          u.Email,
		Password:       u.PasswordHash,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt,
	}
}

func (d userDocument) toUser() *User {
	u := &User{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		Phone:          d.Phone,
		Email:          d.Email,
		PasswordHash:   d.Password,
		ProfilePicture: d.ProfilePicture,
		CreatedAt:      d.CreatedAt,
	}
	if u.ProfilePicture == "" {
		u.ProfilePicture = DefaultProfilePicture
	}
	return u
}

// userCollection is the part of *mongo.Collection the store reads and writes
// through.
type userCollection interface {
	InsertOne(ctx context.Context, document any, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
}

type MongoUserStore struct {
	client *mongo.Client
	users  userCollection
}

var _ UserStore = (*MongoUserStore)(nil)

// NewMongoUserStore connects to uri, verifies the connection and makes sure
// the unique email index exists.
func NewMongoUserStore(ctx context.Context, uri, database string) (*MongoUserStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	users := client.Database(database).Collection(usersCollection)
	if err := ensureIndexes(ctx, users); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return &MongoUserStore{client: client, users: users}, nil
}

func ensureIndexes(ctx context.Context, users *mongo.Collection) error {
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uq_users_email"),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

func (s *MongoUserStore) Insert(ctx context.Context, u *User) (*User, error) {
	doc := toDocument(u)
	doc.ID = bson.NewObjectID()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}

	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, u.Email)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.toUser(), nil
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	var doc userDocument
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return doc.toUser(), nil
}

func (s *MongoUserStore) FindByID(ctx context.Context, id string) (*User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	var doc userDocument
	opts := options.FindOne().SetProjection(bson.M{"password": 0})
	err = s.users.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return doc.toUser(), nil
}

func (s *MongoUserStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoUserStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
