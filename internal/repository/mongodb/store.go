package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/showtrack/showtrack-go/internal/model"
	"github.com/showtrack/showtrack-go/internal/repository"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	usersCollection = "users"

	nameIndex  = "name_ci"
	emailIndex = "email_ci"
	tokenIndex = "accessToken_unique"
)

// insensitive compares base letters only: case and diacritics are ignored.
var insensitive = &options.Collation{Locale: "en", Strength: 1}

type userDocument struct {
	ID          bson.ObjectID  `bson:"_id,omitempty"`
	Name        string         `bson:"name"`
	Email       string         `bson:"email"`
	Password    string         `bson:"password"`
	AccessToken string         `bson:"accessToken"`
	Watchlist   []showDocument `bson:"watchlist"`
	CreatedAt   time.Time      `bson:"createdAt"`
}

type showDocument struct {
	Title  string `bson:"title"`
	ShowID string `bson:"showId"`
	Poster string `bson:"poster"`
}

// Connect opens a client for uri and verifies the primary is reachable.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return client, nil
}

// Store keeps each user, with its embedded watchlist, as one document of
// the users collection.
type Store struct {
	users *mongo.Collection
}

// NewStore creates a Store on db.
func NewStore(db *mongo.Database) *Store {
	return &Store{users: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique indexes the store relies on. Name and
// email indexes carry the insensitive collation; queries must use the same
// collation to hit them.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName(nameIndex).SetUnique(true).SetCollation(insensitive),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(emailIndex).SetUnique(true).SetCollation(insensitive),
		},
		{
			Keys:    bson.D{{Key: "accessToken", Value: 1}},
			Options: options.Index().SetName(tokenIndex).SetUnique(true),
		},
	})
	return err
}

// Create inserts user and sets its ID from the generated ObjectID.
func (s *Store) Create(ctx context.Context, user *model.User) error {
	doc := userDocument{
		Name:        user.Name,
		Email:       user.Email,
		Password:    user.PasswordHash,
		AccessToken: user.AccessToken,
		Watchlist:   []showDocument{},
		CreatedAt:   time.Now().UTC(),
	}

	res, err := s.users.InsertOne(ctx, doc)
	if err != nil {
		return classifyDuplicate(err)
	}

	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}

	user.ID = oid.Hex()
	user.CreatedAt = doc.CreatedAt
	user.Watchlist = []model.ShowEntry{}
	return nil
}

// GetByID retrieves a user by the hex form of its ObjectID.
func (s *Store) GetByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.findOne(ctx, bson.D{{Key: "_id", Value: oid}}, false)
}

// GetByName retrieves a user by name, ignoring case and accents.
func (s *Store) GetByName(ctx context.Context, name string) (*model.User, error) {
	return s.findOne(ctx, bson.D{{Key: "name", Value: name}}, true)
}

// GetByEmail retrieves a user by email, ignoring case and accents.
func (s *Store) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.findOne(ctx, bson.D{{Key: "email", Value: email}}, true)
}

// GetByAccessToken retrieves the user owning token, compared exactly.
func (s *Store) GetByAccessToken(ctx context.Context, token string) (*model.User, error) {
	return s.findOne(ctx, bson.D{{Key: "accessToken", Value: token}}, false)
}

// DeleteAll removes every user document.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.users.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// List returns the user's watchlist in stored order.
func (s *Store) List(ctx context.Context, userID string) ([]model.ShowEntry, error) {
	oid, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	opts := options.FindOne().SetProjection(bson.D{{Key: "watchlist", Value: 1}})

	var doc userDocument
	if err := s.users.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}
		return nil, err
	}

	return toEntries(doc.Watchlist), nil
}

// Append pushes entry onto the watchlist in a single conditional update, so
// concurrent appends of the same show cannot both succeed.
func (s *Store) Append(ctx context.Context, userID string, entry model.ShowEntry) error {
	oid, err := parseID(userID)
	if err != nil {
		return err
	}

	filter := bson.D{
		{Key: "_id", Value: oid},
		{Key: "watchlist.showId", Value: bson.D{{Key: "$ne", Value: string(entry.ShowID)}}},
	}
	update := bson.D{{Key: "$push", Value: bson.D{{Key: "watchlist", Value: showDocument{
		Title:  entry.Title,
		ShowID: string(entry.ShowID),
		Poster: entry.Poster,
	}}}}}

	res, err := s.users.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Nothing matched: either the user is gone or the show is already there.
	n, err := s.users.CountDocuments(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrUserNotFound
	}
	return repository.ErrDuplicateShow
}

// Remove pulls every entry for showID and returns the updated watchlist.
func (s *Store) Remove(ctx context.Context, userID string, showID model.ShowID) ([]model.ShowEntry, error) {
	oid, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	update := bson.D{{Key: "$pull", Value: bson.D{
		{Key: "watchlist", Value: bson.D{{Key: "showId", Value: string(showID)}}},
	}}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.D{{Key: "watchlist", Value: 1}})

	var doc userDocument
	err = s.users.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}
		return nil, err
	}

	return toEntries(doc.Watchlist), nil
}

func (s *Store) findOne(ctx context.Context, filter bson.D, caseInsensitive bool) (*model.User, error) {
	opts := options.FindOne()
	if caseInsensitive {
		opts.SetCollation(insensitive)
	}

	var doc userDocument
	if err := s.users.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}
		return nil, err
	}

	return doc.toModel(), nil
}

func (d userDocument) toModel() *model.User {
	return &model.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		AccessToken:  d.AccessToken,
		Watchlist:    toEntries(d.Watchlist),
		CreatedAt:    d.CreatedAt,
	}
}

func toEntries(docs []showDocument) []model.ShowEntry {
	entries := make([]model.ShowEntry, len(docs))
	for i, d := range docs {
		entries[i] = model.ShowEntry{Title: d.Title, ShowID: model.ShowID(d.ShowID), Poster: d.Poster}
	}
	return entries
}

// parseID maps a malformed id to ErrUserNotFound: no user can have it.
func parseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, repository.ErrUserNotFound
	}
	return oid, nil
}

// classifyDuplicate maps an E11000 error to the sentinel of the violated index.
func classifyDuplicate(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, emailIndex):
		return repository.ErrDuplicateEmail
	case strings.Contains(msg, nameIndex):
		return repository.ErrDuplicateName
	case strings.Contains(msg, tokenIndex):
		return repository.ErrDuplicateToken
	default:
		return err
	}
}
