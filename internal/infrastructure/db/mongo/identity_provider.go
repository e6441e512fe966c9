package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/consultia/expense-system/internal/core/domain"
	"github.com/consultia/expense-system/internal/core/ports"
)

const identityCollection = "identity_users"

// IdentityProvider implements ports.IdentityProvider on a MongoDB credential
// collection. It owns password hashing; nothing above this layer ever sees
// a hash. The _id is the opaque surrogate id carried in token claims, so
// email changes here never invalidate the principal's identity.
type IdentityProvider struct {
	coll *mongo.Collection
}

func NewIdentityProvider(db *mongo.Database) *IdentityProvider {
	return &IdentityProvider{coll: db.Collection(identityCollection)}
}

type identityDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Name         string             `bson:"name"`
	Role         string             `bson:"role"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (p *IdentityProvider) CreateUser(ctx context.Context, email, password, name, role string) (*ports.Identity, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC().Unix()
	doc := identityDoc{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := p.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert identity: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return &ports.Identity{ID: id.Hex(), Email: email, Name: name, Role: role}, nil
}

func (p *IdentityProvider) Authenticate(ctx context.Context, email, password string) (*ports.Identity, error) {
	var doc identityDoc
	if err := p.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find identity: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(doc.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return &ports.Identity{ID: doc.ID.Hex(), Email: doc.Email, Name: doc.Name, Role: doc.Role}, nil
}

func (p *IdentityProvider) UpdateEmail(ctx context.Context, oldEmail, newEmail string) error {
	count, err := p.coll.CountDocuments(ctx, bson.M{"email": newEmail})
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return domain.ErrEmailInUse
	}

	res, err := p.coll.UpdateOne(ctx,
		bson.M{"email": oldEmail},
		bson.M{"$set": bson.M{"email": newEmail, "updated_at": time.Now().UTC().Unix()}},
	)
	if err != nil {
		return fmt.Errorf("update email: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (p *IdentityProvider) UpdatePassword(ctx context.Context, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	res, err := p.coll.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"password_hash": string(hash), "updated_at": time.Now().UTC().Unix()}},
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates the unique email index on the credential collection.
func (p *IdentityProvider) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := p.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
