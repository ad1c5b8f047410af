package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tasko-app/tasko-api/internal/core/domain"
)

const collectionResets = "password_resets"

// ResetRepository implements ports.ResetRepository using MongoDB. Used
// records stay around as history; only unused ones are live.
type ResetRepository struct {
	col *mongo.Collection
}

func NewResetRepository(db *mongo.Database) *ResetRepository {
	return &ResetRepository{col: db.Collection(collectionResets)}
}

func (r *ResetRepository) Create(ctx context.Context, reset *domain.PasswordReset) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, reset); err != nil {
		return fmt.Errorf("insert password reset: %w", err)
	}
	return nil
}

func (r *ResetRepository) FindUnused(ctx context.Context, email, otp string) (*domain.PasswordReset, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var reset domain.PasswordReset
	err := r.col.FindOne(ctx, bson.M{"email": email, "otp": otp, "used": false}).Decode(&reset)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidCode
		}
		return nil, fmt.Errorf("find password reset: %w", err)
	}
	return &reset, nil
}

func (r *ResetRepository) DeleteUnused(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"email": email, "used": false}); err != nil {
		return fmt.Errorf("delete unused password resets: %w", err)
	}
	return nil
}

func (r *ResetRepository) DeleteByOTP(ctx context.Context, email, otp string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"email": email, "otp": otp}); err != nil {
		return fmt.Errorf("delete password reset: %w", err)
	}
	return nil
}

func (r *ResetRepository) MarkAllUsed(ctx context.Context, email string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateMany(ctx,
		bson.M{"email": email, "used": false},
		bson.M{"$set": bson.M{"used": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("mark password resets used: %w", err)
	}
	return res.ModifiedCount, nil
}

// EnsureIndexes creates the lookup index used by FindUnused.
func (r *ResetRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}, {Key: "otp", Value: 1}, {Key: "used", Value: 1}},
	})
	return err
}
