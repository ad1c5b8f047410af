package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tasko-app/tasko-api/internal/core/domain"
)

const collectionPending = "pending_registrations"

// PendingRepository implements ports.PendingRepository using MongoDB.
// The unique email index guarantees at most one live record per email.
type PendingRepository struct {
	col *mongo.Collection
}

func NewPendingRepository(db *mongo.Database) *PendingRepository {
	return &PendingRepository{col: db.Collection(collectionPending)}
}

func (r *PendingRepository) FindByEmail(ctx context.Context, email string) (*domain.PendingRegistration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.PendingRegistration
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoPendingRegistration
		}
		return nil, fmt.Errorf("find pending registration: %w", err)
	}
	return &p, nil
}

func (r *PendingRepository) FindByEmailAndOTP(ctx context.Context, email, otp string) (*domain.PendingRegistration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.PendingRegistration
	if err := r.col.FindOne(ctx, bson.M{"email": email, "otp": otp}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidCode
		}
		return nil, fmt.Errorf("find pending registration: %w", err)
	}
	return &p, nil
}

// Replace performs the supersede transition: the previous record for the
// email (if any) is dropped and p takes its place.
func (r *PendingRepository) Replace(ctx context.Context, p *domain.PendingRegistration) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"email": p.Email}); err != nil {
		return fmt.Errorf("supersede pending registration: %w", err)
	}
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert pending registration: %w", err)
	}
	return nil
}

func (r *PendingRepository) UpdateOTP(ctx context.Context, email, otp string, issuedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"otp": otp, "created_at": issuedAt.UTC()}},
	)
	if err != nil {
		return fmt.Errorf("update pending otp: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNoPendingRegistration
	}
	return nil
}

func (r *PendingRepository) Delete(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"email": email})
	if err != nil {
		return fmt.Errorf("delete pending registration: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique email index on pending registrations.
func (r *PendingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
