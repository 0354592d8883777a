package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"invento/internal/domain"
)

const userSequence = "userId"

type userRepository struct {
	users    *mongo.Collection
	counters *mongo.Collection
	now      func() time.Time
}

func NewUserRepository(db *mongo.Database) domain.UserRepository {
	return &userRepository{
		users:    db.Collection(UsersCollection),
		counters: db.Collection(CountersCollection),
		now:      time.Now,
	}
}

// Create allocates the next inventoId and inserts u. A taken email yields domain.ErrAlreadyExists;
// the consumed sequence number is not reused.
func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	seq, err := r.nextSequence(ctx, userSequence)
	if err != nil {
		return fmt.Errorf("allocate user id: %w", err)
	}
	u.ID = fmt.Sprintf("inv%05d", seq)
	if u.RegisteredEvents == nil {
		u.RegisteredEvents = []string{}
	}
	if _, err := r.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *userRepository) nextSequence(ctx context.Context, name string) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := r.counters.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: name}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: 1}}}},
		opts,
	).Decode(&doc)
	return doc.Seq, err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.D) (*domain.User, error) {
	u := &domain.User{}
	if err := r.users.FindOne(ctx, filter).Decode(u); err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	cur, err := r.users.Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
	if err != nil {
		return nil, err
	}
	var users []*domain.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) RecordRegistration(ctx context.Context, ids []string, update domain.UserRegistrationUpdate) error {
	byIDs := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}
	set := bson.D{{Key: "updatedAt", Value: r.now()}}
	if update.Paid {
		set = append(set, bson.E{Key: "payment", Value: true})
	}
	if update.Official {
		set = append(set, bson.E{Key: "passType", Value: domain.PassOfficial})
	}
	_, err := r.users.UpdateMany(ctx, byIDs, bson.D{
		{Key: "$addToSet", Value: bson.D{{Key: "registeredEvents", Value: update.EventName}}},
		{Key: "$set", Value: set},
	})
	if err != nil || update.Official {
		return err
	}

	// Upgrade passless users without downgrading official passes.
	withoutPass := append(byIDs, bson.E{Key: "passType", Value: bson.D{{Key: "$in", Value: bson.A{domain.PassNone, ""}}}})
	_, err = r.users.UpdateMany(ctx, withoutPass, bson.D{
		{Key: "$set", Value: bson.D{{Key: "passType", Value: domain.PassGeneral}}},
	})
	return err
}
