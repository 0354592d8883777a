package mongodb

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"invento/internal/domain"
)

type contingentKeyRepository struct {
	coll *mongo.Collection
}

func NewContingentKeyRepository(db *mongo.Database) domain.ContingentKeyRepository {
	return &contingentKeyRepository{coll: db.Collection(ContingentKeysCollection)}
}

func (r *contingentKeyRepository) GetByKey(ctx context.Context, key string) (*domain.ContingentKey, error) {
	ck := &domain.ContingentKey{}
	if err := r.coll.FindOne(ctx, bson.D{{Key: "key", Value: key}}).Decode(ck); err != nil {
		return nil, notFound(err)
	}
	return ck, nil
}

// Upsert keys contingents by college name; a new college gets a random document id.
func (r *contingentKeyRepository) Upsert(ctx context.Context, ck *domain.ContingentKey) error {
	update := bson.D{
		{Key: "$set", Value: bson.D{{Key: "key", Value: ck.Key}}},
		{Key: "$setOnInsert", Value: bson.D{{Key: "_id", Value: uuid.NewString()}}},
	}
	_, err := r.coll.UpdateOne(ctx, bson.D{{Key: "clgName", Value: ck.ClgName}}, update, options.UpdateOne().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrAlreadyExists
	}
	return err
}
