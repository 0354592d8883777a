package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"invento/internal/domain"
)

type adminRepository struct {
	coll *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) domain.AdminRepository {
	return &adminRepository{coll: db.Collection(AdminsCollection)}
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	a := &domain.Admin{}
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: email}}).Decode(a); err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (r *adminRepository) Upsert(ctx context.Context, a *domain.Admin) error {
	_, err := r.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: a.Email}}, a, options.Replace().SetUpsert(true))
	return err
}
