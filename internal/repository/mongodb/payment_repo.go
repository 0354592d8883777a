package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"invento/internal/domain"
)

type paymentRepository struct {
	coll *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) domain.PaymentRepository {
	return &paymentRepository{coll: db.Collection(PaymentsCollection)}
}

func (r *paymentRepository) Exists(ctx context.Context, paymentID string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{{Key: "_id", Value: paymentID}}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *paymentRepository) Create(ctx context.Context, rec *domain.PaymentRecord) error {
	_, err := r.coll.InsertOne(ctx, rec)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrPaymentAlreadyConsumed
	}
	return err
}
