package domain

import "context"

// ContingentKey is the shared secret of an official college delegation.
type ContingentKey struct {
	ID      string `bson:"_id" json:"id" yaml:"-"`
	ClgName string `bson:"clgName" json:"clgName" yaml:"clgName"`
	Key     string `bson:"key" json:"-" yaml:"key"`
}

// ContingentKeyRepository defines storage for contingent keys.
type ContingentKeyRepository interface {
	GetByKey(ctx context.Context, key string) (*ContingentKey, error)
	// Upsert inserts or replaces the key for ck.ClgName.
	Upsert(ctx context.Context, ck *ContingentKey) error
}
