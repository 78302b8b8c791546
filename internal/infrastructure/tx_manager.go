package infrastructure

import (
	"context"

	appErrors "Finboard/internal/errors"

	"gorm.io/gorm"
)

type txKey struct{}

// TxManager runs a function inside a gorm transaction carried on the context.
type TxManager struct {
	DB *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{DB: db}
}

func (m *TxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
	if err == nil {
		return nil
	}
	if _, ok := appErrors.AsAppError(err); ok {
		return err
	}
	return appErrors.NewDatabaseError(err)
}

// conn returns the transaction on ctx, or db bound to ctx when there is none.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
