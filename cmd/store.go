package main

import (
	"context"

	"github.com/leadgrid/dealerxref/internal/store"
)

func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.New(ctx, store.Config{
		Driver:      cfg.Store.Driver,
		DatabaseURL: cfg.Store.DatabaseURL,
		SQLitePath:  cfg.Store.SQLitePath,
	})
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}
