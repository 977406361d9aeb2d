package config

import (
	"context"
	"fmt"

	"taskboard/app/store"
)

// OpenStore builds the key-value backend selected by c.Store.
func OpenStore(ctx context.Context, c Config) (store.KV, error) {
	switch c.Store {
	case StoreMemory:
		return store.NewMemory(), nil
	case StoreFile:
		kv, err := store.NewFile(c.DataDir)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case StoreMySQL, StorePostgres:
		kv, err := store.NewSQL(ctx, c.Store, c.SQLDSN)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case StoreNeo4j:
		driver, err := InitNeo4j(c.Neo4j)
		if err != nil {
			return nil, err
		}
		kv, err := store.NewNeo4j(ctx, driver)
		if err != nil {
			driver.Close(ctx)
			return nil, err
		}
		return kv, nil
	}
	return nil, fmt.Errorf("unknown store %q", c.Store)
}
