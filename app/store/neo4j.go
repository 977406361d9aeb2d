package store

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

var _ KV = (*Neo4jKV)(nil)

// Neo4jKV stores each entry as an (:Entry {key, value}) node.
type Neo4jKV struct {
	driver neo4j.DriverWithContext
}

// NewNeo4j wraps an open driver and makes sure the key constraint exists.
// The KV owns the driver and closes it in Close.
func NewNeo4j(ctx context.Context, driver neo4j.DriverWithContext) (*Neo4jKV, error) {
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, err
	}
	s := &Neo4jKV{driver: driver}
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)
	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx,
			"CREATE CONSTRAINT entry_key IF NOT EXISTS FOR (e:Entry) REQUIRE e.key IS UNIQUE",
			nil,
		)
		return nil, err
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Neo4jKV) Get(ctx context.Context, key string) ([]byte, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (e:Entry {key: $key}) RETURN e.value AS value",
			map[string]any{"key": key},
		)
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			v, _ := res.Record().Get("value")
			str, _ := v.(string)
			return str, nil
		}
		return nil, res.Err()
	})
	if err != nil {
		return nil, err
	}
	value, ok := result.(string)
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(value), nil
}

func (s *Neo4jKV) Put(ctx context.Context, key string, value []byte) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx,
			"MERGE (e:Entry {key: $key}) SET e.value = $value",
			map[string]any{"key": key, "value": string(value)},
		)
		return nil, err
	})
	return err
}

func (s *Neo4jKV) Delete(ctx context.Context, key string) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx,
			"MATCH (e:Entry {key: $key}) DETACH DELETE e",
			map[string]any{"key": key},
		)
		return nil, err
	})
	return err
}

func (s *Neo4jKV) Close() error {
	return s.driver.Close(context.Background())
}
