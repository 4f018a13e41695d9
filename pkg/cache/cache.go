// Package cache provides a small byte cache used by the pose service to
// avoid recomputing forward kinematics for repeated angle vectors.
//
// Three backends are provided: [FileCache] for CLI and single-host use,
// [RedisCache] for shared deployments, and [NullCache] to disable caching.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache stores opaque byte values under string keys with an optional TTL.
// Implementations must treat a missing key as (nil, false, nil), not an
// error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Hash computes the SHA-256 hash of data as a 64-character hex string.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// PoseKey builds the cache key for a forward-kinematics result: the model
// identity (typically a hash of its document) plus the joint angles that
// produced the pose.
func PoseKey(modelHash string, angles []float64) string {
	payload, _ := json.Marshal(angles)
	return fmt.Sprintf("pose:%s:%s", modelHash, Hash(payload))
}

// ChainKey builds the cache key for a chain-extraction result.
func ChainKey(modelHash string, dofLimit, minJoints int) string {
	return fmt.Sprintf("chains:%s:%d:%d", modelHash, dofLimit, minJoints)
}
