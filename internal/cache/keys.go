package cache

import "strings"

const (
	GlobalKeyPrefix = "roadmap"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// SessionKey is where a quiz session is stored.
func SessionKey(sessionID string) string {
	return GenerateCacheKey("quiz", "session", sessionID)
}

// SubmitLockKey guards the single in-flight lead submission of a session.
func SubmitLockKey(sessionID string) string {
	return GenerateCacheKey("quiz", "session", sessionID, "submit")
}
