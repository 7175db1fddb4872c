package cache

import "fmt"

// Keys shared by the services that fill the cache and the workers that invalidate it.

func RecommendationsKey(userID string) string {
	return fmt.Sprintf("recs:%s", userID)
}

func InsightsKey(userID string) string {
	return fmt.Sprintf("insights:%s", userID)
}

// UserKeys lists every cached entry derived from a user's profile or sessions.
func UserKeys(userID string) []string {
	return []string{RecommendationsKey(userID), InsightsKey(userID)}
}
