package redis

import "fmt"

// rosterKey returns the Redis key holding the JSON-encoded roster
func rosterKey(prefix string) string {
	return fmt.Sprintf("%s:players", prefix)
}

// auditKey returns the Redis key of the audit LIST
func auditKey(prefix string) string {
	return fmt.Sprintf("%s:audit", prefix)
}
