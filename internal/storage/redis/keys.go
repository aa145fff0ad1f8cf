package redis

import "fmt"

// Key prefix for all Metro data
const keyPrefix = "metro"

// gameKey returns the Redis key for a saved game
func gameKey(name string) string {
	return fmt.Sprintf("%s:save:%s", keyPrefix, name)
}

// gamesIndexKey returns the Redis key for the SET of saved game names
func gamesIndexKey() string {
	return fmt.Sprintf("%s:idx:saves", keyPrefix)
}
