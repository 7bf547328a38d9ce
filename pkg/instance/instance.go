package instance

import "github.com/angelmondragon/cardfinderz/pkg/env"

// GetID returns the process instance identifier used in startup logs.
func GetID() string {
	return env.FirstOf("local", "CARDFINDERZ_INSTANCE_ID", "DYNO", "HOSTNAME")
}
