package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/felix3322/potplayer-translate-installer/internal/messages"
)

// EnvAPIKey is the environment variable consulted for the API key.
const EnvAPIKey = "OPENAI_API_KEY"

// ResolveAPIKey picks the API key from, in order: explicit, EnvAPIKey in
// envFile, then EnvAPIKey in the process environment. An empty result is not
// an error; the plugin can be configured later from the player.
func ResolveAPIKey(explicit string, envFile string) (string, error) {
	if key := strings.TrimSpace(explicit); key != "" {
		return key, nil
	}
	if strings.TrimSpace(envFile) != "" {
		env, err := godotenv.Read(envFile)
		if err != nil {
			return "", fmt.Errorf(messages.ConfigEnvFileReadFailedFmt, envFile, err)
		}
		if key := strings.TrimSpace(env[EnvAPIKey]); key != "" {
			return key, nil
		}
	}
	return strings.TrimSpace(os.Getenv(EnvAPIKey)), nil
}
