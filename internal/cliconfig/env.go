package cliconfig

import "os"

// Environment variable names
const (
	EnvAPIURL  = "GARAGECTL_API_URL"
	EnvToken   = "GARAGECTL_TOKEN"
	EnvContext = "GARAGECTL_CONTEXT"
)

// GetAPIURLFromEnv returns GARAGECTL_API_URL, or empty if unset.
func GetAPIURLFromEnv() string {
	return os.Getenv(EnvAPIURL)
}

// GetTokenFromEnv returns GARAGECTL_TOKEN, or empty if unset.
func GetTokenFromEnv() string {
	return os.Getenv(EnvToken)
}

// GetContextFromEnv returns GARAGECTL_CONTEXT, or empty if unset.
func GetContextFromEnv() string {
	return os.Getenv(EnvContext)
}
