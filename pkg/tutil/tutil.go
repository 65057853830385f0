package tutil

import (
	"os"
	"strings"
)

// IsIntegrationTest reports whether tests that reach real external services
// (GNews, MySQL) should run.
func IsIntegrationTest() bool {
	return strings.ToLower(os.Getenv("NEWSAPI_TEST")) == "integration"
}
