package cmd

import (
	"fmt"

	"github.com/news-assignment/newsapi/pkg/config"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the environment is ready to run the server",
	Long: `Check that the dotenv file exists and provides GNEWS_API_KEY, then print
where the documentation and health check will be served.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd, config.DotenvPath(dotenvPath))
	},
}

func runCheck(cmd *cobra.Command, path string) error {
	out := cmd.OutOrStdout()

	dotenv := config.NewDotenvConfig(path)
	if !dotenv.Exists() {
		fmt.Fprintf(out, "No dotenv file found at %s\n", path)
		fmt.Fprintln(out, "Please create it with your GNEWS_API_KEY")
		return fmt.Errorf("missing dotenv file %s", path)
	}

	if err := dotenv.Load(); err != nil {
		return fmt.Errorf("unable to load %s: %w", path, err)
	}

	if dotenv.GetKey("GNEWS_API_KEY") == "" {
		fmt.Fprintf(out, "GNEWS_API_KEY not found in %s\n", path)
		fmt.Fprintln(out, "The service will start but needs a valid API key to fetch news")
	} else {
		fmt.Fprintln(out, "Environment is properly configured")
	}

	port := dotenv.GetKeyWithDefault("PORT", "8000")
	fmt.Fprintln(out, "\nAPI Documentation is available at:")
	fmt.Fprintf(out, "   Swagger UI: http://localhost:%s/docs\n", port)
	fmt.Fprintf(out, "   ReDoc: http://localhost:%s/redoc\n", port)
	fmt.Fprintf(out, "   Health Check: http://localhost:%s/health\n", port)

	return nil
}
