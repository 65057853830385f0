package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/news-assignment/newsapi/pkg/config"
	"github.com/news-assignment/newsapi/pkg/gnews"
	"github.com/news-assignment/newsapi/pkg/news"
	"github.com/news-assignment/newsapi/pkg/newsapid/webapi"
	"github.com/news-assignment/newsapi/pkg/newsapid/webapi/apimiddleware"
	"github.com/news-assignment/newsapi/pkg/newscache"
	"github.com/news-assignment/newsapi/pkg/newsdb"
	"github.com/news-assignment/newsapi/pkg/newsdb/stor"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var dotenvPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "newsapid",
	Short: "Run the news API server",
	Long: `Run the news API server. It serves top headlines and article search from
GNews behind an in-memory cache, with interactive documentation at /docs.`,
	Run: func(cmd *cobra.Command, args []string) {
		c := loadConfig(cmd)
		if err := Run(cmd.Context(), c); err != nil {
			log.Fatalf("newsapid: %s", err)
		}
	},
}

// loadConfig loads the dotenv file into the environment and layers the
// command line flags on top of it.
func loadConfig(cmd *cobra.Command) config.Configer {
	config.LoadDotenv(config.DotenvPath(dotenvPath))

	c := config.NewViperConfig()
	for key, flag := range map[string]string{"HOST": "host", "PORT": "port", "LOG_LEVEL": "log-level"} {
		if err := c.BindFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			log.Fatalf("Unable to bind flag --%s: %s", flag, err)
		}
	}

	config.SetConfig(c)
	return c
}

func logLevel(c config.Configer) log.Level {
	if c.GetBoolKey("DEBUG") {
		return log.DebugLevel
	}

	level, err := log.ParseLevel(c.GetKeyWithDefault("LOG_LEVEL", "info"))
	if err != nil {
		log.Warnf("Invalid LOG_LEVEL %q, using info", c.GetKey("LOG_LEVEL"))
		return log.InfoLevel
	}

	return level
}

// Run builds the server from c and serves until ctx is cancelled or the
// process receives SIGINT/SIGTERM.
func Run(ctx context.Context, c config.Configer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logController := webapi.NewLogController(logLevel(c))

	gnewsClient := gnews.NewClient(
		c.GetKey("GNEWS_BASE_URL"),
		c.GetKey("GNEWS_API_KEY"),
		time.Duration(c.GetIntKeyWithDefault("GNEWS_TIMEOUT_SECONDS", int(gnews.DefaultTimeout/time.Second)))*time.Second)

	cache := newscache.New(
		c.GetIntKeyWithDefault("CACHE_MAX_ITEMS", newscache.DefaultMaxItems),
		time.Duration(c.GetIntKeyWithDefault("CACHE_TTL_SECONDS", int(newscache.DefaultTTL/time.Second)))*time.Second)

	var articleStor stor.ArticleStor
	if driver := c.GetKey("ARCHIVE_DB_DRIVER"); driver != "" {
		db, err := newsdb.ConnectToDB(driver, c.GetKey("ARCHIVE_DB_DSN"))
		if err != nil {
			return err
		}
		articleStor = stor.NewGormStors(db).ArticleStor
		log.Infof("Archiving articles to %s db", driver)
	}

	newsService := news.NewService(news.ServiceOpts{
		API:     gnewsClient,
		Cache:   cache,
		Archive: articleStor,
	})

	var adminKeyHash []byte
	if adminKey := c.GetKey("NEWSAPI_ADMIN_KEY"); adminKey != "" {
		var err error
		if adminKeyHash, err = apimiddleware.HashAdminKey(adminKey); err != nil {
			return err
		}
	}

	e := newServer(RouteDependencies{
		newsService:   newsService,
		articleStor:   articleStor,
		logController: logController,
		adminKeyHash:  adminKeyHash,
		author:        c.GetKey("NEWSAPI_AUTHOR"),
	})

	port := c.GetKeyWithDefault("PORT", "8000")
	addr := net.JoinHostPort(c.GetKeyWithDefault("HOST", "0.0.0.0"), port)
	certFile, keyFile := c.GetKey("TLS_CERT_FILE"), c.GetKey("TLS_KEY_FILE")

	scheme := "http"
	if certFile != "" && keyFile != "" {
		scheme = "https"
	}

	log.Infof("Starting News API Service on %s", addr)
	log.Infof("Swagger UI: %s://localhost:%s/docs", scheme, port)
	log.Infof("ReDoc: %s://localhost:%s/redoc", scheme, port)
	log.Infof("Health Check: %s://localhost:%s/health", scheme, port)

	serverErr := make(chan error, 1)
	go func() {
		var err error
		if scheme == "https" {
			err = e.StartTLS(addr, certFile, keyFile)
		} else {
			err = e.Start(addr)
		}
		serverErr <- err
	}()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Infof("Shutting down News API Service...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return e.Shutdown(shutdownCtx)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dotenvPath, "dotenv", "", "dotenv file to load (default is $NEWSAPI_DOTENV_PATH or .env)")

	rootCmd.Flags().String("host", "0.0.0.0", "Address to listen on")
	rootCmd.Flags().String("port", "8000", "Port to listen on")
	rootCmd.Flags().String("log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(checkCmd)
}
