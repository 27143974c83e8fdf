package cmd

import (
	"fmt"

	"plume/internal/apihandlers"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	serveAddr string
	servePort string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run Plume as an HTTP API server",
	Long: `Starts an HTTP server exposing the content-intelligence endpoints
(category recommendation, auto-tagging, SEO recommendation and validation)
to the blog's backend.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		router := gin.Default() // Includes logger and recovery middleware
		apihandlers.RegisterRoutes(router, appInstance)

		listenAddr := fmt.Sprintf("%s:%s", serveAddr, servePort)
		log.Infof("Starting Plume API server on http://%s", listenAddr)

		// router.Run blocks unless an error occurs
		if err := router.Run(listenAddr); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	},
}

func registerServeFlags(fs *pflag.FlagSet) {
	fs.StringVar(&serveAddr, "addr", "127.0.0.1", "Address to listen on")
	fs.StringVar(&servePort, "port", "8765", "Port to listen on")
}

func init() {
	rootCmd.AddCommand(serveCmd)
	registerServeFlags(serveCmd.Flags())
}
