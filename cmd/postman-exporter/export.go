package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mlevkov/postman-exporter/internal/export"
	"github.com/mlevkov/postman-exporter/internal/logging"
	"github.com/mlevkov/postman-exporter/internal/postman"
	"github.com/mlevkov/postman-exporter/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export Postman collections into JSON files at the specified path",
	Long: `Export resolves the given collection names to UIDs through the Postman API,
fetches each collection's content concurrently, and writes one JSON file per
collection into the target directory. A manifest of the run is written next
to the exported files.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("path", "p", "", "directory where exported collections will be written")
	exportCmd.Flags().StringArrayP("collection-names", "n", nil, "name of a Postman collection to export (repeatable)")
	exportCmd.Flags().StringP("api-key", "k", "", "Postman API key; overrides the POSTMAN_API_KEY environment variable")
	exportCmd.Flags().Duration("timeout", 0, "per-request timeout for content fetches (default 10s)")
	exportCmd.Flags().String("log-path", "", "log file for this run")
	exportCmd.MarkFlagRequired("path")
	exportCmd.MarkFlagRequired("collection-names")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("path")
	names, _ := cmd.Flags().GetStringArray("collection-names")
	apiKeyFlag, _ := cmd.Flags().GetString("api-key")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	logPath, _ := cmd.Flags().GetString("log-path")
	if logPath == "" {
		logPath = viper.GetString("logging.path")
	}
	logger, closeLog, err := logging.Setup(logging.Config{
		Level: viper.GetString("logging.level"),
		Path:  logPath,
	})
	if err != nil {
		return fail(err)
	}
	defer closeLog()

	if err := os.MkdirAll(path, 0o755); err != nil {
		return fail(err)
	}

	apiKey := resolveAPIKey(apiKeyFlag)
	client := postman.NewClient(&http.Client{}, types.HTTPConfig{
		Timeout:   timeout,
		UserAgent: defaultUserAgent,
	})
	ctx := cmd.Context()

	logger.Info().Strs("collections", names).Str("path", path).Msg("export started")

	uids, err := client.ResolveUIDs(ctx, names, apiKey)
	if err != nil {
		logger.Error().Err(err).Msg("resolving collection names")
		return fail(err)
	}
	logger.Info().Strs("uids", uids).Msg("collection names resolved")

	results, err := client.FetchCollections(ctx, uids, apiKey)
	if err != nil {
		logger.Error().Err(err).Msg("fetching collections")
		return fail(err)
	}

	manifest := export.Manifest{
		Date:  time.Now().Format("2006-01-02"),
		Names: names,
	}
	for r := range results {
		if r.Err != nil {
			logger.Error().Err(r.Err).Str("uid", r.UID).Msg("fetching collection")
			return fail(r.Err)
		}
		if err := export.WriteJSON(path, r.Filename, r.Content); err != nil {
			logger.Error().Err(err).Str("file", r.Filename).Msg("writing collection")
			return fail(err)
		}
		logger.Info().Str("uid", r.UID).Str("file", r.Filename).Msg("collection exported")
		manifest.Files = append(manifest.Files, export.ManifestFile{UID: r.UID, File: r.Filename})
	}

	if err := export.WriteManifest(path, manifest); err != nil {
		logger.Error().Err(err).Msg("writing manifest")
		return fail(err)
	}

	logger.Info().Int("exported", len(manifest.Files)).Msg("export finished")
	color.Green("Collections (%s) have been exported successfully.", strings.Join(names, ", "))
	return nil
}
