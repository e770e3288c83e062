package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mlevkov/postman-exporter/internal/archive"
	"github.com/mlevkov/postman-exporter/internal/logging"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Archive a directory of exported Postman collections",
	Long: `Archive bundles a directory of exported collection files into a single
archive file named "{name}_{date}.{ext}" in the target directory.`,
	RunE: runArchive,
}

func init() {
	archiveCmd.Flags().StringP("path-to-collections", "c", "", "directory with collections being archived")
	archiveCmd.Flags().StringP("path-to-archive", "a", "", "directory the archive is created in")
	archiveCmd.Flags().StringP("name", "n", "", "base name of the archive being created")
	archiveCmd.Flags().String("archive-type", "zip", "archive format: zip, tar, or gztar")
	archiveCmd.Flags().String("log-path", "", "log file for this run")
	archiveCmd.MarkFlagRequired("path-to-collections")
	archiveCmd.MarkFlagRequired("path-to-archive")
	archiveCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(archiveCmd)
}

func runArchive(cmd *cobra.Command, args []string) error {
	collectionsPath, _ := cmd.Flags().GetString("path-to-collections")
	archivePath, _ := cmd.Flags().GetString("path-to-archive")
	name, _ := cmd.Flags().GetString("name")
	archiveType, _ := cmd.Flags().GetString("archive-type")

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

	format, err := archive.ParseFormat(archiveType)
	if err != nil {
		return fail(err)
	}

	if err := os.MkdirAll(archivePath, 0o755); err != nil {
		return fail(err)
	}

	stem := filepath.Join(archivePath, fmt.Sprintf("%s_%s", name, time.Now().Format("2006-01-02")))

	logger.Info().Str("collections", collectionsPath).Str("archive", stem+format.Extension()).Msg("archive started")

	created, err := archive.Create(collectionsPath, stem, format)
	if err != nil {
		logger.Error().Err(err).Msg("creating archive")
		return fail(err)
	}

	logger.Info().Str("archive", created).Msg("archive finished")
	color.Green("Archive '%s' has been created in '%s' directory.", filepath.Base(created), archivePath)
	return nil
}
