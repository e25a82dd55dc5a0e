package constants

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

const (
	keyIndexPath        = "index_path"
	keySheetPath        = "sheet_path"
	keyPort             = "port"
	keyLogLevel         = "log_level"
	keyMetadataEndpoint = "metadata_endpoint"
	keyMetadataRegion   = "metadata_region"
	keyMetadataTable    = "metadata_table"
	keySentryDSN        = "sentry_dsn"
)

var config = newConfig()

// Every key can also be set through the upper-cased environment variable, e.g. INDEX_PATH.
func newConfig() *viper.Viper {
	v := viper.New()
	v.SetDefault(keyIndexPath, "./out")
	v.SetDefault(keyPort, "8080")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyMetadataRegion, "localhost")
	v.SetDefault(keyMetadataTable, "chordsheet-metadata")
	v.AutomaticEnv()
	return v
}

// Load reads chordsheet.{yaml,toml,json} from dir if present. Environment variables
// still win over the file.
func Load(dir string) error {
	config.SetConfigName("chordsheet")
	config.AddConfigPath(dir)
	if err := config.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("could not read config: %w", err)
	}
	return nil
}

func Set(key string, value any) {
	config.Set(key, value)
}

func GetIndexDir() string {
	return config.GetString(keyIndexPath)
}

func GetSheetDir() (string, error) {
	path := config.GetString(keySheetPath)
	if path == "" {
		return "", errors.New("SHEET_PATH is not set")
	}
	return path, nil
}

func GetPort() string {
	return config.GetString(keyPort)
}

func GetLogLevel() string {
	return config.GetString(keyLogLevel)
}

func GetMetadataEndpoint() string {
	return config.GetString(keyMetadataEndpoint)
}

func GetMetadataRegion() string {
	return config.GetString(keyMetadataRegion)
}

func GetMetadataTable() string {
	return config.GetString(keyMetadataTable)
}

func GetSentryDSN() string {
	return config.GetString(keySentryDSN)
}

const (
	IndexPathKey = keyIndexPath
	SheetPathKey = keySheetPath
)

// 4 for file num, 4 for measure, 4 for beat in quarter beats
const OccurrenceSize = 12

const PreferredChunkSize = 64 * 1024 * 1024

const AllChunksFilename = "allChunks.dat"

const FileNumToNameFilename = "fileNumToName.dat"
