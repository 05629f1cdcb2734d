package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/tasktracker/internal/flagx"
	"github.com/dmitrijs2005/tasktracker/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "24h" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrGRPC      string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	DatabaseDriver        string         `json:"database_driver"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	S3RootUser            string         `json:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
	LogLevel              string         `json:"log_level"`
}

// parseJson overlays the JSON file named by -c / -config onto config.
// Keys missing from the file keep their current value. An unreadable file or
// invalid JSON panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.ConfigFilePath()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.TokenValidityDuration.Duration > 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogLevel, c.LogLevel)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
