package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/flagx"
	"github.com/dmitrijs2005/tasktracker/internal/timex"
)

// JsonConfig is the on-disk shape of the CLI config file.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
}

// parseJson overlays cfg with the file named by -c/-config. Missing keys keep
// the current values. Read and decode errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFilePath()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	}
}
