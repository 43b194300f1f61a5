package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophkms/internal/flagx"
	"github.com/dmitrijs2005/gophkms/internal/timex"
)

// JsonConfig is the on-disk layout of the CLI config file.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with the file given by -c/-config. Fields absent
// from the file keep their values. Read and decode errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFile()
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
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
