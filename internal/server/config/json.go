package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophkms/internal/flagx"
	"github.com/dmitrijs2005/gophkms/internal/timex"
)

// JsonConfig is the JSON file layout. Durations accept "10m" or integer
// nanoseconds. Absent or zero fields leave the current value alone.
type JsonConfig struct {
	EndpointAddrGRPC string         `json:"endpoint_addr_grpc"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	StoreDriver      string         `json:"store_driver"`
	DatabaseDSN      string         `json:"database_dsn"`
	PurgeInterval    timex.Duration `json:"purge_interval"`
	RegistrationTTL  timex.Duration `json:"registration_ttl"`
	LoginTTL         timex.Duration `json:"login_ttl"`
	SessionTTL       timex.Duration `json:"session_ttl"`
	RSAKeyBits       int            `json:"rsa_key_bits"`
	Argon2Time       uint32         `json:"argon2_time"`
	Argon2MemoryKB   uint32         `json:"argon2_memory_kb"`
	Argon2Threads    uint8          `json:"argon2_threads"`
	SMTPHost         string         `json:"smtp_host"`
	SMTPPort         int            `json:"smtp_port"`
	SMTPUser         string         `json:"smtp_user"`
	SMTPPassword     string         `json:"smtp_password"`
	SMTPSender       string         `json:"smtp_sender"`
	BlobDriver       string         `json:"blob_driver"`
	S3RootUser       string         `json:"s3_root_user"`
	S3RootPassword   string         `json:"s3_root_password"`
	S3Bucket         string         `json:"s3_bucket"`
	S3Region         string         `json:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
	LogLevel         string         `json:"log_level"`
	LogFormat        string         `json:"log_format"`
}

func setIf[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

// parseJson overlays config with the file named by -c/-config, if any.
// It panics if the file cannot be read or parsed.
func parseJson(config *Config) {

	jsonConfigFile := flagx.ConfigFile()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setIf(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setIf(&config.RequestTimeout, c.RequestTimeout.Duration)
	setIf(&config.StoreDriver, c.StoreDriver)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.PurgeInterval, c.PurgeInterval.Duration)
	setIf(&config.RegistrationTTL, c.RegistrationTTL.Duration)
	setIf(&config.LoginTTL, c.LoginTTL.Duration)
	setIf(&config.SessionTTL, c.SessionTTL.Duration)
	setIf(&config.RSAKeyBits, c.RSAKeyBits)
	setIf(&config.Argon2Time, c.Argon2Time)
	setIf(&config.Argon2MemoryKB, c.Argon2MemoryKB)
	setIf(&config.Argon2Threads, c.Argon2Threads)
	setIf(&config.SMTPHost, c.SMTPHost)
	setIf(&config.SMTPPort, c.SMTPPort)
	setIf(&config.SMTPUser, c.SMTPUser)
	setIf(&config.SMTPPassword, c.SMTPPassword)
	setIf(&config.SMTPSender, c.SMTPSender)
	setIf(&config.BlobDriver, c.BlobDriver)
	setIf(&config.S3RootUser, c.S3RootUser)
	setIf(&config.S3RootPassword, c.S3RootPassword)
	setIf(&config.S3Bucket, c.S3Bucket)
	setIf(&config.S3Region, c.S3Region)
	setIf(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setIf(&config.LogLevel, c.LogLevel)
	setIf(&config.LogFormat, c.LogFormat)
}
