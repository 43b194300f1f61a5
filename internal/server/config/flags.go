package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophkms/internal/flagx"
)

// parseFlags overlays config with command-line flags.
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-s string   store driver: memory | postgres
//	-d string   PostgreSQL DSN
//	-t int      session TTL, minutes
//	-m string   SMTP host (empty: log codes instead of mailing)
//	-o string   blob driver: memory | s3
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-l string   log level: debug | info | warn | error
//
// Only these flags are looked at, so -c/-config and unknown flags do not
// break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-d", "-t", "-m", "-o", "-u", "-p", "-b", "-g", "-e", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.StoreDriver, "s", config.StoreDriver, "store driver (memory|postgres)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")

	sessionTTL := fs.Int("t", 0, "session TTL (in minutes)")

	fs.StringVar(&config.SMTPHost, "m", config.SMTPHost, "SMTP host")
	fs.StringVar(&config.BlobDriver, "o", config.BlobDriver, "blob driver (memory|s3)")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t applies only when given.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.SessionTTL = time.Duration(*sessionTTL) * time.Minute
		}
	})
}
