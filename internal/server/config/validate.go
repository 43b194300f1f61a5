package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophkms/internal/server/blobs"
	"github.com/dmitrijs2005/gophkms/internal/server/kv"
)

// MinRSAKeyBits is the smallest resource key size the server will issue.
const MinRSAKeyBits = 2048

// Validate rejects settings the server cannot run with safely. A zero TTL
// would make the stores keep challenges and sessions forever.
func (c *Config) Validate() error {
	var errs []error

	ttls := []struct {
		name string
		v    time.Duration
	}{
		{"registration ttl", c.RegistrationTTL},
		{"login ttl", c.LoginTTL},
		{"session ttl", c.SessionTTL},
	}
	for _, t := range ttls {
		if t.v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", t.name, t.v))
		}
	}

	if c.RSAKeyBits < MinRSAKeyBits {
		errs = append(errs, fmt.Errorf("rsa key bits must be at least %d, got %d", MinRSAKeyBits, c.RSAKeyBits))
	}

	switch c.StoreDriver {
	case kv.DriverMemory, kv.DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.StoreDriver))
	}

	switch c.BlobDriver {
	case blobs.DriverMemory, blobs.DriverS3:
	default:
		errs = append(errs, fmt.Errorf("unknown blob driver %q", c.BlobDriver))
	}

	return errors.Join(errs...)
}
