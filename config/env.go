// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment overrides applied by ApplyEnv.
const (
	EnvSourceDriver  = "PROPEL_SOURCE_DRIVER"
	EnvSourceRoot    = "PROPEL_SOURCE_ROOT"
	EnvResultsDriver = "PROPEL_RESULTS_DRIVER"
	EnvResultsDSN    = "PROPEL_RESULTS_DSN"
	EnvServerAddr    = "PROPEL_SERVER_ADDR"
)

// LoadEnv loads variables from files into the process environment without
// overriding ones already set. With no files it reads ./.env and ignores
// its absence; named files must exist.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		err := godotenv.Load()
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return err
	}

	return godotenv.Load(files...)
}

// ApplyEnv copies non-empty PROPEL_* variables over the file values and
// validates the result.
func (c *Config) ApplyEnv() error {
	for _, o := range []struct {
		key string
		dst *string
	}{
		{EnvSourceDriver, &c.Source.Driver},
		{EnvSourceRoot, &c.Source.Root},
		{EnvResultsDriver, &c.Results.Driver},
		{EnvResultsDSN, &c.Results.DSN},
		{EnvServerAddr, &c.Server.Addr},
	} {
		if v := os.Getenv(o.key); v != "" {
			*o.dst = v
		}
	}

	return c.Validate()
}
