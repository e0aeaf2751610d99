// Package source selects a training-data backend. Concrete backends live in
// the fs, memory and s3 subpackages; shared types live in core.
package source

import (
	"context"
	"fmt"
	"os"

	"github.com/katalvlaran/propel/source/core"
	"github.com/katalvlaran/propel/source/fs"
	"github.com/katalvlaran/propel/source/memory"
	"github.com/katalvlaran/propel/source/s3"
)

// Open selects a core.Source using environment variables.
//
//	PROPEL_SOURCE_DRIVER: fs|s3|memory (default fs)
//	PROPEL_SOURCE_ROOT:   directory root when driver=fs (default ./polars)
//	(S3 specific variables are documented in the s3 package)
func Open(ctx context.Context) (core.Source, error) {
	return OpenDriver(ctx, core.Driver(os.Getenv("PROPEL_SOURCE_DRIVER")), os.Getenv("PROPEL_SOURCE_ROOT"))
}

// OpenDriver opens an explicit driver; root is used by the fs driver only.
func OpenDriver(ctx context.Context, driver core.Driver, root string) (core.Source, error) {
	if driver == "" {
		driver = core.DriverFilesystem
	}
	switch driver {
	case core.DriverFilesystem:
		return fs.New(root)
	case core.DriverS3:
		return s3.OpenFromEnv(ctx)
	case core.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown source driver %q: %w", driver, core.ErrUnsupported)
	}
}
