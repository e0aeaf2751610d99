// SPDX-License-Identifier: MIT

package polar

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sgostarter/i/l"

	"github.com/katalvlaran/propel/source/core"
)

// DefaultPayloadTTL is how long fetched files stay memoised.
const DefaultPayloadTTL = 10 * time.Minute

const (
	trainingSuffix    = "_training.json"
	coordinatesSuffix = "_coordinates.json"
)

// TrainingKey is the source key of the polar table of name.
func TrainingKey(name string) string { return name + "/" + name + trainingSuffix }

// CoordinatesKey is the source key of the coordinate file of name.
func CoordinatesKey(name string) string { return name + "/" + name + coordinatesSuffix }

// Loader fills a Store from a core.Source. Raw payloads are memoised so
// that several stores (e.g. 2-D and Mach builds) can share one fetch.
type Loader struct {
	src      core.Source
	payloads *cache.Cache
	logger   l.Wrapper
}

// NewLoader creates a loader over src. ttl <= 0 selects DefaultPayloadTTL.
func NewLoader(src core.Source, ttl time.Duration, logger l.Wrapper) *Loader {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}
	if ttl <= 0 {
		ttl = DefaultPayloadTTL
	}

	return &Loader{
		src:      src,
		payloads: cache.New(ttl, 2*ttl),
		logger:   logger.WithFields(l.StringField(l.ClsKey, "polar.Loader")),
	}
}

// Discover lists airfoil names that have a training file in the source.
func (ld *Loader) Discover(ctx context.Context) ([]string, error) {
	infos, err := ld.src.List(ctx, "")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, info := range infos {
		dir, file, ok := strings.Cut(info.Key, "/")
		if ok && file == dir+trainingSuffix {
			names = append(names, dir)
		}
	}

	return names, nil
}

// Load builds every named airfoil into store. A training failure is
// collected and the remaining airfoils are still built; a coordinate
// failure is only logged.
func (ld *Loader) Load(ctx context.Context, store *Store, names ...string) error {
	var errs []error
	for _, name := range names {
		if af, ok := store.Airfoil(name); ok && af.SurrogateBuilt {
			continue
		}
		if err := ld.loadTraining(ctx, store, name); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := ld.loadCoordinates(ctx, store, name); err != nil {
			ld.logger.WithFields(l.StringField("airfoil", name), l.ErrorField(err)).
				Warn("skipping coordinates capture")
		}
	}

	return errors.Join(errs...)
}

func (ld *Loader) loadTraining(ctx context.Context, store *Store, name string) error {
	body, err := ld.fetch(ctx, TrainingKey(name))
	if err != nil {
		return errors.Join(fmt.Errorf("fetch %s: %w", name, err), store.Register(name))
	}
	td, err := DecodeTraining(bytes.NewReader(body))
	if err != nil {
		return errors.Join(fmt.Errorf("decode %s: %w", name, err), store.Register(name))
	}

	return store.Build(name, td)
}

func (ld *Loader) loadCoordinates(ctx context.Context, store *Store, name string) error {
	body, err := ld.fetch(ctx, CoordinatesKey(name))
	if err != nil {
		return err
	}
	c, err := DecodeCoordinates(bytes.NewReader(body))
	if err != nil {
		return err
	}

	return store.AttachCoordinates(name, c)
}

func (ld *Loader) fetch(ctx context.Context, key string) ([]byte, error) {
	if v, ok := ld.payloads.Get(key); ok {
		return v.([]byte), nil
	}
	_, rc, err := ld.src.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	body, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	ld.payloads.Set(key, body, cache.DefaultExpiration)

	return body, nil
}
