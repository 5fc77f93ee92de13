// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"time"

	"github.com/juju/errors"

	"github.com/danielhkuo/labdesk/idgen"
)

// numberAttempts bounds retries when a generated number collides.
const numberAttempts = 3

// createNumbered runs create with *number set. A number supplied by the
// client is used as is; otherwise a fresh one is generated per attempt.
func createNumbered(prefix string, now time.Time, number *string, create func() error) error {
	if *number != "" {
		return create()
	}
	var err error
	for i := 0; i < numberAttempts; i++ {
		if *number, err = idgen.Number(prefix, now); err != nil {
			return errors.Trace(err)
		}
		if err = create(); !errors.Is(err, errors.AlreadyExists) {
			return err
		}
	}
	return errors.Annotatef(err, "generating %s number", prefix)
}
