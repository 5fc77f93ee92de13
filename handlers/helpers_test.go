// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"testing"

	"github.com/juju/clock/testclock"

	"github.com/danielhkuo/labdesk/reconcile"
	"github.com/danielhkuo/labdesk/store"
	"github.com/danielhkuo/labdesk/testutil"
)

type testEnv struct {
	backend *store.Backend
	clock   *testclock.Clock
	svc     *reconcile.Service
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	backend, clk := testutil.SetupTestBackend(t)
	return &testEnv{
		backend: backend,
		clock:   clk,
		svc:     reconcile.New(clk, backend.Requests, backend.Equipment),
	}
}

func (e *testEnv) requestHandler() *RequestHandler {
	return NewRequestHandler(e.backend.Requests, e.svc, e.clock)
}
