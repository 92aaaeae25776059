// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go"
)

// RequireContainers skips t in short mode or when no container provider can
// be reached.
func RequireContainers(t testing.TB) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	if !containersAvailable() {
		t.Skip("skipping container test: testcontainers provider not available")
	}
}

// containersAvailable probes the Docker provider. GetProvider may panic when
// no daemon socket exists.
func containersAvailable() (available bool) {
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	provider, err := testcontainers.ProviderDocker.GetProvider()
	if err != nil {
		return false
	}
	defer provider.Close()
	return true
}

// StartContainer starts req, registers its termination with t.Cleanup and
// returns host:port for the first exposed port. Startups are serialized
// through ContainerSemaphore.
func StartContainer(t testing.TB, req testcontainers.ContainerRequest) (testcontainers.Container, string) {
	t.Helper()
	RequireContainers(t)
	if len(req.ExposedPorts) == 0 {
		t.Fatal("container request exposes no ports")
	}

	sem := ContainerSemaphore()
	sem <- struct{}{}
	defer func() { <-sem }()

	ctx := context.Background()
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if c != nil {
		t.Cleanup(func() {
			if err := c.Terminate(context.Background()); err != nil {
				t.Logf("warning: terminate %s: %v", req.Image, err)
			}
		})
	}
	if err != nil {
		t.Fatalf("start %s: %v", req.Image, err)
	}

	endpoint, err := c.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("endpoint of %s: %v", req.Image, err)
	}
	return c, endpoint
}
