// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"supplyloader/internal/config"
	"supplyloader/internal/reconcile"
	"supplyloader/pkg/datamodel"
)

const (
	// OpGetSchema is the collector's schema introspection call.
	OpGetSchema = "GetSchema"
	// OpInitializeDatabase is the loader's -init call.
	OpInitializeDatabase = "InitializeDatabase"
	// OpLoadUnitTestData is the loader's -xunit call.
	OpLoadUnitTestData = "LoadUnitTestData"
	// OpLoadSamples is the loader's -samples call.
	OpLoadSamples = "LoadSamples"
)

// ErrPluginOperation is the sentinel error wrapped by PluginOperationError.
var ErrPluginOperation = errors.New("plugin operation failed")

// PluginOperationError is returned when a bound plugin's own call fails.
type PluginOperationError struct {
	Identifier string
	Op         string
	Err        error
}

// Error implements the error interface for PluginOperationError.
func (e *PluginOperationError) Error() string {
	return fmt.Sprintf("%s.%s failed: %v", e.Identifier, e.Op, e.Err)
}

// Unwrap returns ErrPluginOperation and the plugin's error.
func (e *PluginOperationError) Unwrap() []error {
	return []error{ErrPluginOperation, e.Err}
}

// dispatch binds the plugin pair and runs inv's mode. It returns the success
// summary line.
func (a *App) dispatch(ctx context.Context, inv *Invocation, cfg *config.Config, logger *slog.Logger) (string, error) {
	b, err := a.binder(cfg, logger)
	if err != nil {
		return "", err
	}
	pair, err := b.Bind(ctx, inv.Identifier)
	if err != nil {
		return "", err
	}
	if cache := b.Resolver().Cache(); cache.Len() > 0 {
		order, _ := b.Resolver().LoadOrder()
		logger.Debug("dependencies loaded", "cached", cache.Names(), "order", order)
	}

	container := datamodel.NewDataContainer(inv.Connection)
	timeout := cfg.Timeouts.Operation
	logger = logger.With("identifier", inv.Identifier, "mode", string(inv.Mode))

	switch inv.Mode {
	case ModeInit:
		err := runOp(ctx, inv.Identifier, OpInitializeDatabase, timeout, func(ctx context.Context) error {
			return pair.Loader.InitializeDatabase(ctx, container)
		})
		if err != nil {
			return "", err
		}
		return "initialized database via " + inv.Identifier, nil

	case ModeUnitTestData:
		err := runOp(ctx, inv.Identifier, OpLoadUnitTestData, timeout, func(ctx context.Context) error {
			return pair.Loader.LoadUnitTestData(ctx, container)
		})
		if err != nil {
			return "", err
		}
		return "loaded unit test data via " + inv.Identifier, nil

	case ModeSamples:
		var snapshot datamodel.SchemaSnapshot
		err := runOp(ctx, inv.Identifier, OpGetSchema, timeout, func(ctx context.Context) error {
			var err error
			snapshot, err = pair.Collector.GetSchema(ctx, container)
			return err
		})
		if err != nil {
			return "", err
		}
		logger.Debug("schema fetched", "collections", len(snapshot.Collections), "entities", len(snapshot.Entities))

		entities, err := reconcileEntities(container, inv, snapshot)
		if err != nil {
			return "", err
		}
		err = runOp(ctx, inv.Identifier, OpLoadSamples, timeout, func(ctx context.Context) error {
			return pair.Loader.LoadSamples(ctx, entities, inv.Count)
		})
		if err != nil {
			return "", err
		}
		names := make([]string, len(entities))
		for i, e := range entities {
			names[i] = e.Name
		}
		return fmt.Sprintf("loaded %d sample(s) into %s [%s]", inv.Count, inv.Collection, strings.Join(names, ", ")), nil

	default:
		return "", &UsageError{Reason: fmt.Sprintf("unknown mode %q", inv.Mode)}
	}
}

// reconcileEntities uses the single-entity form when exactly one entity is
// requested.
func reconcileEntities(container *datamodel.DataContainer, inv *Invocation, snapshot datamodel.SchemaSnapshot) ([]*datamodel.DataEntity, error) {
	if len(inv.Entities) == 1 {
		e, err := reconcile.ReconcileEntity(container, inv.Collection, inv.Entities[0], snapshot)
		if err != nil {
			return nil, err
		}
		return []*datamodel.DataEntity{e}, nil
	}
	return reconcile.Reconcile(container, inv.Collection, inv.Entities, snapshot)
}

// runOp calls fn with an optional deadline and wraps its failure as a
// PluginOperationError. A panic inside the plugin is reported as a failure
// of that operation.
func runOp(ctx context.Context, identifier, op string, timeout time.Duration, fn func(context.Context) error) (err error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			err = &PluginOperationError{Identifier: identifier, Op: op, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if err := fn(ctx); err != nil {
		return &PluginOperationError{Identifier: identifier, Op: op, Err: err}
	}
	return nil
}
