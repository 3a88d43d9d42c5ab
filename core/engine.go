/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package core

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// Engine is anything that can be registered with the System. Its capabilities are discovered through the
// optional interfaces below.
type Engine interface{}

// Named is implemented by engines that have a name, which is also their config key.
type Named interface {
	Name() string
}

// Injectable engines receive their part of the loaded configuration.
type Injectable interface {
	Named
	// Config returns a pointer to the struct the engine's configuration is unmarshalled into.
	Config() interface{}
}

// Configurable engines are configured once, after config injection and before Start.
type Configurable interface {
	Configure(config ServerConfig) error
}

// Runnable engines are started in registration order and shut down in reverse order.
type Runnable interface {
	Start() error
	Shutdown() error
}

// Diagnosable engines contribute to the status/diagnostics endpoint.
type Diagnosable interface {
	Diagnostics() []DiagnosticResult
}

// ViewableDiagnostics groups Named and Diagnosable, used for rendering diagnostics per engine.
type ViewableDiagnostics interface {
	Named
	Diagnosable
}

// Routable engines or API wrappers register HTTP routes on the echo server.
type Routable interface {
	Routes(router EchoRouter)
}

// System holds the registered engines, the server config and the API routers.
type System struct {
	engines []Engine
	// Config holds the server config, including the raw config map engine configs are injected from.
	Config *ServerConfig
	// Routers are registered on the echo server when the HTTP interface starts.
	Routers []Routable
	// EchoCreator creates the echo server. Tests replace it.
	EchoCreator func(cfg HTTPConfig) (EchoServer, error)
}

// NewSystem creates a System without engines.
func NewSystem() *System {
	return &System{
		engines: []Engine{},
		Config:  NewServerConfig(),
		Routers: []Routable{},
		EchoCreator: func(cfg HTTPConfig) (EchoServer, error) {
			return createEchoServer(cfg)
		},
	}
}

// RegisterEngine adds an engine. Registration order determines the order of Configure and Start.
func (system *System) RegisterEngine(engine Engine) {
	system.engines = append(system.engines, engine)
}

// RegisterRoutes adds an API router.
func (system *System) RegisterRoutes(router Routable) {
	system.Routers = append(system.Routers, router)
}

// Load loads the server config from the given flags, config file and environment and injects it into the engines.
func (system *System) Load(flags *pflag.FlagSet) error {
	if err := system.Config.Load(flags); err != nil {
		return err
	}
	return system.VisitEnginesE(func(engine Engine) error {
		injectable, ok := engine.(Injectable)
		if !ok {
			return nil
		}
		return system.Config.InjectIntoEngine(injectable)
	})
}

// Configure creates the data directory and configures all Configurable engines.
func (system *System) Configure() error {
	if err := os.MkdirAll(system.Config.Datadir, os.ModePerm); err != nil {
		return fmt.Errorf("unable to create datadir (dir=%s): %w", system.Config.Datadir, err)
	}
	return system.VisitEnginesE(func(engine Engine) error {
		configurable, ok := engine.(Configurable)
		if !ok {
			return nil
		}
		if err := configurable.Configure(*system.Config); err != nil {
			return fmt.Errorf("unable to configure %s: %w", engineName(engine), err)
		}
		return nil
	})
}

// Start starts all Runnable engines. When an engine fails to start, the engines started before it are shut down.
func (system *System) Start() error {
	var started []Runnable
	for _, engine := range system.engines {
		runnable, ok := engine.(Runnable)
		if !ok {
			continue
		}
		if err := runnable.Start(); err != nil {
			for i := len(started) - 1; i >= 0; i-- {
				if shutdownErr := started[i].Shutdown(); shutdownErr != nil {
					logrus.WithError(shutdownErr).Warnf("Unable to shut down %s after failed start", engineName(started[i]))
				}
			}
			return fmt.Errorf("unable to start %s: %w", engineName(engine), err)
		}
		started = append(started, runnable)
	}
	return nil
}

// Shutdown shuts down all Runnable engines in reverse order of registration.
// A failing engine does not prevent the others from being shut down; all errors are returned.
func (system *System) Shutdown() error {
	var errs []error
	for i := len(system.engines) - 1; i >= 0; i-- {
		runnable, ok := system.engines[i].(Runnable)
		if !ok {
			continue
		}
		if err := runnable.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("unable to shut down %s: %w", engineName(runnable), err))
		}
	}
	return errors.Join(errs...)
}

// Diagnostics collects the diagnostics of all Diagnosable engines.
func (system *System) Diagnostics() []DiagnosticResult {
	result := make([]DiagnosticResult, 0)
	system.VisitEngines(func(engine Engine) {
		if diagnosable, ok := engine.(Diagnosable); ok {
			result = append(result, diagnosable.Diagnostics()...)
		}
	})
	return result
}

// VisitEngines calls visitor for every engine in registration order.
func (system *System) VisitEngines(visitor func(engine Engine)) {
	for _, engine := range system.engines {
		visitor(engine)
	}
}

// VisitEnginesE calls visitor for every engine in registration order and stops at the first error, which is returned.
func (system *System) VisitEnginesE(visitor func(engine Engine) error) error {
	for _, engine := range system.engines {
		if err := visitor(engine); err != nil {
			return err
		}
	}
	return nil
}

func engineName(engine Engine) string {
	if named, ok := engine.(Named); ok {
		return named.Name()
	}
	return fmt.Sprintf("%T", engine)
}
