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

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/nuts-foundation/ion-crawler/core"
	"github.com/nuts-foundation/ion-crawler/crawler"
	crawlerAPI "github.com/nuts-foundation/ion-crawler/crawler/api/v1"
	crawlerCmd "github.com/nuts-foundation/ion-crawler/crawler/cmd"
	"github.com/nuts-foundation/ion-crawler/events"
	eventsCmd "github.com/nuts-foundation/ion-crawler/events/cmd"
	"github.com/nuts-foundation/ion-crawler/storage"
	storageCmd "github.com/nuts-foundation/ion-crawler/storage/cmd"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const shutdownTimeout = 10 * time.Second

var stdOutWriter io.Writer = os.Stdout

func createRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "crawler",
		Short: "Crawls the Sidetree transaction log of an ION node for DIDs of a given type.",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}
}

func createPrintConfigCommand(system *core.System) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Prints the current config",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := system.Load(cmd.Flags()); err != nil {
				return err
			}
			cmd.Println("Current system config")
			cmd.Println(system.Config.PrintConfig())
			return nil
		},
	}
}

func createServerCommand(system *core.System) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Starts the crawler server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := system.Load(cmd.Flags()); err != nil {
				return err
			}
			return startServer(cmd.Context(), system)
		},
	}
}

func createCrawlCommand(system *core.System) *cobra.Command {
	command := &cobra.Command{
		Use:   "crawl",
		Short: "Crawls the transaction log once and prints the DIDs of the given type as they are found",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := system.Load(cmd.Flags()); err != nil {
				return err
			}
			didType, _ := cmd.Flags().GetString("type")
			if didType == "" {
				return errors.New("--type is required")
			}
			maxFiles, _ := cmd.Flags().GetInt("maxfiles")
			return runCrawl(cmd.Context(), system, didType, maxFiles, cmd.OutOrStdout())
		},
	}
	command.Flags().String("type", "", "DID type to crawl for.")
	command.Flags().Int("maxfiles", -1, "Number of core index files to inspect. Defaults to crawler.maxfiles.")
	return command
}

func startServer(ctx context.Context, system *core.System) error {
	logrus.Infof("Build info: \n%s", core.BuildInfo())
	logrus.Infof("Config: \n%s", system.Config.PrintConfig())

	shutdownTracing, err := core.SetupTracing(system.Config.Tracing)
	if err != nil {
		return fmt.Errorf("unable to set up tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logrus.WithError(err).Error("Error shutting down tracing")
		}
	}()

	if err := system.Configure(); err != nil {
		return err
	}
	if err := system.Start(); err != nil {
		return err
	}
	defer func() {
		if err := system.Shutdown(); err != nil {
			logrus.WithError(err).Error("Error shutting down engines")
		}
	}()

	echoServer, err := system.EchoCreator(system.Config.HTTP)
	if err != nil {
		return err
	}
	for _, router := range system.Routers {
		router.Routes(echoServer)
	}
	serverErr := make(chan error, 1)
	go func() {
		logrus.Infof("HTTP server listening on %s", system.Config.HTTP.Address)
		if err := echoServer.Start(system.Config.HTTP.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		logrus.Info("Shutting down")
	case err = <-serverErr:
		return err
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err = echoServer.Shutdown(shutdownCtx)
	<-serverErr
	return err
}

// runCrawl starts only the engines a crawl needs and prints the DIDs of the type, see printCrawl.
func runCrawl(ctx context.Context, system *core.System, didType string, maxFiles int, out io.Writer) error {
	var storageEngine storage.Engine
	var crawlerEngine *crawler.Engine
	system.VisitEngines(func(engine core.Engine) {
		switch e := engine.(type) {
		case storage.Engine:
			storageEngine = e
		case *crawler.Engine:
			crawlerEngine = e
		}
	})
	if storageEngine == nil || crawlerEngine == nil {
		return errors.New("storage and crawler engines must be registered")
	}
	// one-shot, no background crawls
	crawlerEngine.Config().(*crawler.Config).Interval = 0
	if err := system.Configure(); err != nil {
		return err
	}
	if err := storageEngine.Start(); err != nil {
		return err
	}
	defer func() {
		if err := storageEngine.Shutdown(); err != nil {
			logrus.WithError(err).Error("Error shutting down storage")
		}
	}()
	if err := crawlerEngine.Start(); err != nil {
		return err
	}
	defer func() {
		if err := crawlerEngine.Shutdown(); err != nil {
			logrus.WithError(err).Error("Error shutting down crawler")
		}
	}()

	if maxFiles < 0 {
		maxFiles = crawlerEngine.DefaultMaxFiles()
	}
	return printCrawl(ctx, crawlerEngine.Resolve, didType, maxFiles, out)
}

type resolveFunc func(ctx context.Context, didType string, maxFiles int, onBatch func([]string)) ([]string, error)

// printCrawl prints DIDs found in core index files as they are found, followed by the cached DIDs that the crawl
// didn't come across. Every DID is printed once.
func printCrawl(ctx context.Context, resolve resolveFunc, didType string, maxFiles int, out io.Writer) error {
	printed := make(map[string]struct{})
	printOnce := func(dids []string) {
		for _, did := range dids {
			if _, ok := printed[did]; ok {
				continue
			}
			printed[did] = struct{}{}
			_, _ = fmt.Fprintln(out, did)
		}
	}
	dids, err := resolve(ctx, didType, maxFiles, printOnce)
	if err != nil {
		if dids == nil {
			return err
		}
		logrus.WithError(err).Warn("Crawl completed with errors")
	}
	printOnce(dids)
	logrus.Infof("Found %d DIDs of type %s", len(dids), didType)
	return nil
}

// CreateCommand creates the command with all subcommands to run the system.
func CreateCommand(system *core.System) *cobra.Command {
	command := createRootCommand()
	command.SetOut(stdOutWriter)
	command.AddCommand(createServerCommand(system))
	command.AddCommand(createCrawlCommand(system))
	command.AddCommand(createPrintConfigCommand(system))
	command.PersistentFlags().AddFlagSet(serverFlagSet())
	return command
}

// CreateSystem creates the system and registers all default engines.
func CreateSystem() *core.System {
	system := core.NewSystem()
	// Create instances
	statusInstance := core.NewStatusEngine(system)
	metricsInstance := core.NewMetricsEngine()
	storageInstance := storage.New()
	eventManager := events.NewManager()
	crawlerInstance := crawler.NewEngine(storageInstance, eventManager)

	// Register HTTP routes
	system.RegisterRoutes(statusInstance.(core.Routable))
	system.RegisterRoutes(metricsInstance.(core.Routable))
	system.RegisterRoutes(&crawlerAPI.Wrapper{Backend: crawlerInstance})

	// Register engines
	// without dependencies
	system.RegisterEngine(statusInstance)
	system.RegisterEngine(metricsInstance)
	system.RegisterEngine(storageInstance)
	system.RegisterEngine(eventManager)
	// depends on storage and events
	system.RegisterEngine(crawlerInstance)
	return system
}

// Execute executes the root command with the given system. The context cancels a running server or crawl.
func Execute(ctx context.Context, system *core.System) error {
	command := CreateCommand(system)
	command.SetOut(stdOutWriter)
	return command.ExecuteContext(ctx)
}

func serverFlagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("crawler", pflag.ContinueOnError)
	flagSet.AddFlagSet(core.FlagSet())
	flagSet.AddFlagSet(storageCmd.FlagSet())
	flagSet.AddFlagSet(eventsCmd.FlagSet())
	flagSet.AddFlagSet(crawlerCmd.FlagSet())
	return flagSet
}
