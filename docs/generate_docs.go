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

package main

import (
	"fmt"
	"os"
	"path"

	"github.com/nuts-foundation/ion-crawler/cmd"
	"github.com/nuts-foundation/ion-crawler/core"
	"github.com/spf13/cobra/doc"
)

const (
	optionsFile  = "docs/server_options.md"
	cliDirectory = "docs/cli"
)

func main() {
	system := cmd.CreateSystem()
	if err := generateServerOptions(system, optionsFile); err != nil {
		panic(err)
	}
	if err := generateCLICommands(system, cliDirectory); err != nil {
		panic(err)
	}
}

func generateCLICommands(system *core.System, directory string) error {
	if err := os.RemoveAll(directory); err != nil {
		return err
	}
	if err := os.MkdirAll(directory, os.ModePerm); err != nil {
		return err
	}
	command := cmd.CreateCommand(system)
	command.DisableAutoGenTag = true
	if err := doc.GenMarkdownTree(command, directory); err != nil {
		return fmt.Errorf("unable to generate CLI docs: %w", err)
	}
	return nil
}

func generateServerOptions(system *core.System, fileName string) error {
	file, err := os.OpenFile(path.Clean(fileName), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err = file.WriteString("# Server options\n\n"); err != nil {
		return err
	}
	if err = printMarkdownTable(file, partitionFlags(system, cmd.CreateCommand(system).PersistentFlags())); err != nil {
		return err
	}
	return file.Sync()
}
