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
	"io"
	"sort"
	"strings"

	"github.com/nuts-foundation/ion-crawler/core"
	"github.com/spf13/pflag"
)

// flagPartition holds the flags configuring one engine. The global flags have no engine.
type flagPartition struct {
	engine string
	flags  []*pflag.Flag
}

// partitionFlags groups the flags by the engine their config key belongs to, global flags first.
func partitionFlags(system *core.System, flagSet *pflag.FlagSet) []flagPartition {
	engineFlags := map[string][]*pflag.Flag{}
	var engineNames []string
	claimed := map[string]bool{}
	system.VisitEngines(func(engine core.Engine) {
		injectable, ok := engine.(core.Injectable)
		if !ok {
			return
		}
		prefix := strings.ToLower(injectable.Name()) + "."
		flagSet.VisitAll(func(flag *pflag.Flag) {
			if strings.HasPrefix(flag.Name, prefix) && !flag.Hidden {
				engineFlags[injectable.Name()] = append(engineFlags[injectable.Name()], flag)
				claimed[flag.Name] = true
			}
		})
		if len(engineFlags[injectable.Name()]) > 0 {
			engineNames = append(engineNames, injectable.Name())
		}
	})
	var global []*pflag.Flag
	flagSet.VisitAll(func(flag *pflag.Flag) {
		if !claimed[flag.Name] && !flag.Hidden {
			global = append(global, flag)
		}
	})
	sortFlags(global)
	result := []flagPartition{{flags: global}}
	sort.Strings(engineNames)
	for _, name := range engineNames {
		sortFlags(engineFlags[name])
		result = append(result, flagPartition{engine: name, flags: engineFlags[name]})
	}
	return result
}

// sortFlags sorts top-level keys (without dots) before nested keys.
func sortFlags(flags []*pflag.Flag) {
	sort.Slice(flags, func(i, j int) bool {
		nested1 := strings.Contains(flags[i].Name, ".")
		nested2 := strings.Contains(flags[j].Name, ".")
		if nested1 != nested2 {
			return !nested1
		}
		return flags[i].Name < flags[j].Name
	})
}

func printMarkdownTable(writer io.Writer, partitions []flagPartition) error {
	lines := []string{"| Key | Default | Description |", "|---|---|---|"}
	for _, partition := range partitions {
		if partition.engine != "" {
			lines = append(lines, fmt.Sprintf("| **%s** | | |", partition.engine))
		}
		for _, flag := range partition.flags {
			lines = append(lines, fmt.Sprintf("| %s | %s | %s |", flag.Name, escapeCell(flag.DefValue), escapeCell(flag.Usage)))
		}
	}
	_, err := io.WriteString(writer, strings.Join(lines, "\n")+"\n")
	return err
}

func escapeCell(value string) string {
	return strings.ReplaceAll(value, "|", "\\|")
}
