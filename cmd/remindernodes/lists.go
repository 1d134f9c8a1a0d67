/*
 *    Copyright 2025 blockarchitech
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var listsCmd = &cobra.Command{
	Use:   "lists [filter]",
	Short: "Find reminder lists by name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := ""
		if len(args) == 1 {
			filter = args[0]
		}
		result := app.SearchLists(cmd.Context(), filter)

		out := cmd.OutOrStdout()
		if !isTerminal(out) {
			return writeJSON(out, result)
		}
		fmt.Fprintf(out, "\n📋 Lists: %d\n", len(result.Results))
		for _, item := range result.Results {
			fmt.Fprintf(out, "  • %s  (%s)\n", item.Name, item.URL)
		}
		return nil
	},
}

// writeJSON indents for terminals and stays compact for pipes.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if isTerminal(w) {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
