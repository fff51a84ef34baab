/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"dirpx.dev/elx"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <file> [path]",
		Short: "List the elements of a file or of the value at a path",
		Example: `  elx list config.yaml
  elx list config.yaml server`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 2 {
				path = args[1]
			}
			return runList(cmd.OutOrStdout(), args[0], path)
		},
	}
}

func runList(w io.Writer, file, path string) error {
	target, err := load(file)
	if err != nil {
		return err
	}
	if path != "" {
		if target, err = value(target, path); err != nil {
			return err
		}
	}

	els, err := elx.Elements().From(target)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, el := range els {
		v, err := el.Get()
		if err != nil {
			return fmt.Errorf("%s: %w", el.Name(), err)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", el.Name(), el.Type(), format(v))
	}
	return tw.Flush()
}
