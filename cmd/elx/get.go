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
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"dirpx.dev/elx"
)

// ErrNotFound is returned when a path resolves to no element.
var ErrNotFound = errors.New("elx: element not found")

func newGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <file> <path>",
		Short: "Print the value at an element path",
		Example: `  elx get config.yaml server.host
  elx get config.yaml server.ports.last
  elx get -s / app.properties db.url`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func runGet(w io.Writer, file, path string) error {
	target, err := load(file)
	if err != nil {
		return err
	}
	v, err := value(target, path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, format(v))
	return err
}

// value reads the element at path on target.
func value(target any, path string) (any, error) {
	el, ok, err := elx.Element(path).From(target)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, path)
	}
	return el.Get()
}

func format(v any) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprint(v)
}
