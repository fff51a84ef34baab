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
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dirpx.dev/elx"
	"dirpx.dev/elx/config"
)

// newLogger builds the logger installed by --verbose.
var newLogger = zap.NewDevelopment

type rootOptions struct {
	verbose   bool
	separator string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "elx",
		Short: "Read configuration files through element paths",
		Long: `elx loads a JSON, YAML, TOML or .properties file and resolves
element paths against it, the same way the elx library resolves them
against Go values.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.apply()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			// Syncing stderr fails with EINVAL on terminals.
			_ = elx.Config().Log().Sync()
		},
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log resolution traces to stderr")
	cmd.PersistentFlags().StringVarP(&opts.separator, "separator", "s", config.DefaultSeparator, "nested path separator")

	cmd.AddCommand(newGetCommand(), newListCommand())
	return cmd
}

// apply installs the global configuration selected by the flags.
func (o *rootOptions) apply() error {
	copts := []config.Option{config.WithSeparator(o.separator)}
	if o.verbose {
		l, err := newLogger()
		if err != nil {
			return err
		}
		copts = append(copts, config.WithLogger(l))
	}
	elx.SetConfig(config.NewConfig(copts...))
	return nil
}
