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
	"path/filepath"
	"strings"

	"github.com/magiconair/properties"
	"github.com/spf13/viper"
)

// load reads file into a target the elx resolver understands: a
// *properties.Properties for .properties files, a *viper.Viper otherwise.
func load(file string) (any, error) {
	if strings.EqualFold(filepath.Ext(file), ".properties") {
		p, err := properties.LoadFile(file, properties.UTF8)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
		return p, nil
	}

	v := viper.New()
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("load %s: %w", file, err)
	}
	return v, nil
}
