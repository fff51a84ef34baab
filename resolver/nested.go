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

package resolver

import (
	"strings"

	"go.uber.org/zap"

	"dirpx.dev/elx/apis"
	"dirpx.dev/elx/element"
	uref "dirpx.dev/elx/utils/reflect"
)

// nested resolves a dotted path hop by hop. Each hop is looked up against
// the live value of the previous one when it is bound, readable and
// non-nil, and against the previous hop's static type otherwise; from that
// point on the remaining hops are generic.
func (d *dispatcher) nested(path string, root any) (apis.Element, bool, error) {
	parts := strings.Split(path, d.sep)
	hops := make([]apis.Element, 0, len(parts))

	var cur any = root
	for i, part := range parts {
		if part == "" {
			return nil, false, nil
		}
		if i > 0 {
			cur = d.next(hops[i-1])
		}
		f := d.finder(cur)
		if f == nil {
			return nil, false, nil
		}
		hop, ok, err := f.Find(part, cur)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			d.cfg.Log().Debug("elx(resolver): nested path unresolved",
				zap.String("path", path),
				zap.String("hop", part))
			return nil, false, nil
		}
		hops = append(hops, hop)
	}
	return element.NewNested(path, root, hops), true, nil
}

// next returns the resolution target following hop.
func (d *dispatcher) next(hop apis.Element) any {
	if hop.Specific() && hop.Readable() {
		v, err := element.Traverse(hop)
		if err == nil && !uref.IsNil(v) {
			return v
		}
	}
	return hop.Type()
}
