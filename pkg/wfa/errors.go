// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package wfa

import "errors"

// ErrIterationLimit is returned by a summary which exceeded its iteration
// limit before reaching a fixed point.  This typically indicates a weight
// domain with an infinite ascending chain.
var ErrIterationLimit = errors.New("iteration limit exceeded")
