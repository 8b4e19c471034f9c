// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package status tracks progress of a single import run.

🎯 Purpose:
- Holds the processed size and files remaining counters of one run
- Renders progress lines and the plan summary

A Progress value is created from the manifest totals before the first
transfer and advanced by the transfer engine after every completed file. It is
not shared between runs.

🔍 Example:

	p := status.NewProgress(m.TotalSize(), m.Len())
	p.Advance(rec.Size)
	fmt.Println(status.NewDefaultFormatter().FormatProgress(*p))
	// progress: 33% / files: 1 / size: 0 MiB
*/
package status
