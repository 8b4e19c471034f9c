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
Package operation sequences one import run of a camera card.

	+-------------+     +-------------+     +-------------+
	|   Target    | --> |  Identity   | --> |  Manifest   |
	| (mkdir -p)  |     | (Device.xml)|     |  (ordered)  |
	+-------------+     +-------------+     +------+------+
	                                               |
	+-------------+     +-------------+     +------+------+
	|    Eject    | <-- |  Transfer   | <-- |    Plan     |
	|  (command)  |     | (temp+mv)   |     |  (totals)   |
	+-------------+     +-------------+     +-------------+

🎯 Purpose:
- Runs the stages strictly in order, one at a time
- Stops at the first failing stage; nothing is retried
- Reports every user-visible event through an Observer

🔄 Flow:
1. Create the target root if missing
2. Read the product name from the device identity file
3. Build the manifest of files not yet imported
4. Compute totals and print the plan
5. Transfer each file (skipped in a dry run, which lists the plan instead)
6. Eject the card (skipped in a dry run)

⚠️ A failed eject is reported as the run's error after all files have been
transferred; the imported files stay in place.

🔍 Example:

	imp, err := operation.New(operation.Options{
		Fs:         afero.NewOsFs(),
		Config:     cfg,
		TargetRoot: "/Users/me/Movies/dashcam",
		Ejector:    device.NewCommandEjector("diskutil", []string{"eject"}),
		Observer:   console,
	})
	run, err := imp.Execute(ctx)
*/
package operation
