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
Package config manages configuration parsing and validation for mioimport.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+------------+
	      |            |            |            |
	+-----+----+ +-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   HCL    | |   JSON   | |  dotenv  |
	|  Parser  | |  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+ +----------+

🎯 Purpose:
- Describes the card layout (mount path, identity file, categories, extensions)
- Describes how the card is ejected once the import is done
- Fills defaults that match a stock card so that no file is needed at all

🔄 Flow:
1. Load picks a parser from the file extension
2. The parser decodes into Config (unknown fields are rejected)
3. ApplyDefaults fills what the file left out
4. Validate rejects layouts the importer cannot use

🔍 Example:

	cfg, err := config.Load(ctx, afero.NewOsFs(), "mioimport.yaml")
	if err != nil {
		return err
	}
	fmt.Println(cfg) // /Volumes/NO NAME [Event,Parking,Photo,Video] *.{LOG,MP4,JPG}

An HCL file looks like:

	card_dir        = "${home}/card"
	categories      = ["Event", "Video"]
	ignore_patterns = ["._*"]

	eject {
	  command = "udisksctl"
	  args    = ["unmount", "--block-device"]
	}
*/
package config
