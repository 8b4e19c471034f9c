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

package main

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/mioimport/pkg/log"
	"gitlab.com/tozd/go/errors"
)

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command line and returns the process exit status
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	h := NewHandler()
	h.stdout = stdout
	h.stderr = stderr

	if args == nil {
		args = []string{}
	}

	cmd := NewCommand(h)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, errUsage) {
			_ = cmd.Usage()
			return 1
		}

		log.New(stdout, *zerolog.Ctx(h.ctx(ctx))).Failed(err)
		return 1
	}
	return 0
}
