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

package operation

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🧩 Operation is one stage of an import run
type Operation interface {
	Name() string
	Execute(ctx context.Context, run *Run) error
}

// stage adapts a function to Operation
type stage struct {
	name string
	fn   func(ctx context.Context, run *Run) error
}

func (s stage) Name() string                                { return s.name }
func (s stage) Execute(ctx context.Context, run *Run) error { return s.fn(ctx, run) }

// 🏃 OperationRunner executes operations strictly one after another
type OperationRunner struct {
	onStart func(ctx context.Context, stage string)
}

// 🏗️ NewRunner creates a new runner
func NewRunner() *OperationRunner {
	return &OperationRunner{}
}

// WithStageHook calls fn before each operation starts
func (r *OperationRunner) WithStageHook(fn func(ctx context.Context, stage string)) *OperationRunner {
	r.onStart = fn
	return r
}

// 🏃 Run executes ops in order and stops at the first failure.
// Nothing is retried.
func (r *OperationRunner) Run(ctx context.Context, run *Run, ops ...Operation) error {
	logger := zerolog.Ctx(ctx)

	for _, op := range ops {
		start := time.Now()
		logger.Debug().Str("stage", op.Name()).Msg("starting stage")
		if r.onStart != nil {
			r.onStart(ctx, op.Name())
		}

		if err := op.Execute(ctx, run); err != nil {
			logger.Debug().Str("stage", op.Name()).Err(err).Msg("stage failed")
			return errors.Errorf("%s: %w", op.Name(), err)
		}

		logger.Debug().Str("stage", op.Name()).Dur("took", time.Since(start)).Msg("stage complete")
	}
	return nil
}
