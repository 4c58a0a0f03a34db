package codemod

import (
	"context"

	"github.com/SebassNoob/next-codemod/internal/engine"
	"github.com/SebassNoob/next-codemod/internal/registry"
)

// Transform is one runnable rewrite operation. Most transforms are scripts
// executed by the external engine; cra-to-next runs natively. The
// orchestrator treats both uniformly.
type Transform interface {
	Descriptor() registry.Descriptor
	Run(ctx context.Context, files []string, opts Options) (engine.Outcome, error)
}

// engineTransform runs a transform script through jscodeshift.
type engineTransform struct {
	desc         registry.Descriptor
	runner       EngineRunner
	binary       string
	transformDir string
}

func (t *engineTransform) Descriptor() registry.Descriptor {
	return t.desc
}

func (t *engineTransform) Run(ctx context.Context, files []string, opts Options) (engine.Outcome, error) {
	inv := engine.NewInvocation(
		t.binary,
		engine.TransformPath(t.transformDir, t.desc.Name),
		engine.InvocationOptions{
			Dry:         opts.Dry,
			Print:       opts.Print,
			RunInBand:   opts.RunInBand,
			Verbose:     opts.Verbose,
			Passthrough: opts.EngineArgs,
		},
		files,
	)

	res, err := t.runner.Run(ctx, inv)
	if err != nil {
		return engine.Outcome{}, err
	}
	return engine.Interpret(res.Tail), nil
}
