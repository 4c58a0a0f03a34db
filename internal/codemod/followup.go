package codemod

import (
	"context"
	"fmt"

	"github.com/SebassNoob/next-codemod/internal/engine"
)

// Transforms whose successful application triggers a dependency follow-up.
// They key on disjoint names; at most one fires per run since exactly one
// transform runs per invocation.
const (
	fontTransform = "built-in-next-font"
	geoTransform  = "next-request-geo-ip"

	obsoleteFontPackage = "@next/font"
	functionsPackage    = "@vercel/functions"
)

// applyFollowUps performs the documented post-transform side effects. They
// only fire on non-dry runs that actually changed files, and each asks for
// confirmation (default yes) first.
func (o *Orchestrator) applyFollowUps(ctx context.Context, name string, opts Options, outcome engine.Outcome) error {
	if opts.Dry || outcome.NoChangesDetected {
		return nil
	}

	switch name {
	case fontTransform:
		question := fmt.Sprintf("%s is no longer needed, uninstall it?", obsoleteFontPackage)
		yes, err := o.Prompter.Confirm(question, true)
		if err != nil {
			return err
		}
		if !yes {
			return nil
		}
		if err := o.Packages.Uninstall(ctx, obsoleteFontPackage); err != nil {
			return err
		}
		o.Out.Successf("Uninstalled %s", obsoleteFontPackage)

	case geoTransform:
		question := fmt.Sprintf("install %s to replace the removed geo and ip properties?", functionsPackage)
		yes, err := o.Prompter.Confirm(question, true)
		if err != nil {
			return err
		}
		if !yes {
			return nil
		}
		if err := o.Packages.Install(ctx, []string{functionsPackage}); err != nil {
			return err
		}
		o.Out.Successf("Installed %s", functionsPackage)
	}
	return nil
}
