package codemod

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SebassNoob/next-codemod/internal/display"
	"github.com/SebassNoob/next-codemod/internal/engine"
	"github.com/SebassNoob/next-codemod/internal/filelock"
	"github.com/SebassNoob/next-codemod/internal/registry"
)

// craTransformName is the one transform that never touches the external
// engine: it migrates a Create React App project directly.
const craTransformName = "cra-to-next"

// craNextConfig is the next.config.js written into migrated projects.
const craNextConfig = `// Generated by next-codemod (cra-to-next).
module.exports = {
  reactStrictMode: true,
}
`

// packageJSON is the subset of package.json the migration inspects.
type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func (p *packageJSON) has(name string) bool {
	if _, ok := p.Dependencies[name]; ok {
		return true
	}
	_, ok := p.DevDependencies[name]
	return ok
}

// craToNext performs a minimal Create React App to Next.js migration: it
// validates the project, writes a next.config.js and installs next.
type craToNext struct {
	desc     registry.Descriptor
	packages PackageOperator
	out      *display.Printer
}

func (t *craToNext) Descriptor() registry.Descriptor {
	return t.desc
}

func (t *craToNext) Run(ctx context.Context, files []string, opts Options) (engine.Outcome, error) {
	root, err := migrationRoot(files)
	if err != nil {
		return engine.Outcome{}, err
	}

	pkg, err := readPackageJSON(filepath.Join(root, "package.json"))
	if err != nil {
		return engine.Outcome{}, err
	}
	if !pkg.has("react-scripts") {
		return engine.Outcome{}, fmt.Errorf(
			"codemod: %s does not look like a Create React App project (no react-scripts dependency)", root)
	}

	configPath := filepath.Join(root, "next.config.js")
	_, statErr := os.Stat(configPath)
	needConfig := os.IsNotExist(statErr)
	needNext := !pkg.has("next")

	if opts.Dry {
		t.out.Infof("cra-to-next would migrate %s:", root)
		if needConfig {
			t.out.Infof("  - create %s", configPath)
		}
		if needNext {
			t.out.Infof("  - install next")
		}
		if !needConfig && !needNext {
			t.out.Infof("  - nothing, the project already carries a Next.js setup")
		}
		return engine.Outcome{NoChangesDetected: true}, nil
	}

	changed := false
	if needConfig {
		if err := filelock.AtomicWrite(configPath, []byte(craNextConfig)); err != nil {
			return engine.Outcome{}, err
		}
		t.out.Successf("Created %s", configPath)
		changed = true
	}
	if needNext {
		if err := t.packages.Install(ctx, []string{"next"}); err != nil {
			return engine.Outcome{}, err
		}
		t.out.Successf("Installed next")
		changed = true
	}

	return engine.Outcome{NoChangesDetected: !changed}, nil
}

// migrationRoot picks the project directory from the resolved file list.
func migrationRoot(files []string) (string, error) {
	if len(files) == 0 {
		return ".", nil
	}
	info, err := os.Stat(files[0])
	if err != nil {
		return "", fmt.Errorf("codemod: cannot stat %s: %w", files[0], err)
	}
	if info.IsDir() {
		return files[0], nil
	}
	return filepath.Dir(files[0]), nil
}

func readPackageJSON(path string) (*packageJSON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("codemod: cra-to-next needs a package.json: %w", err)
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("codemod: failed to parse %s: %w", path, err)
	}
	return &pkg, nil
}
