package loader

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/panzer/habutax/internal/ctxlog"
	"github.com/panzer/habutax/internal/engine"
	"github.com/panzer/habutax/internal/forms"
)

// answerFile is the top-level HCL structure of one answer file.
type answerFile struct {
	Forms []*formBlock `hcl:"form,block"`
}

// formBlock is one `form "<name>" { ... }` block.
type formBlock struct {
	Name    string    `hcl:"name,label"`
	Index   *int      `hcl:"index,optional"`
	Answers cty.Value `hcl:"answers"`
}

// pending is a parsed, validated instance waiting to be added to the run
// in deterministic order.
type pending struct {
	def    *engine.Definition
	index  int
	inputs map[string]cty.Value
}

// Load builds a run from every .hcl answer file under path (a file or a
// directory). All catalog definitions are registered with the run even
// when no answers exist for them, so references into unloaded repeatable
// forms resolve to "not present" rather than failing as unknown forms.
func Load(ctx context.Context, catalog *forms.Catalog, path string) (*engine.Run, error) {
	logger := ctxlog.FromContext(ctx)

	run := engine.NewRun()
	for _, def := range catalog.Definitions() {
		if err := run.RegisterDefinition(def); err != nil {
			return nil, err
		}
	}

	files, err := findAnswerFiles(path)
	if err != nil {
		return nil, fmt.Errorf("failed to find answer files in %s: %w", path, err)
	}
	if len(files) == 0 {
		logger.Warn("No .hcl answer files found in path.", "path", path)
		return run, nil
	}
	logger.Debug("Answer files discovered.", "count", len(files))

	parser := hclparse.NewParser()
	var pendings []pending
	for _, file := range files {
		p, err := parseAnswerFile(catalog, file, parser)
		if err != nil {
			return nil, err
		}
		pendings = append(pendings, p...)
	}

	// Instance blocks may be spread across files in any order; sort so
	// repeatable instances are added densely and runs are reproducible.
	sort.SliceStable(pendings, func(i, j int) bool {
		if pendings[i].def.Name != pendings[j].def.Name {
			return pendings[i].def.Name < pendings[j].def.Name
		}
		return pendings[i].index < pendings[j].index
	})

	for _, p := range pendings {
		if err := run.AddInstance(engine.NewInstance(p.def, p.index, p.inputs)); err != nil {
			return nil, err
		}
		logger.Debug("Form instance loaded.", "form", p.def.Name, "index", p.index)
	}

	return run, nil
}

// parseAnswerFile parses and validates one answer file.
func parseAnswerFile(catalog *forms.Catalog, filePath string, parser *hclparse.Parser) ([]pending, error) {
	hclFile, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse answer file %s: %w", filePath, diags)
	}

	var parsed answerFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode answer file %s: %w", filePath, diags)
	}

	pendings := make([]pending, 0, len(parsed.Forms))
	for _, block := range parsed.Forms {
		form, ok := catalog.Form(block.Name)
		if !ok {
			return nil, fmt.Errorf("%s: answers given for unknown form %q (tax year %d)", filePath, block.Name, catalog.Year())
		}

		index := -1
		switch {
		case form.Def.Repeatable && block.Index == nil:
			return nil, fmt.Errorf("%s: form %q is repeatable and requires an index", filePath, block.Name)
		case !form.Def.Repeatable && block.Index != nil:
			return nil, fmt.Errorf("%s: form %q is a singleton and does not take an index", filePath, block.Name)
		case block.Index != nil:
			index = *block.Index
		}

		inputs, err := validateAnswers(form.Def, block.Answers)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filePath, err)
		}
		pendings = append(pendings, pending{def: form.Def, index: index, inputs: inputs})
	}

	return pendings, nil
}

// validateAnswers checks every raw answer against the form's input
// declarations and returns the typed input values.
func validateAnswers(def *engine.Definition, answers cty.Value) (map[string]cty.Value, error) {
	if answers.IsNull() || !answers.CanIterateElements() {
		return nil, fmt.Errorf("form %q: answers must be an object of input values", def.Name)
	}

	inputs := make(map[string]cty.Value)
	for name, raw := range answers.AsValueMap() {
		in, ok := def.Input(name)
		if !ok {
			return nil, &engine.InputError{Form: def.Name, Input: name, Reason: "input is not declared on this form"}
		}
		typed, err := in.Validate(raw)
		if err != nil {
			return nil, &engine.InputError{Form: def.Name, Input: name, Reason: err.Error()}
		}
		inputs[name] = typed
	}
	return inputs, nil
}

// findAnswerFiles returns every .hcl file under root in sorted order. A
// root that is itself a file is returned as-is.
func findAnswerFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".hcl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
