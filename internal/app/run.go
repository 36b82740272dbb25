package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/davecgh/go-spew/spew"

	"github.com/panzer/habutax/internal/ctxlog"
	"github.com/panzer/habutax/internal/loader"
	"github.com/panzer/habutax/internal/pdf"
)

// Run executes one filing computation: load answers, resolve every
// required field of the target form, and either report the unsupported
// scenarios or emit the PDF field mapping.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	run, err := loader.Load(ctx, a.catalog, a.config.AnswersPath)
	if err != nil {
		return fmt.Errorf("failed to load answers: %w", err)
	}

	form, ok := a.catalog.Form(a.config.Form)
	if !ok {
		return fmt.Errorf("no form %q in the tax year %d catalog", a.config.Form, a.config.Year)
	}
	if form.Def.Repeatable {
		return fmt.Errorf("form %q is a source document, not a filable form", a.config.Form)
	}
	inst, ok := run.Instance(form.Def.Name, -1)
	if !ok {
		return fmt.Errorf("no answers were loaded for form %q", a.config.Form)
	}

	resolved := make(map[string]string, len(form.Def.Required))
	for _, field := range form.Def.Required {
		res, err := run.ResolveAt(ctx, inst, field.Name())
		if err != nil {
			return fmt.Errorf("evaluation failed: %w", err)
		}
		if res.Unsupported {
			continue
		}
		resolved[field.Name()] = pdf.Render(res.Value)
	}
	a.logger.Info("Evaluation finished.", "form", form.Def.Name, "fields", len(resolved))

	if !run.Complete() {
		fmt.Fprintf(a.outW, "This filing uses %d scenario(s) the rule set does not cover:\n", len(run.UnsupportedScenarios()))
		for _, occ := range run.UnsupportedScenarios() {
			if occ.Detail != "" {
				fmt.Fprintf(a.outW, "  %s: %s\n", occ.Key, occ.Detail)
			} else {
				fmt.Fprintf(a.outW, "  %s\n", occ.Key)
			}
		}
		return fmt.Errorf("run incomplete: %d unsupported scenario(s)", len(run.UnsupportedScenarios()))
	}

	for _, field := range form.Def.Required {
		fmt.Fprintf(a.outW, "%s.%s = %s\n", form.Def.Name, field.Name(), resolved[field.Name()])
	}

	mapping, err := pdf.Map(ctx, run, inst, form.PDF)
	if err != nil {
		return fmt.Errorf("pdf field mapping failed: %w", err)
	}
	names := make([]string, 0, len(mapping))
	for name := range mapping {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(a.outW)
	for _, name := range names {
		fmt.Fprintf(a.outW, "%s\t%s\n", name, mapping[name])
	}

	if a.config.Dump {
		spew.Fdump(a.outW, resolved)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
