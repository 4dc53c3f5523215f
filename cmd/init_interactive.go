package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/olimci/depcat/pkg/policy"
)

type initInteractiveResult struct {
	Params    initParams
	Cancelled bool
}

func runInitInteractive(ctx context.Context, params initParams) (*initInteractiveResult, error) {
	result := &initInteractiveResult{Params: params}
	p := &result.Params

	if _, err := policy.ParseStrictness(p.Strictness); err != nil {
		p.Strictness = policy.Strict.String()
	}

	confirmed := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Value(&p.Name).
				Validate(notBlank("name")),
			huh.NewInput().
				Title("Manifest path").
				Description("Relative to " + p.Dir).
				Value(&p.Manifest).
				Validate(relativePath),
			huh.NewSelect[string]().
				Title("Strictness").
				Options(
					huh.NewOption("strict: undeclared dependencies are rejected", policy.Strict.String()),
					huh.NewOption("loosely: undeclared dependencies warn", policy.Loosely.String()),
					huh.NewOption("loose: undeclared dependencies are informational", policy.Loose.String()),
				).
				Value(&p.Strictness),
			huh.NewConfirm().
				Title("Write depcat.toml?").
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			result.Cancelled = true
			return result, nil
		}
		return nil, err
	}

	result.Cancelled = !confirmed
	return result, nil
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func relativePath(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("manifest path is required")
	}
	if filepath.IsAbs(s) {
		return errors.New("manifest path must be relative")
	}
	return nil
}
