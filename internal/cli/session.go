package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"tfocus/internal/config"
	"tfocus/internal/discovery"
	"tfocus/internal/domain"
	"tfocus/internal/interrupt"
	"tfocus/internal/runner"
	"tfocus/internal/ui/display"
	"tfocus/internal/ui/menu"
)

// readyEnv makes the app print a marker once the menu is about to start
const readyEnv = "TFOCUS_E2E_TEST"

// runSession is one full discovery, selection and execution pass
func (a *App) runSession(ctx context.Context, path string) error {
	root, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	cfg, err := a.loadConfig(root)
	if err != nil {
		return err
	}

	// flag wins over config; empty means ask
	var action domain.Action
	if a.opts.action != "" {
		if action, err = parseAction(a.opts.action); err != nil {
			return err
		}
	} else if cfg.DefaultAction != "" {
		action = domain.Action(cfg.DefaultAction)
	}

	token := interrupt.NewToken()
	if a.InstallInterrupts != nil {
		release, err := a.InstallInterrupts(token, a.logger)
		if err != nil {
			return err
		}
		defer release()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-token.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	out := display.NewPrinter(a.Streams.Out)

	scanner := discovery.NewScanner(discovery.Options{
		MaxDepth: cfg.Discovery.MaxDepth,
		SkipDirs: cfg.Discovery.SkipDirs,
	}, a.logger)
	res, err := scanner.Scan(ctx, root)
	if err != nil {
		if token.Armed() {
			return domain.ErrCancelled
		}
		if errors.Is(err, domain.ErrNoResources) {
			return fmt.Errorf("%w in %s", domain.ErrNoResources, root)
		}
		return err
	}

	files := discovery.Files(res.Resources)
	rel := make([]string, len(files))
	for i, f := range files {
		rel[i] = discovery.RelPath(root, f)
	}
	out.Header("Found Terraform files:")
	out.List(rel)
	out.Blank()

	if os.Getenv(readyEnv) == "1" {
		fmt.Fprintln(a.Streams.Out, "__READY__")
	}

	targets, err := a.selectTargets(discovery.Candidates(root, res.Resources), cfg, token)
	if err != nil {
		return err
	}

	if action == "" {
		if action, err = a.selectAction(cfg, token); err != nil {
			return err
		}
	}

	req := domain.NewRunRequest(action, targets, domain.WorkDirFor(res.Resources, targets))
	a.logger.Info("selection confirmed",
		zap.String("action", string(action)),
		zap.Strings("targets", req.Targets),
		zap.String("dir", req.Dir))

	r := runner.New(runner.Options{
		Binary:       cfg.Binary,
		TargetFlag:   cfg.TargetFlag,
		ExtraArgs:    cfg.ExtraArgs(),
		PollInterval: time.Duration(cfg.PollInterval),
		GracePeriod:  time.Duration(cfg.GracePeriod),
		Stdout:       a.Streams.Out,
		Stderr:       a.Streams.Err,
	}, a.Platform, a.logger)

	out.Command(r.CommandLine(req))
	outcome := r.Run(req, token)

	switch outcome.Kind {
	case domain.TerminatedByCancellation:
		return domain.ErrCancelled
	case domain.SpawnFailed:
		return outcome.Err
	}
	if outcome.Err != nil {
		a.logger.Warn("child wait failed", zap.Error(outcome.Err))
	}
	if !outcome.Success() {
		return &domain.ExitError{Code: outcome.ExitCode}
	}

	out.Success(fmt.Sprintf("%s %s completed in %s", cfg.Binary, action, outcome.Duration.Round(time.Millisecond)))
	if action == domain.ActionPlan {
		out.ApplyHint(r.CommandLine(domain.NewRunRequest(domain.ActionApply, targets, req.Dir)))
	}
	return nil
}

func (a *App) selectTargets(set domain.CandidateSet, cfg *config.Config, token *interrupt.Token) ([]string, error) {
	res, err := menu.Run(set, a.menuOptions(cfg, token, "Select resources", cfg.UI.MultiSelect))
	if err != nil {
		return nil, err
	}
	if res.State != menu.Confirmed {
		return nil, domain.ErrCancelled
	}
	return res.Identifiers, nil
}

func (a *App) selectAction(cfg *config.Config, token *interrupt.Token) (domain.Action, error) {
	set := make(domain.CandidateSet, len(domain.Actions))
	for i, act := range domain.Actions {
		set[i] = domain.Candidate{Identifier: string(act), Label: string(act), Detail: act.Description()}
	}

	res, err := menu.Run(set, a.menuOptions(cfg, token, "Select action", false))
	if err != nil {
		return "", err
	}
	if res.State != menu.Confirmed {
		return "", domain.ErrCancelled
	}
	return domain.Action(res.Identifiers[0]), nil
}

func (a *App) menuOptions(cfg *config.Config, token *interrupt.Token, title string, multi bool) menu.RunOptions {
	opts := menu.RunOptions{
		Options:      menu.Options{MultiSelect: multi, Token: token},
		Title:        title,
		ShowDetail:   cfg.UI.ShowDetail,
		AltScreen:    cfg.UI.AltScreen,
		PollInterval: time.Duration(cfg.PollInterval),
	}
	// the process streams are bubbletea's defaults
	if a.Streams.In != os.Stdin {
		opts.Input = a.Streams.In
	}
	if a.Streams.Out != os.Stdout {
		opts.Output = a.Streams.Out
	}
	return opts
}
