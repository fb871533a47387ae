package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tfocus/internal/discovery"
	"tfocus/internal/domain"
	"tfocus/internal/ui/display"
	"tfocus/internal/ui/pager"
)

func newListCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [path]",
		Short: "List the Terraform files and resources tfocus would offer",
		Args:  pathArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd.Context(), rootPath(args))
		},
	}
	cmd.Flags().BoolVar(&a.opts.noPager, "no-pager", false, "print directly instead of opening the pager")
	return cmd
}

func (a *App) runList(ctx context.Context, path string) error {
	root, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	cfg, err := a.loadConfig(root)
	if err != nil {
		return err
	}

	scanner := discovery.NewScanner(discovery.Options{
		MaxDepth: cfg.Discovery.MaxDepth,
		SkipDirs: cfg.Discovery.SkipDirs,
	}, a.logger)
	res, err := scanner.Scan(ctx, root)
	if err != nil && !errors.Is(err, domain.ErrNoResources) {
		return err
	}

	content := renderListing(root, res)
	if a.usePager() {
		if perr := pager.Show(content); perr != nil {
			return perr
		}
	} else {
		fmt.Fprint(a.Streams.Out, content)
	}

	if err != nil {
		return fmt.Errorf("%w in %s", err, root)
	}
	return nil
}

func renderListing(root string, res *discovery.Result) string {
	styles := display.NewStyles()

	files := make([]string, len(res.Files))
	for i, f := range res.Files {
		files[i] = discovery.RelPath(root, f)
	}
	out := styles.Section("Found Terraform files:", files)

	if len(res.Resources) > 0 {
		set := discovery.Candidates(root, res.Resources)
		rows := make([]string, len(set))
		for i, c := range set {
			rows[i] = fmt.Sprintf("%-48s %s", c.Label, styles.Dim.Render(c.Detail))
		}
		out += "\n" + styles.Section("Resources:", rows)
	}
	return out
}

// usePager reports whether output goes to an interactive terminal
func (a *App) usePager() bool {
	if a.opts.noPager {
		return false
	}
	f, ok := a.Streams.Out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
