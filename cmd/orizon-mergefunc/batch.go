package main

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/orizon-lang/orizon/internal/mergefunc"
	"github.com/orizon-lang/orizon/internal/mergefunc/fixtures"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run the merge pass over every sample module concurrently",
	RunE:  runBatch,
}

func init() {
	registerTargetFlags(batchCmd)
	batchCmd.Flags().Int("jobs", 0, "max concurrent scenario runs (0=one per scenario)")
	batchCmd.Flags().String("watch", "", "re-run the batch whenever this directory changes")
}

func runBatch(cmd *cobra.Command, args []string) error {
	watchDir, _ := cmd.Flags().GetString("watch")
	if watchDir == "" {
		return runBatchOnce(cmd)
	}
	return watchAndRunBatch(cmd, watchDir)
}

func runBatchOnce(cmd *cobra.Command) error {
	target, layout, err := resolveTargetAndLayout(cmd)
	if err != nil {
		return err
	}

	names := scenarioNames()
	jobs, _ := cmd.Flags().GetInt("jobs")
	if jobs <= 0 {
		jobs = len(names)
	}
	sem := make(chan struct{}, jobs)

	// results is indexed by scenario position; since scenarioNames() returns
	// a sorted slice, writing each goroutine's output to its own index (no
	// shared mutable state, so no mutex needed) leaves the final slice in
	// sorted order without an extra sort pass.
	results := make([]string, len(names))
	g, _ := errgroup.WithContext(cmd.Context())

	for i, name := range names {
		i, name := i, name
		build := fixtures.All()[name]
		g.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			mod := build()
			stats := mergefunc.Run(mod, layout, target)
			results[i] = fmt.Sprintf("%-28s %s", name, stats.String())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, r := range results {
		fmt.Println(r)
	}
	return nil
}

func watchAndRunBatch(cmd *cobra.Command, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	fmt.Printf("watching %s, Ctrl-C to stop\n", dir)
	if err := runBatchOnce(cmd); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			fmt.Printf("change detected: %s\n", ev.Name)
			if err := runBatchOnce(cmd); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Printf("watch error: %v\n", err)
		}
	}
}
