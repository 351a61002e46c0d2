package main

import (
	"context"
	"fmt"
	"github.com/fatih/color"
	"github.com/osmike/orbitcron/internal/cron"
	"github.com/osmike/orbitcron/internal/domain"
	"github.com/osmike/orbitcron/internal/server"
	"github.com/osmike/orbitcron/internal/ticker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"
)

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed, color.Bold)
	skipColor = color.New(color.FgYellow)
)

func resultColor(r domain.RunResult) *color.Color {
	switch r {
	case domain.Succeeded:
		return okColor
	case domain.Failed:
		return failColor
	default:
		return skipColor
	}
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	var withTicker bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP trigger endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			ctx, stop := signalContext(cmd)
			defer stop()

			cfg := server.Config{
				Addr:    a.cfg.HTTP.Addr,
				Path:    a.cfg.HTTP.Path,
				History: a.history,
				Debug:   a.cfg.Log.Development,
			}
			if a.registry != nil {
				cfg.Gatherer = a.registry
			}
			srv := server.New(a.manager, cfg, a.log)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return srv.Run(gctx) })
			if withTicker {
				tk := ticker.New(a.manager, ticker.Config{}, a.log)
				if err := tk.Start(gctx); err != nil {
					stop()
					_ = g.Wait()
					return err
				}
				g.Go(func() error {
					<-gctx.Done()
					tk.Stop()
					return nil
				})
			}
			return g.Wait()
		},
	}
	cmd.Flags().BoolVar(&withTicker, "tick", false, "Also run the due jobs every minute from inside the process")
	return cmd
}

func newRunCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the due jobs every minute until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			ctx, stop := signalContext(cmd)
			defer stop()

			tk := ticker.New(a.manager, ticker.Config{
				OnReport: func(r domain.Report) {
					if len(r.Failed) > 0 {
						a.log.Warn("pass had failures", reportFields(r)...)
					}
				},
			}, a.log)
			if err := tk.Start(ctx); err != nil {
				return err
			}
			<-ctx.Done()
			tk.Stop()
			return nil
		},
	}
}

func newTickCommand(opts *rootOptions) *cobra.Command {
	var (
		force   bool
		jobName string
	)

	cmd := &cobra.Command{
		Use:   "tick",
		Short: "Run one dispatch pass and exit",
		Long: `Run one dispatch pass and exit. Meant to be called every minute by an
external scheduler. Exits non-zero when a job that ran failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()
			if jobName != "" {
				ran, result, err := a.manager.RunJob(cmd.Context(), jobName, force)
				if err != nil {
					return err
				}
				if !ran {
					fmt.Fprintf(out, "%s: %s\n", jobName, skipColor.Sprint("not due"))
					return nil
				}
				fmt.Fprintf(out, "%s: %s\n", jobName, resultColor(result).Sprint(result))
				if result != domain.Succeeded {
					return fmt.Errorf("job %s failed", jobName)
				}
				return nil
			}

			report := a.manager.RunDueJobs(cmd.Context(), force)
			fmt.Fprintf(out, "total_jobs=%d executed_jobs=%d failed=%d\n",
				report.TotalJobs, report.ExecutedJobsCount, len(report.Failed))
			for _, name := range report.Failed {
				fmt.Fprintf(out, "  %s %s\n", failColor.Sprint("FAILED"), name)
			}
			if len(report.Failed) > 0 {
				return fmt.Errorf("%d job(s) failed: %s", len(report.Failed), strings.Join(report.Failed, ", "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Run regardless of schedule")
	cmd.Flags().StringVar(&jobName, "job", "", "Run only the named job")
	return cmd
}

func newValidateCommand() *cobra.Command {
	var (
		next     int
		timezone string
	)

	cmd := &cobra.Command{
		Use:   "validate EXPRESSION",
		Short: "Check a cron expression and show its next run times",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, err := cron.Parse(args[0])
			if err != nil {
				return err
			}
			loc := time.Local
			if timezone != "" {
				if loc, err = time.LoadLocation(timezone); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s\n", expr, okColor.Sprint("valid"))
			at := time.Now().In(loc)
			for i := 0; i < next; i++ {
				at, err = expr.Next(at)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, at.Format(time.RFC3339))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&next, "next", "n", 0, "Number of upcoming run times to print")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA time zone for --next (default local)")
	return cmd
}

// listItem is one row of "orbitcron list".
type listItem struct {
	Name       string   `yaml:"name"`
	Schedule   string   `yaml:"schedule"`
	NextRun    string   `yaml:"next_run,omitempty"`
	Attributes []string `yaml:"attributes,omitempty"`
}

func newListCommand(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the configured jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			now := a.manager.Now()
			var items []listItem
			for _, j := range a.manager.Jobs() {
				item := listItem{
					Name:       j.Name(),
					Schedule:   j.ExpressionString(),
					Attributes: j.ExecutionAttributes(),
				}
				if next, err := j.Expression().Next(now); err == nil {
					item.NextRun = next.Format(time.RFC3339)
				} else {
					a.log.Debug("no next run", zap.String("job", item.Name), zap.Error(err))
				}
				items = append(items, item)
			}

			out := cmd.OutOrStdout()
			switch output {
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(items); err != nil {
					return err
				}
				return enc.Close()
			case "table", "":
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tSCHEDULE\tNEXT RUN\tATTRIBUTES")
				for _, it := range items {
					next := it.NextRun
					if next == "" {
						next = "-"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", it.Name, it.Schedule, next, strings.Join(it.Attributes, ","))
				}
				return w.Flush()
			default:
				return fmt.Errorf("unknown output format %q", output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table or yaml")
	return cmd
}
