package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// stdinPath означает чтение лога со стандартного ввода.
const stdinPath = "-"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := command().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// command возвращает cobra-команду, которая разбирает лог и печатает статистику по категориям.
func command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logstats [путь_к_логу]",
		Short: "Статистика длительностей операций из лога",
		Long: `
Logstats читает лог построчно, выбирает строки вида
  <H:MM:SS.ffffff> [info] <категория> took: <число>
и для каждой категории (World tick, Adding <имя>) печатает среднее, максимум,
минимум и выборочное стандартное отклонение. Путь можно передать аргументом,
флагом --path или переменной окружения LOGSTATS_PATH.`,
		Example:      "logstats /tmp/myrra.log --format json",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), parseLevel(cfg.LogLevel))
			opts := []Option{WithLogger(logger)}
			if cfg.Trace {
				opts = append(opts, WithTrace(traceWriter(cmd, cfg)))
			}

			var report *Report
			if cfg.Path == stdinPath {
				report, err = AnalyzeReader(cmd.Context(), cmd.InOrStdin(), opts...)
			} else {
				report, err = Analyze(cmd.Context(), cfg.Path, opts...)
			}
			if err != nil {
				return err
			}

			if cfg.TUI {
				return runUI(report, cfg.Unit, cfg.Path == stdinPath)
			}
			return WriteReport(cmd.OutOrStdout(), report, cfg.Format, cfg.Unit)
		},
	}
	cmd.Flags().AddFlagSet(flags())

	return cmd
}

// traceWriter выбирает, куда печатать длительности: в stdout только рядом с текстовым
// отчётом, иначе JSON перестанет разбираться, а экран TUI их сотрёт.
func traceWriter(cmd *cobra.Command, cfg Config) io.Writer {
	if cfg.TUI || cfg.Format != FormatText {
		return cmd.ErrOrStderr()
	}
	return cmd.OutOrStdout()
}
