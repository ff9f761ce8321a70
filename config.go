package main

import (
	"slices"
	"strings"

	"github.com/hyp3rd/ewrap"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envPrefix — префикс переменных окружения: LOGSTATS_PATH, LOGSTATS_FORMAT и т.д.
const envPrefix = "LOGSTATS"

// Имена флагов; они же ключи viper.
const (
	flagPath     = "path"
	flagFormat   = "format"
	flagUnit     = "unit"
	flagTrace    = "trace"
	flagTUI      = "tui"
	flagLogLevel = "log-level"
	flagEnvFile  = "env-file"
)

// Config — настройки одного запуска.
type Config struct {
	Path     string
	Format   string
	Unit     string
	Trace    bool
	TUI      bool
	LogLevel string
}

func flags() *flag.FlagSet {
	flags := &flag.FlagSet{}
	flags.StringP(flagPath, "f", "", "путь к лог-файлу (\"-\" — стандартный ввод)")
	flags.String(flagFormat, FormatText, "формат отчёта: "+strings.Join(ReportFormats, ", "))
	flags.String(flagUnit, DefaultUnit, "подпись единиц длительности в отчёте")
	flags.Bool(flagTrace, false, "печатать каждую распознанную длительность")
	flags.Bool(flagTUI, false, "интерактивный просмотр отчёта")
	flags.String(flagLogLevel, "warn", "уровень диагностики: debug, info, warn, error")
	flags.String(flagEnvFile, "", "файл с переменными окружения LOGSTATS_*")
	return flags
}

// loadConfig собирает настройки: аргумент > флаг > переменная окружения > значение по умолчанию.
func loadConfig(cmd *cobra.Command, args []string) (Config, error) {
	if envFile, _ := cmd.Flags().GetString(flagEnvFile); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, ewrap.Wrap(err, "load env file "+envFile)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return Config{}, ewrap.Wrap(err, "bind flags")
	}

	cfg := Config{
		Path:     v.GetString(flagPath),
		Format:   strings.ToLower(v.GetString(flagFormat)),
		Unit:     v.GetString(flagUnit),
		Trace:    v.GetBool(flagTrace),
		TUI:      v.GetBool(flagTUI),
		LogLevel: v.GetString(flagLogLevel),
	}
	if len(args) > 0 {
		cfg.Path = args[0]
	}

	if cfg.Path == "" {
		return Config{}, ewrap.Wrap(ErrNoPath, "укажите путь аргументом, флагом --path или переменной "+envPrefix+"_PATH")
	}
	if !slices.Contains(ReportFormats, cfg.Format) {
		return Config{}, ewrap.Wrapf(ErrUnknownFormat, "%q", cfg.Format)
	}
	if cfg.Unit == "" {
		cfg.Unit = DefaultUnit
	}
	return cfg, nil
}
