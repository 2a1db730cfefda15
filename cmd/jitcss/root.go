package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/jitcss"
	"github.com/npillmayer/jitcss/config"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// tracer traces with key 'jitcss'.
func tracer() tracing.Trace {
	return tracing.Select("jitcss")
}

var rootCmd = &cobra.Command{
	Use:           "jitcss",
	Short:         "Generate utility CSS on demand",
	Long:          "jitcss scans content files for utility classes and generates the CSS for exactly these classes.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// traceKeys are the tracers switched to debug level by --debug.
var traceKeys = []string{
	"jitcss", "jitcss.engine", "jitcss.plugins", "jitcss.tracking",
	"jitcss.extract", "jitcss.config", "jitcss.cssom", "jitcss.selector",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default jitcss.toml)")
	rootCmd.PersistentFlags().StringP("input", "i", "", "source stylesheet (default: all layers)")
	rootCmd.PersistentFlags().Bool("debug", false, "trace at debug level")
}

func initConfig() {
	if debug, _ := rootCmd.PersistentFlags().GetBool("debug"); debug {
		for _, key := range traceKeys {
			tracing.Select(key).SetTraceLevel(tracing.LevelDebug)
		}
	}
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("jitcss")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("JITCSS")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

const defaultSource = "@tailwind base;\n@tailwind components;\n@tailwind utilities;\n@tailwind variants;\n"

// input collects what a build needs from flags and configuration.
func input(cmd *cobra.Command) (jitcss.Input, error) {
	var in jitcss.Input
	in.CSS = defaultSource
	if path, _ := cmd.Flags().GetString("input"); path != "" {
		data, err := readSource(path)
		if err != nil {
			return in, err
		}
		in.CSS = string(data)
		if path != "-" {
			in.From = path
		}
	}
	if used := viper.ConfigFileUsed(); used != "" {
		if _, err := os.Stat(used); err == nil {
			in.ConfigPath = used
			return in, nil
		} else if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
			return in, fmt.Errorf("%w: %s", config.ErrNotFound, cfgFile)
		}
	}
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return in, fmt.Errorf("failed to load config: %w", err)
	}
	in.Config = &cfg
	return in, nil
}

func readSource(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("source stylesheet %s does not exist", path)
	}
	return data, err
}

// output writes a built stylesheet to a file or to stdout.
func output(cmd *cobra.Command, css string) error {
	path, _ := cmd.Flags().GetString("output")
	if path == "" || path == "-" {
		_, err := io.WriteString(cmd.OutOrStdout(), css)
		return err
	}
	return os.WriteFile(path, []byte(css), 0o644)
}
