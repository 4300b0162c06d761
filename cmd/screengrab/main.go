package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/outframe/screengrab"
	"github.com/outframe/screengrab/internal/config"
	"github.com/outframe/screengrab/internal/encode"
	"github.com/outframe/screengrab/internal/logging"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	cfgFile string

	monitorIndex int
	allMonitors  bool
	outputPath   string
	formatName   string
	asJSON       bool
)

var rootCmd = &cobra.Command{
	Use:   "screengrab",
	Short: "Single-shot screen capture",
	Long:  `screengrab - capture single screenshots of individual monitors on Windows, macOS, and Linux`,
}

var monitorsCmd = &cobra.Command{
	Use:   "monitors",
	Short: "List attached monitors",
	Run: func(cmd *cobra.Command, args []string) {
		listMonitors()
	},
}

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture one or all monitors to image files",
	Run: func(cmd *cobra.Command, args []string) {
		capture(cmd)
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the capture environment",
	Run: func(cmd *cobra.Command, args []string) {
		doctor()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Run: func(cmd *cobra.Command, args []string) {
		configInit()
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("screengrab v%s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is screengrab.yaml in the user config dir)")

	monitorsCmd.Flags().BoolVar(&asJSON, "json", false, "print the monitor list as JSON")

	captureCmd.Flags().IntVarP(&monitorIndex, "monitor", "m", -1, "monitor index to capture (default from config)")
	captureCmd.Flags().BoolVarP(&allMonitors, "all", "a", false, "capture every monitor")
	captureCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (single capture) or directory")
	captureCmd.Flags().StringVarP(&formatName, "format", "f", "", "image format: png, ppm, raw (default from config)")

	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(monitorsCmd)
	rootCmd.AddCommand(captureCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config, applies validation, and wires up logging.
func loadConfig() *config.Config {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logging.Init(cfg.LogFormat, cfg.LogLevel, nil)

	result := cfg.ValidateTiered()
	if result.HasFatals() {
		for _, err := range result.Fatals {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		}
		os.Exit(1)
	}

	return cfg
}

func listMonitors() {
	loadConfig()
	log := logging.L("cli")

	session := screengrab.NewSession()
	count := session.MonitorCount()
	if count == 0 {
		if err := session.LastError(); err != nil {
			log.Error("monitor enumeration failed", logging.KeyError, err)
			os.Exit(1)
		}
		fmt.Println("No monitors attached.")
		return
	}

	monitors := session.Monitors()
	if asJSON {
		out, err := json.MarshalIndent(monitors, "", "  ")
		if err != nil {
			log.Error("encode monitor list", logging.KeyError, err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}

	for _, m := range monitors {
		primary := ""
		if m.IsPrimary {
			primary = " (primary)"
		}
		fmt.Printf("[%d] %s %dx%d at %d,%d id %#x%s\n",
			m.Index, m.Name, m.Width, m.Height, m.X, m.Y, m.PlatformID, primary)
	}
}

func capture(cmd *cobra.Command) {
	cfg := loadConfig()
	log := logging.L("cli")

	name := cfg.Format
	if formatName != "" {
		name = formatName
	}
	format, err := encode.Parse(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	index := cfg.Monitor
	if cmd.Flags().Changed("monitor") {
		index = monitorIndex
	}

	session := screengrab.NewSession()
	count := session.MonitorCount()
	if count == 0 {
		if err := session.LastError(); err != nil {
			log.Error("monitor enumeration failed", logging.KeyError, err)
		} else {
			fmt.Fprintln(os.Stderr, "No monitors attached.")
		}
		os.Exit(1)
	}

	indices := []int{index}
	if allMonitors {
		indices = indices[:0]
		for i := 0; i < count; i++ {
			indices = append(indices, i)
		}
	}

	failed := false
	for _, i := range indices {
		if err := captureOne(session, i, format, cfg.OutputDir, log); err != nil {
			log.Error("capture failed", logging.KeyMonitor, i, logging.KeyError, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func captureOne(session *screengrab.Session, index int, format encode.Format, outputDir string, log *slog.Logger) error {
	start := time.Now()
	frame, err := session.Capture(index)
	if err != nil {
		return err
	}
	defer session.Release(frame)

	path := outputPath
	if path == "" || allMonitors {
		dir := outputDir
		if path != "" {
			dir = path
		}
		name := fmt.Sprintf("screengrab-%d-%s.%s", index, time.Now().Format("20060102-150405"), format.Ext())
		path = filepath.Join(dir, name)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode.Encode(f, format, frame.RGBA()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.Info("captured",
		logging.KeyMonitor, index,
		"width", frame.Width,
		"height", frame.Height,
		"path", path,
		logging.KeyDurationMs, time.Since(start).Milliseconds())
	fmt.Println(path)
	return nil
}

func configInit() {
	cfg := config.Default()
	if err := config.SaveTo(cfg, cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Wrote default config.")
}
