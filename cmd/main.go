package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/procnet/route/internal/config"
	"github.com/procnet/route/internal/logger"
	"github.com/procnet/route/internal/metrics"
	"github.com/procnet/route/internal/monitor"
	"github.com/procnet/route/internal/sysinfo"
	"github.com/procnet/route/routetable"
)

var (
	version = "1.0.0"

	configFile  string
	silentMode  bool
	verboseMode bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "procroute",
		Short: "Decode the kernel route tables from /proc/net",
		Long:  `A decoder for the Linux route-table pseudo-files /proc/net/route and /proc/net/ipv6_route.`,
		Run:   runList,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print both route tables",
		Long:  `Decode /proc/net/route and /proc/net/ipv6_route and print every entry.`,
		Run:   runList,
	}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the route tables for changes",
		Long:  `Poll both route tables and log an event whenever the content of one changes.`,
		Run:   runWatch,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show version, build information and kernel details.`,
		Run:   showVersion,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&silentMode, "silent", "s", false, "Silent mode (no output)")
	rootCmd.PersistentFlags().BoolVarP(&verboseMode, "verbose", "v", false, "Verbose mode (debug level logging)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if silentMode {
		cfg.SilentMode = true
	}
	if verboseMode {
		cfg.LogLevel = "debug"
	}

	return cfg
}

func runList(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	log := logger.New(cfg.LogLevel)

	if err := listIPv4(cfg, log); err != nil {
		log.Error("Failed to read IPv4 route table", "error", err)
		os.Exit(1)
	}
	if err := listIPv6(cfg, log); err != nil {
		log.Error("Failed to read IPv6 route table", "error", err)
		os.Exit(1)
	}
}

func listIPv4(cfg *config.Config, log *logger.Logger) error {
	src, err := routetable.OpenFileSource(cfg.IPv4RoutePath)
	if err != nil {
		return err
	}
	tab := routetable.NewIPv4Table(src, routetable.WithHeaderLines(cfg.IPv4HeaderLines))
	defer tab.Close()

	entries, parseErrs := tab.Entries()
	for _, err := range parseErrs {
		log.ParseFailure(routetable.FamilyIPv4.String(), err)
	}

	if cfg.SilentMode {
		return nil
	}

	fmt.Printf("IPv4 routes (%s):\n", cfg.IPv4RoutePath)
	fmt.Printf("%-10s %-20s %-16s %-7s %s\n", "Iface", "Destination", "Gateway", "Metric", "Flags")
	for _, e := range entries {
		fmt.Printf("%-10s %-20s %-16s %-7d %s\n",
			e.Iface, e.Network().String(), e.Gateway.String(), e.Metric, e.Flags)
	}
	fmt.Println()

	return nil
}

func listIPv6(cfg *config.Config, log *logger.Logger) error {
	src, err := routetable.OpenFileSource(cfg.IPv6RoutePath)
	if err != nil {
		return err
	}
	tab := routetable.NewIPv6Table(src, routetable.WithHeaderLines(cfg.IPv6HeaderLines))
	defer tab.Close()

	entries, parseErrs := tab.Entries()
	for _, err := range parseErrs {
		log.ParseFailure(routetable.FamilyIPv6.String(), err)
	}

	if cfg.SilentMode {
		return nil
	}

	fmt.Printf("IPv6 routes (%s):\n", cfg.IPv6RoutePath)
	fmt.Printf("%-10s %-28s %-28s %-8s %s\n", "Iface", "Destination", "Next Hop", "Metric", "Flags")
	for _, e := range entries {
		fmt.Printf("%-10s %-28s %-28s %-8d %s\n",
			e.Name, e.DestNetwork().String(), e.NextHop.String(), e.Metric, e.Flags)
	}
	fmt.Println()

	return nil
}

func runWatch(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	log := logger.New(cfg.LogLevel)
	log.ServiceStart(version, fmt.Sprintf("%d", os.Getpid()))
	log.ConfigLoaded(configFile, cfg.IPv4RoutePath, cfg.IPv6RoutePath)

	m := metrics.NewMetrics()
	mon, err := monitor.New(cfg, log, m)
	if err != nil {
		log.Error("Failed to create monitor", "error", err)
		os.Exit(1)
	}

	if err := mon.Start(); err != nil {
		log.Error("Failed to start monitor", "error", err)
		os.Exit(1)
	}
	defer mon.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case ev := <-mon.Events():
			if !cfg.SilentMode {
				fmt.Printf("[%s] %s table changed: %d entries (signature %#016x)\n",
					ev.Timestamp.Format("15:04:05"), ev.Family, ev.Entries, ev.Signature)
			}
		case sig := <-sigChan:
			log.Info("Shutting down", "signal", sig.String())
			scans, failures, entries, parseFailures, changes := m.GetStats()
			log.Info("Final statistics",
				"scans", scans,
				"scan_failures", failures,
				"entries_decoded", entries,
				"parse_failures", parseFailures,
				"changes", changes)
			return
		}
	}
}

func showVersion(_ *cobra.Command, _ []string) {
	fmt.Printf("procroute %s\n", version)
	fmt.Printf("Go: %s\n", runtime.Version())
	fmt.Printf("Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)

	if kernel, err := sysinfo.Kernel(); err == nil {
		fmt.Printf("Kernel: %s\n", kernel)
	}
}
