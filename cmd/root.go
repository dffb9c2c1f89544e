package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"k8s.io/utils/clock"

	"github.com/sherine-k/consultation/pkg/chart"
	"github.com/sherine-k/consultation/pkg/config"
	"github.com/sherine-k/consultation/pkg/eventlog"
	"github.com/sherine-k/consultation/pkg/report"
	"github.com/sherine-k/consultation/pkg/simulation"
)

var (
	configFile       string
	runDuration      time.Duration
	logLevel         string
	showChart        bool
	showTimeline     bool
	timelineLimit    int
	showEventSummary bool
)

var rootCmd = &cobra.Command{
	Use:   "consultation",
	Short: "Legal consultation office simulator",
	Long: `A CLI tool that simulates a legal consultation office.

Clients arrive at random, wait in line and are served by one high-category
lawyer and five regular lawyers. Regular clients borrow the high-category
lawyer when it is idle. The simulation runs for the configured duration (or
until interrupted), appends every event to a text log and reports the
average waiting time along with a utilization chart.`,
	SilenceUsage: true,
	RunE:         runSimulation,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to configuration file (defaults are used when empty)")
	rootCmd.Flags().DurationVarP(&runDuration, "duration", "d", 0, "Wall time to run before stopping; overrides runDuration from the config")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log verbosity level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&showChart, "chart", true, "Show lawyer utilization chart")
	rootCmd.Flags().BoolVarP(&showTimeline, "timeline", "t", false, "Show detailed timeline of events")
	rootCmd.Flags().IntVarP(&timelineLimit, "timeline-limit", "l", 50, "Limit number of timeline events to display")
	rootCmd.Flags().BoolVarP(&showEventSummary, "summary", "s", true, "Show event summary")
}

func runSimulation(cmd *cobra.Command, args []string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logrus.SetLevel(level)

	cfg := config.Default()
	if configFile != "" {
		cfg, err = config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		logrus.Infof("Loaded configuration from %s", configFile)
	}
	if cmd.Flags().Changed("duration") {
		cfg.RunDuration = runDuration
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"arrivalMean": cfg.ArrivalMean,
		"serviceMean": cfg.ServiceMean,
		"preference":  cfg.PreferenceMode,
		"timeScale":   cfg.TimeScale,
		"logFile":     cfg.LogFile,
	}).Info("Starting consultation simulation")

	simClock := simulation.NewScaledClock(clock.RealClock{}, cfg.TimeScale)
	recorder := simulation.NewRecorder(simClock)
	status := simulation.MultiStatusSink{recorder, eventlog.LogrusStatusSink{}}
	controller, err := simulation.NewController(cfg, simClock, status, eventlog.NewFileSink(cfg.LogFile))
	if err != nil {
		return err
	}
	defer controller.Shutdown()

	var reporter *report.Reporter
	if cfg.ReportSchedule != "" {
		reporter, err = report.New(cfg.ReportSchedule, controller)
		if err != nil {
			return err
		}
	}

	if err := controller.Start(); err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	if reporter != nil {
		reporter.Start()
	}

	waitForEnd(cfg.RunDuration)

	if reporter != nil {
		reporter.Stop()
	}
	avg, err := controller.Stop()
	if err != nil && !errors.Is(err, simulation.ErrNotRunning) {
		return fmt.Errorf("simulation failed: %w", err)
	}

	chartGen := chart.NewGenerator()
	events := recorder.GetEvents()

	fmt.Println(chartGen.GenerateLawyerBoard(controller.Lawyers()))

	if showChart {
		timePoints := recorder.Sample(sampleInterval(recorder.GetTimePoints()))
		fmt.Println(chartGen.GenerateUtilizationChart(timePoints, simulation.RegularLawyerCount+1))
	}

	if showEventSummary {
		fmt.Println(chartGen.GenerateEventSummary(events, avg))
	}

	if showTimeline {
		fmt.Println(chartGen.GenerateDetailedTimeline(events, timelineLimit))
	}

	fmt.Printf("Average waiting time: %.2f seconds\n", avg)
	return nil
}

// waitForEnd blocks for d, or until SIGINT/SIGTERM when d is zero or a signal
// arrives first
func waitForEnd(d time.Duration) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	<-ctx.Done()
}

// sampleInterval spreads the run over roughly one sample per chart column
func sampleInterval(points []simulation.TimePoint) time.Duration {
	if len(points) < 2 {
		return time.Second
	}
	span := points[len(points)-1].Time.Sub(points[0].Time)
	interval := span / 74
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}
