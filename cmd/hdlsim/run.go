package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/myorg/hdlsim/internal/agent"
	"github.com/myorg/hdlsim/internal/config"
	"github.com/myorg/hdlsim/internal/histogram"
	"github.com/myorg/hdlsim/internal/process"
	"github.com/myorg/hdlsim/internal/report"
	"github.com/myorg/hdlsim/internal/rtlmodel"
	"github.com/myorg/hdlsim/internal/sim"
	"github.com/myorg/hdlsim/internal/signal"
	"github.com/myorg/hdlsim/internal/trigger"
)

var (
	runConfigPath string
	runOutputPath string
	runFormat     string
	runVerbose    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scenario against the built-in scripted RTL back-end",
	Long: `run builds a clock, a reset, and (when enabled in the scenario) a
ready/valid and a UART agent, wires them against rtlmodel.ScriptedModel, and
drives the whole thing through sim.HdlSimulator until the configured bound.
It has no real RTL underneath it: the scripted back-end resolves each
instant with one combinational settle pass and one end-of-step pass, so
this is a smoke test of the scheduler and its agents, not of any
particular circuit.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "scenario YAML file (defaults to built-in defaults)")
	runCmd.Flags().StringVarP(&runOutputPath, "output", "o", "", "write a JSON report to this path in addition to the console summary")
	runCmd.Flags().StringVarP(&runFormat, "format", "f", "", "override output.format from the scenario (console|json)")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "enable debug-level scheduler logging")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}
	if runFormat != "" {
		cfg.Output.Format = runFormat
	}

	level := zerolog.InfoLevel
	if runVerbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()

	backend := rtlmodel.NewScriptedModel()
	collector := histogram.NewCollector()
	scheduler := sim.New(backend, logger).WithObserver(collector)

	clkSig := signal.NewMemory("clk")
	rstSig := signal.NewMemory("rst")

	clk := agent.NewClock(clkSig, cfg.Clock.Period)
	clk.InitWait = cfg.Clock.InitWait

	var rstDriver sim.ProcessFactory
	if cfg.Reset.ActiveLow {
		rst := agent.NewPullUp(rstSig, cfg.Reset.InitDelay)
		rstDriver = rst.Driver
	} else {
		rst := agent.NewPullDown(rstSig, cfg.Reset.InitDelay)
		rstDriver = rst.Driver
	}

	processes := []sim.ProcessFactory{clk.Driver, clk.Monitor, rstDriver}

	var rv *agent.ReadyValid
	if cfg.ReadyVld.Enabled {
		readySig := signal.NewMemory("ready")
		validSig := signal.NewMemory("valid")
		dataSig := signal.NewMemory("data")
		rv = agent.NewReadyValid(readySig, validSig, dataSig)
		rv.Rst = rstSig
		rv.RstActiveLow = cfg.ReadyVld.RstActiveLow
		for i := int64(0); i < 8; i++ {
			rv.Send(signal.Defined(i))
		}
		processes = append(processes,
			edgeLoopFactory(clkSig, sim.RisingEdge, rv.MonitorOnce),
			edgeLoopFactory(clkSig, sim.RisingEdge, rv.DriverOnce),
		)
	}

	var ua *agent.Uart
	if cfg.Uart.Enabled {
		uartSig := signal.NewMemory("uart_tx")
		ua = agent.NewUart(uartSig, cfg.Uart.Baud)
		ua.Send('h')
		ua.Send('i')
		processes = append(processes, ua.Monitor, ua.Driver)
	}

	ctx := context.Background()
	reason, err := scheduler.Run(ctx, cfg.Run.Until, processes...)
	if err != nil {
		return fmt.Errorf("running simulation: %w", err)
	}

	agents := map[string]report.AgentStats{
		"clk0": {Name: "clk0", Counters: map[string]int64{"edges": int64(len(clk.Edges))}},
	}
	if rv != nil {
		agents["readyvalid0"] = report.AgentStats{
			Name: "readyvalid0",
			Counters: map[string]int64{
				"received": int64(len(rv.Received)),
				"queued":   int64(len(rv.Queue)),
			},
		}
	}
	if ua != nil {
		agents["uart0"] = report.AgentStats{
			Name: "uart0",
			Counters: map[string]int64{
				"received": int64(len(ua.Received)),
				"pending":  int64(len(ua.Outgoing)),
			},
		}
	}

	snap := collector.GetSnapshot()
	runInfo := report.RunInfo{
		StartTime:    snap.StartTime,
		EndTime:      snap.StartTime.Add(snap.Duration),
		Duration:     snap.Duration,
		StopReason:   reason.String(),
		ClockPeriod:  cfg.Clock.Period,
		UntilBound:   cfg.Run.Until,
		FinalSimTime: scheduler.Now(),
	}

	rpt := report.GenerateReport(runInfo, snap, agents)
	rpt.Summary.Instants = scheduler.Instants()

	if runOutputPath != "" {
		if err := rpt.WriteToFile(runOutputPath); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}

	switch cfg.Output.Format {
	case "json":
		data, err := rpt.ToJSON()
		if err != nil {
			return fmt.Errorf("serializing report: %w", err)
		}
		fmt.Println(string(data))
	default:
		formatter := report.NewConsoleFormatter().WithReportPath(runOutputPath)
		formatter.PrintSummary(rpt)
	}

	return nil
}

func loadRunConfig() (*config.Config, error) {
	if runConfigPath == "" {
		return config.LoadConfigWithDefaults(), nil
	}
	return config.LoadConfig(runConfigPath)
}

// edgeLoopFactory wraps a single-iteration process factory (a ReadyValid
// MonitorOnce/DriverOnce or similar) in a sim.CallbackLoop so it
// re-arms on every rising edge of clkSig, composing the overlay from
// outside the scheduler core.
func edgeLoopFactory(clkSig signal.Signal, edge sim.EdgeKind, newChild func(s *sim.HdlSimulator) process.Process) sim.ProcessFactory {
	return func(s *sim.HdlSimulator) process.Process {
		loop := sim.NewCallbackLoop(s, edge, newChild, func() bool { return true })
		return process.New(func(yield process.Yield) {
			for {
				yield(trigger.WaitCombStable{})
				if v := clkSig.Read(); v.Defined {
					if child := loop.OnLevel(int(v.Int)); child != nil {
						yield(child)
					}
				}

				// Escape through timeslot_end and a 1-tick timer before
				// re-arming comb_stable: re-yielding it directly from
				// inside its own active drain would re-enqueue onto the
				// same queue being drained and never return.
				yield(trigger.WaitTimeslotEnd{})
				yield(trigger.Timer{Delay: 1})
			}
		})
	}
}
