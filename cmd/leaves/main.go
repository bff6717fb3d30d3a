// Package main is the entry point for the leaves practice CLI
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/Southclaws/fault/fmsg"
	"github.com/spf13/cobra"

	"github.com/rapidmidiex/leavestui"
	"github.com/rapidmidiex/leavestui/midi"
	"github.com/rapidmidiex/leavestui/practiceui"
	"github.com/rapidmidiex/leavestui/progression"
	"github.com/rapidmidiex/leavestui/transport"
)

var (
	cfg = leavestui.DefaultConfig()

	outputFile string
	choruses   int
	countIn    bool
	noClick    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		msg := err.Error()
		if issue := fmsg.GetIssue(err); issue != "" {
			msg = issue + ": " + msg
		}
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "leaves",
	Short: "Practice the Autumn Leaves changes",
	Long: `leaves plays the Autumn Leaves chord progression with a metronome and shows
the guide tones of every chord on a guitar fretboard.

Examples:
  leaves --tempo 120 --soundfont piano.sf2
  leaves --loop --loop-start 25 --loop-end 28 --display degree
  leaves export -o leaves.mid --choruses 2
  leaves chart`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return leavestui.Run(cfg)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the progression as a Standard MIDI File",
	RunE:  runExport,
}

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Print the chord chart with guide tones",
	RunE:  runChart,
}

func init() {
	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&cfg.Tempo, "tempo", cfg.Tempo, fmt.Sprintf("Tempo in bpm (%d-%d)", transport.MinTempo, transport.MaxTempo))
	pf.StringVar(&cfg.Metronome, "metronome", cfg.Metronome, "Metronome mode (on|off-beat)")
	pf.StringVar(&cfg.Display, "display", cfg.Display, "Guide tone labels (note|degree)")

	// Practice session
	f := rootCmd.Flags()
	f.BoolVar(&cfg.Loop, "loop", cfg.Loop, "Loop a range of bars")
	f.IntVar(&cfg.LoopStart, "loop-start", cfg.LoopStart, "First bar of the loop")
	f.IntVar(&cfg.LoopEnd, "loop-end", cfg.LoopEnd, "Last bar of the loop")
	f.StringVar(&cfg.SoundFont, "soundfont", cfg.SoundFont, "SoundFont (.sf2) used for sound. Silent when empty")
	f.Float64Var(&cfg.VolumeDB, "volume", cfg.VolumeDB, "Master volume in dB")
	f.StringVar(&cfg.TracePath, "trace", cfg.TracePath, "Write every chord and click as JSON lines to this file")
	f.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Log file. Empty discards logs")

	// Export command
	exportCmd.Flags().StringVarP(&outputFile, "output", "o", "leaves.mid", "Output file path")
	exportCmd.Flags().IntVar(&choruses, "choruses", 1, "Times through the chart")
	exportCmd.Flags().BoolVar(&countIn, "count-in", false, "Start with the count-in clicks")
	exportCmd.Flags().BoolVar(&noClick, "no-click", false, "Leave out the click track")

	rootCmd.AddCommand(exportCmd, chartCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	c, err := cfg.Validate()
	if err != nil {
		return err
	}
	metronome, _ := transport.ParseMetronomeMode(c.Metronome)

	out, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	err = midi.Export(w, progression.AutumnLeaves(), midi.ExportOpts{
		Tempo:     c.Tempo,
		Choruses:  choruses,
		Metronome: metronome,
		CountIn:   countIn,
		NoClick:   noClick,
	})
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", outputFile, err)
	}

	fmt.Printf("Wrote %s (%d bpm, %d chorus(es))\n", outputFile, c.Tempo, max(choruses, 1))
	return nil
}

func runChart(cmd *cobra.Command, args []string) error {
	c, err := cfg.Validate()
	if err != nil {
		return err
	}
	display, _ := transport.ParseDisplayMode(c.Display)

	tm, err := practiceui.ChartTable(progression.AutumnLeaves(), display)
	if err != nil {
		return err
	}
	fmt.Println(tm.View())
	return nil
}
