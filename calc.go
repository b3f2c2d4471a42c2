package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msomdec/knitshape/internal/domain"
	"github.com/msomdec/knitshape/internal/service"
)

var errInvalidResult = errors.New("no valid shaping for these inputs")

var straightCmd = &cobra.Command{
	Use:   "straight",
	Short: "Shape a straight edge: change N stitches over R rows",
	Example: `  knitshape straight --stitches 50 --rows 26
  knitshape straight --stitches 12 --rows 60 --increase --gentle
  knitshape straight --width 5 --height 10 --gauge-stitches 28 --gauge-rows 40`,
	Args: cobra.NoArgs,
	RunE: runStraight,
}

var neckCmd = &cobra.Command{
	Use:     "neck",
	Short:   "Split a crew neck decrease for one side",
	Example: "  knitshape neck --stitches 15\n  knitshape neck --stitches 20 --rule quarter",
	Args:    cobra.NoArgs,
	RunE:    runNeck,
}

var gaugeCmd = &cobra.Command{
	Use:     "gauge",
	Short:   "Convert a measurement into stitches and rows",
	Example: "  knitshape gauge --width 20 --height 15 --gauge-stitches 28 --gauge-rows 40",
	Args:    cobra.NoArgs,
	RunE:    runGauge,
}

func init() {
	straightCmd.Flags().Int("stitches", 0, "stitches to change")
	straightCmd.Flags().Int("rows", 0, "rows available, including the final plain row")
	straightCmd.Flags().Bool("gentle", false, "knit the smaller or sparser segment first")
	straightCmd.Flags().Bool("increase", false, "increase instead of decrease")
	straightCmd.Flags().Bool("plain", false, "print plain text without styling")
	addMeasurementFlags(straightCmd, true)

	neckCmd.Flags().Int("stitches", 0, "stitches to remove on one side of the neck")
	neckCmd.Flags().String("rule", "", "proportional split (third|quarter) [env CREW_NECK_RULE]")
	neckCmd.Flags().Bool("plain", false, "print plain text without styling")
	addMeasurementFlags(neckCmd, false)

	addMeasurementFlags(gaugeCmd, true)
}

func addMeasurementFlags(cmd *cobra.Command, withHeight bool) {
	cmd.Flags().Float64("width", 0, "width to shape, converted with the gauge")
	if withHeight {
		cmd.Flags().Float64("height", 0, "height to shape over, converted with the gauge")
	}
	cmd.Flags().String("unit", "cm", "unit of width and height (cm|in)")
	cmd.Flags().Float64("gauge-stitches", 0, "stitches in the gauge swatch")
	cmd.Flags().Float64("gauge-rows", 0, "rows in the gauge swatch")
	cmd.Flags().Float64("gauge-per", 10, "swatch size the gauge counts cover")
	cmd.Flags().String("gauge-unit", "cm", "unit of the swatch size (cm|in)")
}

// measurement holds a gauge and the lengths to convert with it.
type measurement struct {
	gauge  service.Gauge
	width  float64
	height float64
	unit   service.Unit
}

func measurementFromFlags(cmd *cobra.Command) (measurement, error) {
	f := cmd.Flags()
	var m measurement
	var err error

	m.width, _ = f.GetFloat64("width")
	if f.Lookup("height") != nil {
		m.height, _ = f.GetFloat64("height")
	}
	unit, _ := f.GetString("unit")
	if m.unit, err = service.ParseUnit(unit); err != nil {
		return m, err
	}
	gaugeUnit, _ := f.GetString("gauge-unit")
	gu, err := service.ParseUnit(gaugeUnit)
	if err != nil {
		return m, err
	}
	m.gauge.Unit = gu
	m.gauge.Stitches, _ = f.GetFloat64("gauge-stitches")
	m.gauge.Rows, _ = f.GetFloat64("gauge-rows")
	m.gauge.Per, _ = f.GetFloat64("gauge-per")
	return m, nil
}

// usesGauge reports whether the caller asked for measurement conversion.
func usesGauge(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("gauge-stitches") || cmd.Flags().Changed("gauge-rows")
}

func runStraight(cmd *cobra.Command, _ []string) error {
	if err := setupCLILogger(cmd.ErrOrStderr()); err != nil {
		return err
	}

	f := cmd.Flags()
	in := domain.StraightInput{
		Distribution: domain.DistributionAggressive,
		Operation:    domain.OperationDecrease,
	}
	in.Stitches, _ = f.GetInt("stitches")
	in.Rows, _ = f.GetInt("rows")
	if gentle, _ := f.GetBool("gentle"); gentle {
		in.Distribution = domain.DistributionGentle
	}
	if increase, _ := f.GetBool("increase"); increase {
		in.Operation = domain.OperationIncrease
	}

	if usesGauge(cmd) {
		m, err := measurementFromFlags(cmd)
		if err != nil {
			return err
		}
		if in.Stitches, err = m.gauge.StitchesFor(m.width, m.unit); err != nil {
			return err
		}
		if in.Rows, err = m.gauge.RowsFor(m.height, m.unit); err != nil {
			return err
		}
	}

	res := service.NewStraightLineShaper().Calculate(in)

	plain, _ := f.GetBool("plain")
	if plain {
		fmt.Fprintln(cmd.OutOrStdout(), service.FormatStraight(res))
	} else {
		heading := fmt.Sprintf("%s %d stitches over %d rows", in.Operation.Verb(), in.Stitches, in.Rows)
		fmt.Fprintln(cmd.OutOrStdout(), renderResult(heading, res.Notation,
			fmt.Sprintf("%d rows used", res.TotalRowsUsed), res.Instructions, res.Warnings, res.IsValid))
	}

	if !res.IsValid {
		return errInvalidResult
	}
	return nil
}

func runNeck(cmd *cobra.Command, _ []string) error {
	if err := setupCLILogger(cmd.ErrOrStderr()); err != nil {
		return err
	}

	f := cmd.Flags()
	total, _ := f.GetInt("stitches")
	if usesGauge(cmd) {
		m, err := measurementFromFlags(cmd)
		if err != nil {
			return err
		}
		if total, err = m.gauge.StitchesFor(m.width, m.unit); err != nil {
			return err
		}
	}

	ruleName, _ := f.GetString("rule")
	if ruleName == "" {
		ruleName = envCrewNeckRule()
	}
	rule, err := domain.ParseCrewNeckRule(ruleName)
	if err != nil {
		return err
	}

	res := service.NewCrewNeckShaper(rule).Calculate(total)

	plain, _ := f.GetBool("plain")
	if plain {
		fmt.Fprintln(cmd.OutOrStdout(), service.FormatCrewNeck(res))
	} else {
		summary := fmt.Sprintf("cast off %d, every row %d, every other row %d; %d rows used",
			res.CastOff, res.EveryRowDecrease, res.EORDecrease, res.TotalRowsUsed)
		heading := fmt.Sprintf("Crew neck, %d stitches per side (%s rule)", total, rule)
		fmt.Fprintln(cmd.OutOrStdout(), renderResult(heading, res.Notation, summary, res.Instructions, res.Warnings, res.IsValid))
	}

	if !res.IsValid {
		return errInvalidResult
	}
	return nil
}

func runGauge(cmd *cobra.Command, _ []string) error {
	m, err := measurementFromFlags(cmd)
	if err != nil {
		return err
	}
	stitches, err := m.gauge.StitchesFor(m.width, m.unit)
	if err != nil {
		return err
	}
	rows, err := m.gauge.RowsFor(m.height, m.unit)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%g x %g %s = %d stitches x %d rows\n", m.width, m.height, m.unit, stitches, rows)
	return nil
}
