package analysis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/roach88/aedtkit/internal/automation"
)

// LinearSweepCount is the number of points in a linear frequency sweep.
const LinearSweepCount = 451

// FrequencySweep describes a linear-count sweep attached to Setup.
// Fast selects a fast sweep; otherwise the sweep interpolates.
type FrequencySweep struct {
	Setup string  `validate:"required"`
	Unit  string  `validate:"required,oneof=Hz kHz MHz GHz THz"`
	Start float64 `validate:"gte=0"`
	Stop  float64 `validate:"gtfield=Start"`
	Fast  bool
}

// DiscreteSweep describes a single-frequency sweep. Frequency carries its
// unit, e.g. "2.5GHz".
type DiscreteSweep struct {
	Setup     string `validate:"required"`
	Name      string `validate:"required"`
	Frequency string `validate:"required"`
}

func formatFreq(v float64, unit string) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + unit
}

// Args returns the automation arguments for the sweep.
func (s FrequencySweep) Args() automation.Args {
	sweepType := "Interpolating"
	if s.Fast {
		sweepType = "Fast"
	}
	args := automation.Args{"Name:Sweep"}.Props(
		"IsEnabled", true,
		"RangeType", "LinearCount",
		"RangeStart", formatFreq(s.Start, s.Unit),
		"RangeEnd", formatFreq(s.Stop, s.Unit),
		"RangeCount", LinearSweepCount,
		"Type", sweepType,
		"SaveFields", false,
		"SaveRadFields", false,
	)
	if s.Fast {
		return args.Props(
			"GenerateFieldsForAllFreqs", false,
			"ExtrapToDC", false,
		)
	}
	return args.Props(
		"InterpTolerance", 0.5,
		"InterpMaxSolns", 250,
		"InterpMinSolns", 0,
		"InterpMinSubranges", 1,
		"ExtrapToDC", false,
		"InterpUseS", true,
		"InterpUsePortImped", false,
		"InterpUsePropConst", true,
		"UseDerivativeConvergence", false,
		"InterpDerivTolerance", 0.2,
		"UseFullBasis", true,
		"EnforcePassivity", true,
		"PassivityErrorTolerance", 0.0001,
	)
}

// Args returns the automation arguments for the sweep.
func (s DiscreteSweep) Args() automation.Args {
	return automation.NewArgs(s.Name).Props(
		"IsEnabled", true,
		"RangeType", "SinglePoints",
		"RangeStart", s.Frequency,
		"RangeEnd", s.Frequency,
		"SaveSingleField", false,
		"Type", "Discrete",
		"SaveFields", true,
		"SaveRadFields", false,
		"ExtrapToDC", false,
	)
}

// CreateFrequencySweep inserts a linear sweep and returns the setup name.
func (e *Extractor) CreateFrequencySweep(ctx context.Context, s FrequencySweep) (string, error) {
	if err := e.require(Backend3D{}); err != nil {
		return "", err
	}
	if err := validateRequest(s); err != nil {
		return "", err
	}
	if err := e.port.InsertFrequencySweep(ctx, s.Setup, s.Args()); err != nil {
		return "", fmt.Errorf("insert sweep into %q: %w", s.Setup, err)
	}
	kind := "interpolating"
	if s.Fast {
		kind = "fast"
	}
	e.logger.Info("frequency sweep created", "setup", s.Setup, "type", kind)
	return s.Setup, nil
}

// CreateDiscreteSweep inserts a single-point sweep.
func (e *Extractor) CreateDiscreteSweep(ctx context.Context, s DiscreteSweep) error {
	if err := e.require(Backend3D{}); err != nil {
		return err
	}
	if err := validateRequest(s); err != nil {
		return err
	}
	if err := e.port.InsertFrequencySweep(ctx, s.Setup, s.Args()); err != nil {
		return fmt.Errorf("insert sweep into %q: %w", s.Setup, err)
	}
	e.logger.Info("discrete sweep created", "setup", s.Setup, "name", s.Name, "frequency", s.Frequency)
	return nil
}
