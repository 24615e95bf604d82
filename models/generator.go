package models

import (
	"fmt"
	"math"
	"strings"

	"github.com/bcdannyboy/mcpayoff/payoff"
)

// GeneratorParams collects the parameters of every supported model.
// Only the fields of the selected model are read.
type GeneratorParams struct {
	Drift      float64 `mapstructure:"drift"`
	Volatility float64 `mapstructure:"volatility"`

	JumpIntensity  float64 `mapstructure:"jump_intensity"`
	JumpMean       float64 `mapstructure:"jump_mean"`
	JumpVolatility float64 `mapstructure:"jump_volatility"`

	UpJumpProbability float64 `mapstructure:"up_jump_probability"`
	UpJumpRate        float64 `mapstructure:"up_jump_rate"`
	DownJumpRate      float64 `mapstructure:"down_jump_rate"`

	Kappa float64 `mapstructure:"kappa"`
	Theta float64 `mapstructure:"theta"`
	Xi    float64 `mapstructure:"xi"`
	Rho   float64 `mapstructure:"rho"`
}

func (p GeneratorParams) Validate() error {
	if p.Volatility < 0 || math.IsNaN(p.Volatility) {
		return fmt.Errorf("%w: volatility must not be negative, got %v", payoff.ErrInvalidArgument, p.Volatility)
	}
	if p.JumpIntensity < 0 {
		return fmt.Errorf("%w: jump intensity must not be negative, got %v", payoff.ErrInvalidArgument, p.JumpIntensity)
	}
	if p.Rho < -1 || p.Rho > 1 {
		return fmt.Errorf("%w: rho must be in [-1, 1], got %v", payoff.ErrInvalidArgument, p.Rho)
	}
	return nil
}

func (p GeneratorParams) validateKou() error {
	if p.UpJumpProbability < 0 || p.UpJumpProbability > 1 || math.IsNaN(p.UpJumpProbability) {
		return fmt.Errorf("%w: up jump probability must be in [0, 1], got %v", payoff.ErrInvalidArgument, p.UpJumpProbability)
	}
	// rates only matter when jumps can happen
	if p.JumpIntensity > 0 && !(p.UpJumpRate > 0 && p.DownJumpRate > 0) {
		return fmt.Errorf("%w: jump rates must be positive, got %v and %v", payoff.ErrInvalidArgument, p.UpJumpRate, p.DownJumpRate)
	}
	return nil
}

func (p GeneratorParams) validateHeston() error {
	if !(p.Kappa >= 0) || !(p.Theta >= 0) || !(p.Xi >= 0) {
		return fmt.Errorf("%w: kappa, theta and xi must not be negative, got %v, %v, %v", payoff.ErrInvalidArgument, p.Kappa, p.Theta, p.Xi)
	}
	return nil
}

// Models lists the names accepted by NewGenerator.
var Models = []string{"gbm", "merton", "heston", "kou"}

// NewGenerator builds the named path generator.
func NewGenerator(name string, p GeneratorParams) (PathGenerator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "gbm":
		return NewGBM(p.Drift, p.Volatility), nil
	case "merton":
		return NewMertonJumpDiffusion(p.Drift, p.Volatility, p.JumpIntensity, p.JumpMean, p.JumpVolatility), nil
	case "heston":
		if err := p.validateHeston(); err != nil {
			return nil, err
		}
		return NewHestonModel(p.Drift, p.Volatility*p.Volatility, p.Kappa, p.Theta, p.Xi, p.Rho), nil
	case "kou":
		if err := p.validateKou(); err != nil {
			return nil, err
		}
		return &KouJumpDiffusion{
			R:      p.Drift,
			Sigma:  p.Volatility,
			Lambda: p.JumpIntensity,
			P:      p.UpJumpProbability,
			Eta1:   p.UpJumpRate,
			Eta2:   p.DownJumpRate,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown model %q", payoff.ErrInvalidArgument, name)
	}
}
