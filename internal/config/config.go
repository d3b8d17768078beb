// Package config loads differentiation problems from TOML files.
//
// A problem names an output expression, the input values and which
// propagation modes to run:
//
//	output = "mul(add(x, x), x)"
//	mode   = "both"   # forward | reverse | both
//	wrt    = "x"      # forward seed; empty means every input in turn
//	trace  = false
//
//	[inputs]
//	x = 3.0
//
// Inputs keep the order in which they are declared in the file.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Mode selects which propagation passes run.
type Mode string

// Supported modes.
const (
	ModeForward Mode = "forward"
	ModeReverse Mode = "reverse"
	ModeBoth    Mode = "both"
)

// ParseMode validates s. The empty string selects ModeBoth.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeBoth, nil
	case ModeForward, ModeReverse, ModeBoth:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q (want forward, reverse or both)", ErrInvalid, s)
	}
}

// Forward reports whether forward mode runs. The zero Mode runs both.
func (m Mode) Forward() bool { return m == ModeForward || m == ModeBoth || m == "" }

// Reverse reports whether reverse mode runs. The zero Mode runs both.
func (m Mode) Reverse() bool { return m == ModeReverse || m == ModeBoth || m == "" }

// ErrInvalid is returned for problems that fail validation.
var ErrInvalid = errors.New("invalid problem")

// Input is one named input value.
type Input struct {
	Name  string
	Value float64
}

// Problem is a fully validated differentiation request.
type Problem struct {
	Output string
	Mode   Mode
	Wrt    string
	Trace  bool
	Inputs []Input
}

// file mirrors the TOML layout.
type file struct {
	Output string             `toml:"output"`
	Mode   string             `toml:"mode"`
	Wrt    string             `toml:"wrt"`
	Trace  bool               `toml:"trace"`
	Inputs map[string]float64 `toml:"inputs"`
}

// Load reads and validates the problem file at path.
func Load(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read problem: %w", err)
	}
	p, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a problem from TOML text.
func Parse(data string) (*Problem, error) {
	var f file
	md, err := toml.Decode(data, &f)
	if err != nil {
		return nil, fmt.Errorf("decode problem: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}

	mode, err := ParseMode(f.Mode)
	if err != nil {
		return nil, err
	}
	p := &Problem{
		Output: strings.TrimSpace(f.Output),
		Mode:   mode,
		Wrt:    f.Wrt,
		Trace:  f.Trace,
	}

	// md.Keys preserves file order; the decoded map does not.
	for _, k := range md.Keys() {
		if len(k) == 2 && k[0] == "inputs" {
			p.Inputs = append(p.Inputs, Input{Name: k[1], Value: f.Inputs[k[1]]})
		}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the problem for structural errors and normalizes Mode.
// It does not parse the output expression.
func (p *Problem) Validate() error {
	if p.Output == "" {
		return fmt.Errorf("%w: output expression is required", ErrInvalid)
	}
	mode, err := ParseMode(string(p.Mode))
	if err != nil {
		return err
	}
	p.Mode = mode

	seen := make(map[string]bool, len(p.Inputs))
	for _, in := range p.Inputs {
		if !isIdentifier(in.Name) {
			return fmt.Errorf("%w: input name %q is not an identifier", ErrInvalid, in.Name)
		}
		if seen[in.Name] {
			return fmt.Errorf("%w: duplicate input %q", ErrInvalid, in.Name)
		}
		if math.IsNaN(in.Value) || math.IsInf(in.Value, 0) {
			return fmt.Errorf("%w: input %q is not finite", ErrInvalid, in.Name)
		}
		seen[in.Name] = true
	}

	if p.Wrt != "" && !seen[p.Wrt] {
		return fmt.Errorf("%w: wrt %q is not an input", ErrInvalid, p.Wrt)
	}
	return nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9'):
		default:
			return false
		}
	}
	return true
}
