package huffman

import "log/slog"

// Parameters controls table construction and decoding
type Parameters struct {
	// Strict turns the soft diagnostics into errors:
	// - a code longer than 16 bits fails BuildTable with ErrCodeTooLong
	// - a decode table with unfilled slots fails NewDecoder with ErrIncompleteTable
	// The default (false) logs a warning and carries on.
	Strict bool

	// Logger receives diagnostics. nil means slog.Default().
	Logger *slog.Logger

	// internal storage for compatibility with the generic parameter interface
	params map[string]interface{}
}

// NewParameters creates Parameters with default values
func NewParameters() *Parameters {
	return &Parameters{
		params: make(map[string]interface{}),
	}
}

// GetParameter retrieves a parameter by name
func (p *Parameters) GetParameter(name string) interface{} {
	switch name {
	case "strict":
		return p.Strict
	case "logger":
		return p.Logger
	default:
		return p.params[name]
	}
}

// SetParameter sets a parameter value
func (p *Parameters) SetParameter(name string, value interface{}) {
	switch name {
	case "strict":
		if v, ok := value.(bool); ok {
			p.Strict = v
		}
	case "logger":
		if v, ok := value.(*slog.Logger); ok {
			p.Logger = v
		}
	default:
		if p.params == nil {
			p.params = make(map[string]interface{})
		}
		p.params[name] = value
	}
}

// Validate fills in defaults. It never fails.
func (p *Parameters) Validate() error {
	if p.Logger == nil {
		p.Logger = slog.Default()
	}
	return nil
}

func (p *Parameters) logger() *slog.Logger {
	if p == nil || p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

func (p *Parameters) strict() bool {
	return p != nil && p.Strict
}
