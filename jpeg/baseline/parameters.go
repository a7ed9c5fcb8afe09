package baseline

import (
	"github.com/cocosip/go-dicom/pkg/imaging/codec"

	"github.com/cocosip/go-jpeg-dct/jpeg/common"
)

// Ensure JPEGBaselineParameters implements codec.Parameters
var _ codec.Parameters = (*JPEGBaselineParameters)(nil)

// JPEGBaselineParameters contains parameters for JPEG Baseline compression
type JPEGBaselineParameters struct {
	// Quality controls the JPEG compression quality (1-100)
	// - 100: Best quality, minimal compression
	// - 85:  High quality (default)
	// - 75:  Medium quality, good balance
	// - 50:  Lower quality, higher compression
	// - 1:   Lowest quality, maximum compression
	Quality int

	// Method selects the forward DCT: "accurate" (default) or "fast"
	Method string

	// RestartInterval is the number of MCUs between restart markers
	// (0 disables them)
	RestartInterval int

	// internal storage for compatibility with generic parameter interface
	params map[string]interface{}
}

// NewBaselineParameters creates a new JPEGBaselineParameters with default values
func NewBaselineParameters() *JPEGBaselineParameters {
	return &JPEGBaselineParameters{
		Quality: 85, // Default high quality
		Method:  common.DCTAccurate.String(),
		params:  make(map[string]interface{}),
	}
}

// GetParameter retrieves a parameter by name (implements codec.Parameters)
func (p *JPEGBaselineParameters) GetParameter(name string) interface{} {
	switch name {
	case "quality":
		return p.Quality
	case "method":
		return p.Method
	case "restartInterval":
		return p.RestartInterval
	default:
		return p.params[name]
	}
}

// SetParameter sets a parameter value (implements codec.Parameters)
func (p *JPEGBaselineParameters) SetParameter(name string, value interface{}) {
	switch name {
	case "quality":
		if v, ok := value.(int); ok {
			p.Quality = v
		}
	case "method":
		switch v := value.(type) {
		case string:
			p.Method = v
		case common.DCTMethod:
			p.Method = v.String()
		}
	case "restartInterval":
		if v, ok := value.(int); ok {
			p.RestartInterval = v
		}
	default:
		if p.params == nil {
			p.params = make(map[string]interface{})
		}
		p.params[name] = value
	}
}

// Validate resets out-of-range values to their defaults
func (p *JPEGBaselineParameters) Validate() error {
	if p.Quality < 1 || p.Quality > 100 {
		p.Quality = 85 // Reset to default
	}
	if _, err := common.ParseDCTMethod(p.Method); err != nil {
		p.Method = common.DCTAccurate.String()
	}
	if p.RestartInterval < 0 || p.RestartInterval > 0xFFFF {
		p.RestartInterval = 0
	}
	return nil
}

// WithQuality sets the quality and returns the parameters for chaining
func (p *JPEGBaselineParameters) WithQuality(quality int) *JPEGBaselineParameters {
	p.Quality = quality
	return p
}

// WithMethod sets the DCT method and returns the parameters for chaining
func (p *JPEGBaselineParameters) WithMethod(method common.DCTMethod) *JPEGBaselineParameters {
	p.Method = method.String()
	return p
}

// WithRestartInterval sets the restart interval and returns the parameters
// for chaining
func (p *JPEGBaselineParameters) WithRestartInterval(mcus int) *JPEGBaselineParameters {
	p.RestartInterval = mcus
	return p
}

// Options converts validated parameters into encoder options
func (p *JPEGBaselineParameters) Options() Options {
	method, _ := common.ParseDCTMethod(p.Method)
	return Options{
		Quality:         p.Quality,
		Method:          method,
		RestartInterval: p.RestartInterval,
	}
}
