package phpserial

import (
	"github.com/viant/tagly/format/text"
)

const defaultMaxDepth = 512

// Option configures decoding and encoding
type Option interface {
	apply(*Options)
}

// Options represents resolved options
type Options struct {
	MalformedPolicy MalformedPolicy
	StringPolicy    StringPolicy
	KeyPolicy       KeyPolicy
	CaseFormat      text.CaseFormat
	MaxDepth        int
	RecoverySink    func(Recovery)
}

type optionFn func(*Options)

func (o optionFn) apply(opts *Options) { o(opts) }

// WithMalformedPolicy sets Unmarshal behavior when strict decoding fails
func WithMalformedPolicy(policy MalformedPolicy) Option {
	return optionFn(func(o *Options) { o.MalformedPolicy = policy })
}

// WithStringPolicy sets how recovery delimits string payloads
func WithStringPolicy(policy StringPolicy) Option {
	return optionFn(func(o *Options) { o.StringPolicy = policy })
}

// WithKeyPolicy sets whether decimal string keys become integer keys
func WithKeyPolicy(policy KeyPolicy) Option {
	return optionFn(func(o *Options) { o.KeyPolicy = policy })
}

// WithCaseFormat sets default struct field name case format, format tag takes precedence
func WithCaseFormat(caseFormat text.CaseFormat) Option {
	return optionFn(func(o *Options) { o.CaseFormat = caseFormat })
}

// WithMaxDepth sets max array nesting, non positive values restore the default
func WithMaxDepth(depth int) Option {
	return optionFn(func(o *Options) { o.MaxDepth = depth })
}

// WithRecoverySink sets a callback receiving recovery outcome
func WithRecoverySink(sink func(Recovery)) Option {
	return optionFn(func(o *Options) { o.RecoverySink = sink })
}

func defaultOptions() Options {
	return Options{
		MalformedPolicy: Tolerant,
		StringPolicy:    ScanTerminator,
		KeyPolicy:       KeepKeys,
		CaseFormat:      text.CaseFormatUndefined,
		MaxDepth:        defaultMaxDepth,
	}
}

func resolveOptions(opts []Option) *Options {
	result := defaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.apply(&result)
	}
	if result.MaxDepth <= 0 {
		result.MaxDepth = defaultMaxDepth
	}
	return &result
}

func (o *Options) key(key Key) Key {
	if o.KeyPolicy == NormalizeKeys {
		return key.normalize()
	}
	return key
}
