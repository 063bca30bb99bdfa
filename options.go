package nyml

import (
	"fmt"

	"github.com/nyml-lang/go-nyml/internal/mapper"
)

const defaultMaxDepth = 1000

// Option configures parsing and decoding.
type Option func(*options) error

type options struct {
	strict   bool
	maxDepth int
	strategy Strategy
}

func newOptions(opts []Option) (*options, error) {
	o := &options{
		maxDepth: defaultMaxDepth,
		strategy: StrategyLast,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Strict returns an Option that requests strict indentation checking.
// The flag is accepted for compatibility with other NYML implementations;
// indentation steps are currently not validated either way.
func Strict(strict bool) Option {
	return func(o *options) error {
		o.strict = strict
		return nil
	}
}

// MaxDepth returns an Option that sets the maximum recursion depth for
// Unmarshal. This helps prevent stack overflows when decoding deeply
// nested documents.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("nyml: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}

// WithStrategy returns an Option that selects how Unmarshal resolves
// duplicate keys. The default is StrategyLast.
func WithStrategy(s Strategy) Option {
	return func(o *options) error {
		st, err := mapper.ParseStrategy(string(s))
		if err != nil {
			return err
		}
		o.strategy = st
		return nil
	}
}
