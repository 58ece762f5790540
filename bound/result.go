package bound

// ParseResult carries the outcome of projecting an external range syntax
// onto a Bound. A failed parse sets Error; a successful one may still be
// flagged IsApproximated when the source range is not representable exactly
// by the (Base, Lock, MinQuality) model. Approximation is a warning-level
// signal for the caller, never an error.
type ParseResult struct {
	Bound          Bound
	IsApproximated bool
	Error          error
}

// IsValid reports whether the parse succeeded.
func (r ParseResult) IsValid() bool { return r.Error == nil }

// Union merges two alternatives (an "or" of ranges) by the bound supremum.
// An error on either side wins; approximation is sticky.
func (r ParseResult) Union(o ParseResult) ParseResult {
	if r.Error != nil {
		return r
	}
	if o.Error != nil {
		return o
	}
	return ParseResult{
		Bound:          r.Bound.Union(o.Bound),
		IsApproximated: r.IsApproximated || o.IsApproximated,
	}
}

func errResult(err error) ParseResult { return ParseResult{Error: err} }

func okResult(b Bound, approximated bool) ParseResult {
	return ParseResult{Bound: b, IsApproximated: approximated}
}
