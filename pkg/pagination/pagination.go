package pagination

// ListParams represents skip/limit pagination input. Skip and Limit are
// applied after filtering.
type ListParams struct {
	Skip  int `form:"skip" json:"skip"`
	Limit int `form:"limit" json:"limit"`
}

const (
	// DefaultLimit is used when the caller does not supply a limit.
	DefaultLimit = 10
	// MaxLimit caps a single page regardless of what the caller asks for.
	MaxLimit = 100
)

// DefaultListParams returns default pagination values
func DefaultListParams() *ListParams {
	return &ListParams{
		Skip:  0,
		Limit: DefaultLimit,
	}
}

// Validate ensures pagination parameters are within valid ranges
func (p *ListParams) Validate() {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}
