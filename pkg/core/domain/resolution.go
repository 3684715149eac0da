package domain

// ResolutionState describes the outcome of resolving a short code.
type ResolutionState int

const (
	// StateRedirect means the caller should be redirected to LongURL.
	StateRedirect ResolutionState = iota
	// StatePasswordRequired means the link is protected and the caller
	// must verify the password before the destination is revealed.
	StatePasswordRequired
)

// Resolution is the outcome of a successful lookup. Expired and unknown
// codes are reported as errors instead.
type Resolution struct {
	State     ResolutionState
	ShortCode string
	LongURL   string
}
