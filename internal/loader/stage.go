package loader

// StageKind enumerates the lifecycle states of a load attempt.
type StageKind int

const (
	StageIdle StageKind = iota
	StageRefreshing
	StageLoadingInitialised
	StageLoadingUnderway
	StageLoadSucceeded
	StageLoadFailed
)

func (k StageKind) String() string {
	switch k {
	case StageRefreshing:
		return "refreshing"
	case StageLoadingInitialised:
		return "loadingInitialised"
	case StageLoadingUnderway:
		return "loadingUnderway"
	case StageLoadSucceeded:
		return "loadSucceeded"
	case StageLoadFailed:
		return "loadFailed"
	default:
		return "idle"
	}
}

// Stage is one value on the pipeline's stage stream. Frame is set only for
// StageLoadSucceeded and Err only for StageLoadFailed.
type Stage[F any] struct {
	Kind    StageKind
	Frame   F
	Err     error
	Attempt uint64 // fetch sequence number the stage belongs to
}

// IsWaiting reports whether the stage announces a load in progress.
func (s Stage[F]) IsWaiting() bool {
	return s.Kind == StageLoadingInitialised || s.Kind == StageLoadingUnderway
}

// IsTrigger reports whether the stage announces the start of a fetch.
func (s Stage[F]) IsTrigger() bool {
	return s.IsWaiting() || s.Kind == StageRefreshing
}

func (s Stage[F]) String() string { return s.Kind.String() }
