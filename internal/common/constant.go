package common

// Pagination bounds shared by the feed endpoint and the synchronizer.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MinLimit     = 1
	MaxLimit     = 50
)

// ClampLimit forces limit into [MinLimit, MaxLimit].
func ClampLimit(limit int) int {
	return max(MinLimit, min(MaxLimit, limit))
}
