// Package advisor recommends a Pomodoro session length from how the user
// feels right now and how long their recent sessions actually lasted.
package advisor

const (
	baseMinutes  = 25
	stepMinutes  = 5
	floorMinutes = 15

	highThreshold = 7
	lowThreshold  = 4

	// blend weights, in tenths, for the current estimate and the history mean
	currentWeight = 7
	historyWeight = 3

	defaultLevel = 5
)

// Mood is the part of a mood entry the advisor looks at.
// Zero levels are treated as missing and default to 5.
type Mood struct {
	EnergyLevel int
	FocusLevel  int
}

// Session is a past session; ActualDuration is in minutes and 0 means unknown
type Session struct {
	ActualDuration int
}

// RecommendSessionLength returns the suggested session length in minutes.
//
// The mood adjusts a 25 minute base by ±5 and floors it at 15. When any past
// session has a known duration the result is blended 70/30 with their mean
// and truncated. The blended value is not floored again, so a run of very
// short sessions can bring the recommendation under 15 minutes.
func RecommendSessionLength(mood Mood, recent []Session) int {
	energy := levelOrDefault(mood.EnergyLevel)
	focus := levelOrDefault(mood.FocusLevel)

	minutes := baseMinutes
	if energy > highThreshold && focus > highThreshold {
		minutes += stepMinutes
	} else if energy < lowThreshold || focus < lowThreshold {
		minutes -= stepMinutes
	}

	if minutes < floorMinutes {
		minutes = floorMinutes
	}

	sum, n := 0, 0
	for _, s := range recent {
		if s.ActualDuration == 0 {
			continue
		}
		sum += s.ActualDuration
		n++
	}
	if n == 0 {
		return minutes
	}

	// floor(0.7*minutes + 0.3*sum/n) in integers so 0.7*30+0.3*20 stays 27
	return (currentWeight*minutes*n + historyWeight*sum) / (10 * n)
}

func levelOrDefault(level int) int {
	if level == 0 {
		return defaultLevel
	}
	return level
}
