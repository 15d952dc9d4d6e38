package models

type ActivityLevel struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

var activityLevels = []struct {
	min   int
	level ActivityLevel
}{
	{1000, ActivityLevel{"Legend", "🏆"}},
	{500, ActivityLevel{"Expert", "⭐"}},
	{200, ActivityLevel{"Active", "🔥"}},
	{50, ActivityLevel{"Regular", "👍"}},
	{10, ActivityLevel{"Newcomer", "🌱"}},
}

func ActivityLevelFor(totalMessages int) ActivityLevel {
	for _, l := range activityLevels {
		if totalMessages >= l.min {
			return l.level
		}
	}
	return ActivityLevel{"Beginner", "👋"}
}
