package achievements

import (
	"testing"
	"time"

	"medicgrow/backend/models"

	"github.com/stretchr/testify/assert"
)

// noon on a Wednesday, away from every hour-window badge.
var baseTime = time.Date(2025, time.March, 12, 12, 30, 0, 0, time.UTC)

func attempt(exam string, score, total int, date time.Time) models.Attempt {
	return models.Attempt{Exam: exam, Score: score, TotalQuestions: total, Date: date}
}

func titles(list []models.Achievement) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.Title)
	}
	return out
}

func TestEvaluateFirstAttempt(t *testing.T) {
	now := baseTime
	user := &models.User{LoginStreak: 1, LastLogin: &now, Title: DefaultTitle}
	attempts := []models.Attempt{attempt("NHM", 5, 10, baseTime.Add(-time.Hour))}

	newly := Evaluate(Input{User: user, Attempts: attempts, Now: now})

	assert.Contains(t, titles(newly), "First Step")
	assert.Contains(t, titles(newly), "Welcome Aboard")
	assert.NotContains(t, titles(newly), "High Achiever")
}

func TestEvaluateIdempotent(t *testing.T) {
	now := baseTime
	user := &models.User{LoginStreak: 1, LastLogin: &now, Title: DefaultTitle}
	attempts := []models.Attempt{attempt("NHM", 5, 10, baseTime.Add(-time.Hour))}

	first := Evaluate(Input{User: user, Attempts: attempts, Now: now})
	assert.NotEmpty(t, first)

	second := Evaluate(Input{User: user, Attempts: attempts, Now: now})
	assert.Empty(t, second)
}

func TestEvaluatePerfectFirstAttempt(t *testing.T) {
	now := baseTime
	user := &models.User{LoginStreak: 0, Title: DefaultTitle}
	attempts := []models.Attempt{attempt("NHM", 10, 10, baseTime.Add(-time.Hour))}

	newly := Evaluate(Input{User: user, Attempts: attempts, Now: now})

	got := titles(newly)
	assert.ElementsMatch(t, []string{
		"First Step", "High Achiever", "Perfect Score", "Brilliant Beginning",
	}, got)
}

func TestEvaluateTenAttemptVolume(t *testing.T) {
	user := &models.User{Title: DefaultTitle}
	var attempts []models.Attempt
	for i := 0; i < 10; i++ {
		attempts = append(attempts, attempt("NHM", 6, 10, baseTime.Add(time.Duration(i)*24*time.Hour)))
	}

	newly := Evaluate(Input{User: user, Attempts: attempts, Now: baseTime.Add(240 * time.Hour)})

	got := titles(newly)
	assert.Contains(t, got, "Persistent Learner")
	assert.Contains(t, got, "Exam Master")
	assert.Contains(t, got, "NHM Aspirant")
	assert.Contains(t, got, "Perfectionist")
}

func TestComebackKid(t *testing.T) {
	user := &models.User{Title: DefaultTitle}
	attempts := []models.Attempt{
		attempt("NHM", 4, 10, baseTime.Add(-48*time.Hour)),
		attempt("NHM", 19, 20, baseTime.Add(-time.Hour)),
	}

	newly := Evaluate(Input{User: user, Attempts: attempts, Now: baseTime})
	assert.Contains(t, titles(newly), "Comeback Kid")

	// A mediocre previous score does not qualify.
	user2 := &models.User{Title: DefaultTitle}
	attempts2 := []models.Attempt{
		attempt("NHM", 6, 10, baseTime.Add(-48*time.Hour)),
		attempt("NHM", 19, 20, baseTime.Add(-time.Hour)),
	}
	newly2 := Evaluate(Input{User: user2, Attempts: attempts2, Now: baseTime})
	assert.NotContains(t, titles(newly2), "Comeback Kid")
}

func TestNightOwlAndPro(t *testing.T) {
	night := time.Date(2025, time.March, 12, 2, 0, 0, 0, time.UTC)
	user := &models.User{Title: DefaultTitle}
	var attempts []models.Attempt
	for i := 0; i < 4; i++ {
		attempts = append(attempts, attempt("NHM", 6, 10, night.AddDate(0, 0, i-4)))
	}

	newly := Evaluate(Input{User: user, Attempts: attempts, Now: night})
	assert.Contains(t, titles(newly), "Night Owl")
	assert.NotContains(t, titles(newly), "Midnight Scholar")

	// The fifth night attempt unlocks the pro badge.
	attempts = append(attempts, attempt("NHM", 6, 10, night))
	newly = Evaluate(Input{User: user, Attempts: attempts, Now: night})
	assert.Contains(t, titles(newly), "Midnight Scholar")
}

func TestGatedRulesSkippedWithoutAttempts(t *testing.T) {
	now := baseTime
	user := &models.User{
		LoginStreak:       400,
		LastLogin:         &now,
		ChatbotUsageCount: 150,
		Title:             DefaultTitle,
	}

	newly := Evaluate(Input{User: user, Now: now})
	got := titles(newly)

	// Ungated streak and chat badges still fire.
	assert.Contains(t, got, "Legendary Dedication")
	assert.Contains(t, got, "AI Enthusiast")
	// Long-streak and heavy-chat badges wait for the first attempt.
	assert.NotContains(t, got, "Ultimate Dedicated")
	assert.NotContains(t, got, "Century Streak")
	assert.NotContains(t, got, "AI Power User")
}

func TestSimulationBadges(t *testing.T) {
	user := &models.User{
		StoryGamesCompleted:   1,
		SuccessfulSimulations: 1,
		Title:                 DefaultTitle,
	}
	meta := &GameMetadata{
		GameSuccess:     true,
		GameOver:        true,
		FinalStatus:     "Critical",
		ConditionChange: "Improved",
		InitialStatus:   "Guarded",
		LastAction:      "Administer 5mg IV bolus",
		Vitals:          &Vitals{BP: "120/80", HR: "72", RR: "16", SpO2: "98%"},
	}

	newly := Evaluate(Input{User: user, Metadata: meta, Now: baseTime})
	got := titles(newly)

	assert.Contains(t, got, "Sim Novice")
	assert.Contains(t, got, "Lifesaver")
	assert.Contains(t, got, "Pharmacology Pro")
	assert.Contains(t, got, "Vitals Virtuoso")
	assert.Contains(t, got, "Clinical Instinct")
	assert.NotContains(t, got, "Oopsie Daisy")
}

func TestPharmaProNeedsKeyword(t *testing.T) {
	user := &models.User{Title: DefaultTitle}
	meta := &GameMetadata{GameSuccess: true, GameOver: true, LastAction: "Check the chart and reassess"}

	newly := Evaluate(Input{User: user, Metadata: meta, Now: baseTime})
	assert.NotContains(t, titles(newly), "Pharmacology Pro")
}

func TestFailedSimulationBadges(t *testing.T) {
	user := &models.User{StoryGamesCompleted: 3, FailedSimulations: 5, Title: DefaultTitle}
	meta := &GameMetadata{
		GameSuccess:     false,
		GameOver:        true,
		FinalStatus:     "Deteriorating",
		ConditionChange: "Worsened",
	}

	newly := Evaluate(Input{User: user, Metadata: meta, Now: baseTime})
	got := titles(newly)

	assert.Contains(t, got, "Oopsie Daisy")
	assert.Contains(t, got, "Panic Mode")
	assert.Contains(t, got, "Walking Liability")
	assert.Contains(t, got, "Zombie Doc")
}

func TestNilMetadataAwardsNoSimBadges(t *testing.T) {
	user := &models.User{Title: DefaultTitle}
	attempts := []models.Attempt{attempt("NHM", 6, 10, baseTime.Add(-time.Hour))}

	newly := Evaluate(Input{User: user, Attempts: attempts, Now: baseTime})
	got := titles(newly)

	for _, forbidden := range []string{"Lifesaver", "Oopsie Daisy", "Panic Mode", "Vitals Virtuoso", "Pharmacology Pro"} {
		assert.NotContains(t, got, forbidden)
	}
}

func TestMetaRulesSeeGrowth(t *testing.T) {
	user := &models.User{Title: DefaultTitle}
	// Pre-seed 29 badges; anything earned during this call pushes the
	// count over the Knowledge Hub threshold.
	for i := 0; i < 29; i++ {
		user.Achievements = append(user.Achievements, models.Achievement{Title: string(rune('A' + i))})
	}
	attempts := []models.Attempt{attempt("NHM", 6, 10, baseTime.Add(-time.Hour))}

	newly := Evaluate(Input{User: user, Attempts: attempts, Now: baseTime})
	assert.Contains(t, titles(newly), "Knowledge Hub")
}

func TestTitleRecomputedEveryCall(t *testing.T) {
	user := &models.User{Title: DefaultTitle}
	attempts := []models.Attempt{attempt("NHM", 10, 10, baseTime.Add(-time.Hour))}

	Evaluate(Input{User: user, Attempts: attempts, Now: baseTime})
	assert.Equal(t, TitleFor(len(user.Achievements)), user.Title)
}

func TestSteadyProgress(t *testing.T) {
	user := &models.User{Title: DefaultTitle}
	attempts := []models.Attempt{
		attempt("NHM", 5, 10, baseTime.Add(-72*time.Hour)),
		attempt("NHM", 6, 10, baseTime.Add(-48*time.Hour)),
		attempt("NHM", 7, 10, baseTime.Add(-24*time.Hour)),
	}

	newly := Evaluate(Input{User: user, Attempts: attempts, Now: baseTime})
	assert.Contains(t, titles(newly), "Steady Progress")
}

func TestDoubleShift(t *testing.T) {
	user := &models.User{StoryGamesCompleted: 5, Title: DefaultTitle}
	meta := &GameMetadata{GameSuccess: true, GameOver: true, FinalStatus: "Stable", InitialStatus: "Stable"}

	newly := Evaluate(Input{User: user, GamesCompletedToday: 5, Metadata: meta, Now: baseTime})
	assert.Contains(t, titles(newly), "Double Shift")
}

func TestTitleFor(t *testing.T) {
	assert.Equal(t, "Medical Aspirant", TitleFor(0))
	assert.Equal(t, "Medical Aspirant", TitleFor(4))
	assert.Equal(t, "Rising Star", TitleFor(5))
	assert.Equal(t, "Medical Maestro", TitleFor(10))
	assert.Equal(t, "Clinical Commander", TitleFor(19))
	assert.Equal(t, "Legendary Clinician", TitleFor(30))
	assert.Equal(t, "Grandmaster Clinician", TitleFor(59))
	assert.Equal(t, "Sovereign of Medical Knowledge", TitleFor(60))
	assert.Equal(t, "Sovereign of Medical Knowledge", TitleFor(99))
}

func TestLeadingInt(t *testing.T) {
	n, ok := leadingInt("98%")
	assert.True(t, ok)
	assert.Equal(t, 98, n)

	n, ok = leadingInt(" 72 bpm")
	assert.True(t, ok)
	assert.Equal(t, 72, n)

	_, ok = leadingInt("n/a")
	assert.False(t, ok)
}
