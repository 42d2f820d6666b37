package achievements

import (
	"strings"
	"time"

	"medicgrow/backend/models"
)

// GameMetadata carries the per-call hints from a finished clinical
// simulation. The zero value means "no simulation context".
type GameMetadata struct {
	GameSuccess      bool
	FinalStatus      string // Stable, Guarded, Critical, Improving, Deteriorating
	ConditionChange  string // Improved, Worsened, Stabilized, N/A
	GameOver         bool
	InitialStatus    string
	AllStepsImproved bool
	LastAction       string
	Vitals           *Vitals
}

// Vitals are reported as free-form strings by the simulation; numeric
// checks parse the leading integer.
type Vitals struct {
	BP   string
	HR   string
	RR   string
	SpO2 string
}

// Input is everything Evaluate needs; all I/O stays with the caller.
type Input struct {
	User *models.User
	// Attempts must be sorted ascending by date (oldest first).
	Attempts []models.Attempt
	// GamesCompletedToday is the count of GAME_COMPLETED activity
	// entries since local midnight.
	GamesCompletedToday int64
	Metadata            *GameMetadata
	Now                 time.Time
}

var pharmaKeywords = []string{
	"medication", "administer", "dose", "drug", "injection",
	"pill", "iv", "infusion", "mg", "mcg", "bolus",
}

// rule pairs a badge with its predicate. Rules with requiresAttempts
// set are skipped entirely while the user has no attempt history.
type rule struct {
	id               ID
	requiresAttempts bool
	when             func(*evalContext) bool
}

type evalContext struct {
	user       *models.User
	attempts   []models.Attempt
	meta       GameMetadata
	now        time.Time
	gamesToday int64

	latest *models.Attempt
	prev   *models.Attempt

	perfectCount int
	highCount    int
	totalCorrect int
	examCounts   map[string]int

	earned map[string]bool
	newly  []models.Achievement
}

func newEvalContext(in Input) *evalContext {
	ctx := &evalContext{
		user:       in.User,
		attempts:   in.Attempts,
		now:        in.Now,
		gamesToday: in.GamesCompletedToday,
		examCounts: make(map[string]int),
		earned:     make(map[string]bool),
	}
	if in.Metadata != nil {
		ctx.meta = *in.Metadata
	}
	if n := len(in.Attempts); n > 0 {
		ctx.latest = &in.Attempts[n-1]
		if n > 1 {
			ctx.prev = &in.Attempts[n-2]
		}
	}
	for i := range in.Attempts {
		a := &in.Attempts[i]
		p := a.Percentage()
		if p == 1 {
			ctx.perfectCount++
		}
		if p >= 0.9 {
			ctx.highCount++
		}
		ctx.totalCorrect += a.Score
		ctx.examCounts[a.Exam]++
	}
	for _, a := range in.User.Achievements {
		ctx.earned[a.Title] = true
	}
	return ctx
}

func (ctx *evalContext) award(id ID) {
	def := Catalog[id]
	if ctx.earned[def.Title] {
		return
	}
	a := models.Achievement{
		UserID:      ctx.user.ID,
		Title:       def.Title,
		Description: def.Description,
		Icon:        def.Icon,
		EarnedAt:    ctx.now,
	}
	ctx.user.Achievements = append(ctx.user.Achievements, a)
	ctx.earned[def.Title] = true
	ctx.newly = append(ctx.newly, a)
}

func (ctx *evalContext) attemptsInHourWindow(from, to int) int {
	n := 0
	for i := range ctx.attempts {
		h := ctx.attempts[i].Date.Hour()
		if h >= from && h < to {
			n++
		}
	}
	return n
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// leadingInt parses the integer prefix of a vital-sign string like
// "98%" or "72 bpm".
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
	}
	return n, digits > 0
}

func streakAtLeast(days int) func(*evalContext) bool {
	return func(ctx *evalContext) bool { return ctx.user.LoginStreak >= days }
}

func attemptCountAtLeast(n int) func(*evalContext) bool {
	return func(ctx *evalContext) bool { return len(ctx.attempts) >= n }
}

func chatUsageAtLeast(n int) func(*evalContext) bool {
	return func(ctx *evalContext) bool { return ctx.user.ChatbotUsageCount >= n }
}

func examCountAtLeast(exam string, n int) func(*evalContext) bool {
	return func(ctx *evalContext) bool { return ctx.examCounts[exam] >= n }
}

func latestHourIn(from, to int) func(*evalContext) bool {
	return func(ctx *evalContext) bool {
		h := ctx.latest.Date.Hour()
		return h >= from && h < to
	}
}

// rules fire in order; the order is the output order of newly earned
// badges and must stay stable.
var rules = []rule{
	{id: FirstExam, when: attemptCountAtLeast(1)},
	{id: HighScore, when: func(ctx *evalContext) bool { return ctx.highCount > 0 }},
	{id: PerfectScore, when: func(ctx *evalContext) bool { return ctx.perfectCount > 0 }},
	{id: FiveExams, when: attemptCountAtLeast(5)},
	{id: TenExams, when: attemptCountAtLeast(10)},

	{id: FirstLogin, when: func(ctx *evalContext) bool { return ctx.user.LastLogin != nil }},
	{id: ThreeDayStreak, when: streakAtLeast(3)},
	{id: FiveDayStreak, when: streakAtLeast(5)},
	{id: SevenDayStreak, when: streakAtLeast(7)},
	{id: NineDayStreak, when: streakAtLeast(9)},
	{id: FifteenDayStreak, when: streakAtLeast(15)},
	{id: ThirtyDayStreak, when: streakAtLeast(30)},

	{id: ChatBeginner, when: chatUsageAtLeast(1)},
	{id: ChatMaster, when: chatUsageAtLeast(10)},

	{id: SimNovice, when: func(ctx *evalContext) bool { return ctx.user.StoryGamesCompleted >= 1 }},
	{id: SimExpert, when: func(ctx *evalContext) bool { return ctx.user.SuccessfulSimulations >= 5 }},
	{id: SimMaster, when: func(ctx *evalContext) bool { return ctx.user.SuccessfulSimulations >= 15 }},
	{id: Lifesaver, when: func(ctx *evalContext) bool {
		return ctx.meta.GameSuccess && ctx.meta.FinalStatus == "Critical"
	}},
	{id: ZombieDoc, when: func(ctx *evalContext) bool { return ctx.user.FailedSimulations >= 5 }},
	{id: CodeBlueVeteran, when: func(ctx *evalContext) bool { return ctx.user.CriticalSimsResolved >= 10 }},
	{id: PharmaPro, when: func(ctx *evalContext) bool {
		if ctx.meta.LastAction == "" {
			return false
		}
		action := strings.ToLower(ctx.meta.LastAction)
		for _, k := range pharmaKeywords {
			if strings.Contains(action, k) {
				return true
			}
		}
		return false
	}},
	{id: VitalsVirtuoso, when: func(ctx *evalContext) bool {
		if !ctx.meta.GameSuccess || ctx.meta.Vitals == nil {
			return false
		}
		hr, okHR := leadingInt(ctx.meta.Vitals.HR)
		rr, okRR := leadingInt(ctx.meta.Vitals.RR)
		spo2, okSpO2 := leadingInt(ctx.meta.Vitals.SpO2)
		return okHR && okRR && okSpO2 &&
			hr >= 60 && hr <= 100 && rr >= 12 && rr <= 20 && spo2 >= 95
	}},
	{id: DoubleShift, when: func(ctx *evalContext) bool { return ctx.gamesToday >= 5 }},
	{id: PanicMode, when: func(ctx *evalContext) bool {
		return ctx.meta.ConditionChange == "Worsened" || ctx.meta.FinalStatus == "Deteriorating"
	}},
	{id: OopsieDaisy, when: func(ctx *evalContext) bool {
		return !ctx.meta.GameSuccess && ctx.meta.GameOver
	}},
	{id: WalkingLiability, when: func(ctx *evalContext) bool {
		return !ctx.meta.GameSuccess && ctx.meta.GameOver &&
			(ctx.meta.FinalStatus == "Critical" || ctx.meta.FinalStatus == "Deteriorating")
	}},
	{id: ClinicalInstinct, when: func(ctx *evalContext) bool {
		return ctx.meta.GameSuccess && ctx.meta.ConditionChange == "Improved"
	}},
	{id: CalmUnderPressure, when: func(ctx *evalContext) bool {
		return ctx.meta.GameSuccess && ctx.meta.FinalStatus == "Stable" && ctx.meta.InitialStatus != "Stable"
	}},
	{id: NightingalesTouch, when: func(ctx *evalContext) bool {
		return ctx.meta.GameSuccess && ctx.meta.AllStepsImproved
	}},

	{id: NightOwl, requiresAttempts: true, when: latestHourIn(0, 5)},
	{id: EarlyBird, requiresAttempts: true, when: latestHourIn(5, 8)},
	{id: WeekendWarrior, requiresAttempts: true, when: func(ctx *evalContext) bool {
		d := ctx.latest.Date.Weekday()
		return d == time.Saturday || d == time.Sunday
	}},
	{id: Marathoner, requiresAttempts: true, when: func(ctx *evalContext) bool {
		day := dayOf(ctx.latest.Date)
		n := 0
		for i := range ctx.attempts {
			if dayOf(ctx.attempts[i].Date).Equal(day) {
				n++
			}
		}
		return n >= 3
	}},
	{id: Improving, requiresAttempts: true, when: func(ctx *evalContext) bool {
		return ctx.prev != nil && ctx.latest.Percentage() > ctx.prev.Percentage()
	}},
	{id: DiverseLearner, requiresAttempts: true, when: func(ctx *evalContext) bool {
		return len(ctx.examCounts) >= 3
	}},
	{id: CenturyClub, requiresAttempts: true, when: func(ctx *evalContext) bool {
		return ctx.latest.TotalQuestions >= 100 && ctx.latest.Percentage() == 1
	}},

	{id: TwentyExams, requiresAttempts: true, when: attemptCountAtLeast(20)},
	{id: FiftyExams, requiresAttempts: true, when: attemptCountAtLeast(50)},
	{id: HundredExams, requiresAttempts: true, when: attemptCountAtLeast(100)},
	{id: TwoHundredExams, requiresAttempts: true, when: attemptCountAtLeast(200)},
	{id: FiveHundredExams, requiresAttempts: true, when: attemptCountAtLeast(500)},

	{id: NHMFan, requiresAttempts: true, when: examCountAtLeast("NHM", 10)},
	{id: CHOFan, requiresAttempts: true, when: examCountAtLeast("CHO", 10)},
	{id: ESICFan, requiresAttempts: true, when: examCountAtLeast("ESIC", 10)},
	{id: AIIMSFan, requiresAttempts: true, when: examCountAtLeast("AIIMS", 10)},
	{id: JIPMERFan, requiresAttempts: true, when: examCountAtLeast("JIPMER", 10)},

	{id: ThreePerfectScores, requiresAttempts: true, when: func(ctx *evalContext) bool { return ctx.perfectCount >= 3 }},
	{id: TenPerfectScores, requiresAttempts: true, when: func(ctx *evalContext) bool { return ctx.perfectCount >= 10 }},
	{id: TwentyHighScores, requiresAttempts: true, when: func(ctx *evalContext) bool { return ctx.highCount >= 20 }},
	{id: FiftyHighScores, requiresAttempts: true, when: func(ctx *evalContext) bool { return ctx.highCount >= 50 }},
	{id: TotalScore1000, requiresAttempts: true, when: func(ctx *evalContext) bool { return ctx.totalCorrect >= 1000 }},
	{id: TotalScore5000, requiresAttempts: true, when: func(ctx *evalContext) bool { return ctx.totalCorrect >= 5000 }},
	{id: TotalScore10000, requiresAttempts: true, when: func(ctx *evalContext) bool { return ctx.totalCorrect >= 10000 }},
	{id: SmartStart, requiresAttempts: true, when: func(ctx *evalContext) bool {
		return len(ctx.attempts) == 1 && ctx.attempts[0].Percentage() == 1
	}},
	{id: ComebackKid, requiresAttempts: true, when: func(ctx *evalContext) bool {
		return ctx.prev != nil && ctx.latest.Percentage() >= 0.9 && ctx.prev.Percentage() < 0.5
	}},
	{id: GoldenMean, requiresAttempts: true, when: func(ctx *evalContext) bool {
		if len(ctx.attempts) < 10 {
			return false
		}
		sum := 0.0
		for i := len(ctx.attempts) - 10; i < len(ctx.attempts); i++ {
			sum += ctx.attempts[i].Percentage()
		}
		return sum/10 >= 0.75
	}},

	{id: SixtyDayStreak, requiresAttempts: true, when: streakAtLeast(60)},
	{id: HundredDayStreak, requiresAttempts: true, when: streakAtLeast(100)},
	{id: YearStreak, requiresAttempts: true, when: streakAtLeast(365)},
	{id: StreakSaver, requiresAttempts: true, when: streakAtLeast(14)},

	{id: NightOwlPro, requiresAttempts: true, when: func(ctx *evalContext) bool {
		return ctx.attemptsInHourWindow(0, 5) >= 5
	}},
	{id: EarlyBirdPro, requiresAttempts: true, when: func(ctx *evalContext) bool {
		return ctx.attemptsInHourWindow(5, 8) >= 5
	}},
	{id: LunchBreakLearner, requiresAttempts: true, when: latestHourIn(12, 14)},
	{id: AfterSchoolStudy, requiresAttempts: true, when: latestHourIn(16, 19)},
	{id: HolidayHero, requiresAttempts: true, when: func(ctx *evalContext) bool {
		_, m, d := ctx.latest.Date.Date()
		return (m == time.December && d == 25) || (m == time.January && d == 1)
	}},

	{id: AIFriend, requiresAttempts: true, when: chatUsageAtLeast(25)},
	{id: AIPartner, requiresAttempts: true, when: chatUsageAtLeast(50)},
	{id: AIAddict, requiresAttempts: true, when: chatUsageAtLeast(100)},

	{id: DiversePortfolio, requiresAttempts: true, when: func(ctx *evalContext) bool {
		return len(ctx.examCounts) >= 5
	}},
	{id: Specialist, requiresAttempts: true, when: func(ctx *evalContext) bool {
		for _, n := range ctx.examCounts {
			if n >= 50 {
				return true
			}
		}
		return false
	}},
	{id: RepeatCustomer, requiresAttempts: true, when: func(ctx *evalContext) bool {
		for _, n := range ctx.examCounts {
			if n >= 5 {
				return true
			}
		}
		return false
	}},
	{id: ExamSprinter, requiresAttempts: true, when: func(ctx *evalContext) bool {
		return ctx.prev != nil && ctx.latest.Date.Sub(ctx.prev.Date) < 30*time.Minute
	}},
	{id: LongHaul, requiresAttempts: true, when: func(ctx *evalContext) bool {
		weekAgo := ctx.now.AddDate(0, 0, -7)
		n := 0
		for i := range ctx.attempts {
			if ctx.attempts[i].Date.After(weekAgo) {
				n++
			}
		}
		return n >= 10
	}},
	{id: SteadyProgress, requiresAttempts: true, when: func(ctx *evalContext) bool {
		n := len(ctx.attempts)
		if n < 3 {
			return false
		}
		p1 := ctx.attempts[n-1].Percentage()
		p2 := ctx.attempts[n-2].Percentage()
		p3 := ctx.attempts[n-3].Percentage()
		return p1 > p2 && p2 > p3
	}},

	// Meta rules see the achievement list as grown during this call.
	{id: KnowledgeHub, requiresAttempts: true, when: func(ctx *evalContext) bool {
		return len(ctx.user.Achievements) >= 30
	}},
	{id: LegendaryStatus, requiresAttempts: true, when: func(ctx *evalContext) bool {
		return len(ctx.user.Achievements) >= 50
	}},
}

// Evaluate runs every rule in order against the given state, appends
// newly satisfied badges to the user's list and recomputes the rank
// title. It returns the badges earned by this call; a badge already
// held (by exact title) is never granted twice.
func Evaluate(in Input) []models.Achievement {
	ctx := newEvalContext(in)
	for _, r := range rules {
		if r.requiresAttempts && len(ctx.attempts) == 0 {
			continue
		}
		if r.when(ctx) {
			ctx.award(r.id)
		}
	}
	in.User.Title = TitleFor(len(in.User.Achievements))
	return ctx.newly
}
