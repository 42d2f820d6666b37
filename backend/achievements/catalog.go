package achievements

// ID identifies a badge definition in the catalog.
type ID string

const (
	FirstExam    ID = "FIRST_EXAM"
	HighScore    ID = "HIGH_SCORE"
	PerfectScore ID = "PERFECT_SCORE"
	FiveExams    ID = "FIVE_EXAMS"
	TenExams     ID = "TEN_EXAMS"

	FirstLogin        ID = "FIRST_LOGIN"
	ThreeDayStreak    ID = "THREE_DAY_STREAK"
	FiveDayStreak     ID = "FIVE_DAY_STREAK"
	SevenDayStreak    ID = "SEVEN_DAY_STREAK"
	NineDayStreak     ID = "NINE_DAY_STREAK"
	FifteenDayStreak  ID = "FIFTEEN_DAY_STREAK"
	ThirtyDayStreak   ID = "THIRTY_DAY_STREAK"
	SixtyDayStreak    ID = "SIXTY_DAY_STREAK"
	HundredDayStreak  ID = "HUNDRED_DAY_STREAK"
	YearStreak        ID = "YEAR_STREAK"
	StreakSaver       ID = "STREAK_SAVER"
	WeekendWarriorPro ID = "WEEKEND_WARRIOR_PLUS"

	ChatBeginner ID = "CHAT_BEGINNER"
	ChatMaster   ID = "CHAT_MASTER"
	AIFriend     ID = "AI_FRIEND"
	AIPartner    ID = "AI_PARTNER"
	AIAddict     ID = "AI_ADDICT"

	NightOwl          ID = "NIGHT_OWL"
	EarlyBird         ID = "EARLY_BIRD"
	NightOwlPro       ID = "NIGHT_OWL_PRO"
	EarlyBirdPro      ID = "EARLY_BIRD_PRO"
	LunchBreakLearner ID = "LUNCH_BREAK_LEARNER"
	AfterSchoolStudy  ID = "AFTER_SCHOOL_STUDY"
	WeekendWarrior    ID = "WEEKEND_WARRIOR"
	HolidayHero       ID = "HOLIDAY_HERO"
	Marathoner        ID = "MARATHONER"

	Improving      ID = "IMPROVING"
	DiverseLearner ID = "DIVERSE_LEARNER"
	CenturyClub    ID = "CENTURY_CLUB"

	TwentyExams     ID = "TWENTY_EXAMS"
	FiftyExams      ID = "FIFTY_EXAMS"
	HundredExams    ID = "HUNDRED_EXAMS"
	TwoHundredExams ID = "TWO_HUNDRED_EXAMS"
	FiveHundredExams ID = "FIVE_HUNDRED_EXAMS"

	NHMFan    ID = "NHM_FAN"
	CHOFan    ID = "CHO_FAN"
	ESICFan   ID = "ESIC_FAN"
	AIIMSFan  ID = "AIIMS_FAN"
	JIPMERFan ID = "JIPMER_FAN"

	ThreePerfectScores ID = "THREE_PERFECT_SCORES"
	TenPerfectScores   ID = "TEN_PERFECT_SCORES"
	TwentyHighScores   ID = "TWENTY_HIGH_SCORES"
	FiftyHighScores    ID = "FIFTY_HIGH_SCORES"
	TotalScore1000     ID = "TOTAL_SCORE_1000"
	TotalScore5000     ID = "TOTAL_SCORE_5000"
	TotalScore10000    ID = "TOTAL_SCORE_10000"
	SmartStart         ID = "SMART_START"
	ComebackKid        ID = "COMEBACK_KID"
	GoldenMean         ID = "GOLDEN_MEAN"

	KnowledgeSeeker ID = "KNOWLEDGE_SEEKER"
	DeepDive        ID = "DEEP_DIVE"
	QuickQuery      ID = "QUICK_QUERY"
	TopicMasteryAI  ID = "TOPIC_MASTERY_AI"
	AIGuided        ID = "AI_GUIDED"
	BotBestie       ID = "BOT_BESTIE"
	WisdomWeaver    ID = "WISDOM_WEAVER"

	JackOfAllTrades  ID = "JACK_OF_ALL_TRADES"
	Specialist       ID = "SPECIALIST"
	DiversePortfolio ID = "DIVERSE_PORTFOLIO"
	RepeatCustomer   ID = "REPEAT_CUSTOMER"
	ExamSprinter     ID = "EXAM_SPRINTER"
	LongHaul         ID = "LONG_HAUL"
	SteadyProgress   ID = "STEADY_PROGRESS"
	NoStoneUnturned  ID = "NO_STONE_UNTURNED"

	SimNovice         ID = "SIM_NOVICE"
	SimExpert         ID = "SIM_EXPERT"
	SimMaster         ID = "SIM_MASTER"
	Lifesaver         ID = "LIFESAVER"
	OopsieDaisy       ID = "OOPSIE_DAISY"
	PanicMode         ID = "PANIC_MODE"
	WalkingLiability  ID = "WALKING_LIABILITY"
	NightingalesTouch ID = "NIGHTINGALES_TOUCH"
	CalmUnderPressure ID = "CALM_UNDER_PRESSURE"
	ClinicalInstinct  ID = "CLINICAL_INSTINCT"
	DoubleShift       ID = "DOUBLE_SHIFT"
	ZombieDoc         ID = "ZOMBIE_DOC"
	CodeBlueVeteran   ID = "CODE_BLUE_VETERAN"
	PharmaPro         ID = "PHARMA_PRO"
	VitalsVirtuoso    ID = "VITALS_VIRTUOSO"

	KnowledgeHub    ID = "KNOWLEDGE_HUB"
	LegendaryStatus ID = "LEGENDARY_STATUS"
)

// Def is one badge definition.
type Def struct {
	Title       string
	Description string
	Icon        string
}

// Catalog maps every badge id to its fixed definition. Some entries
// have no award rule yet (they predate the rule engine and are kept
// for users who already hold them).
var Catalog = map[ID]Def{
	FirstExam:    {"First Step", "Completed your first exam!", "🎯"},
	HighScore:    {"High Achiever", "Scored 90% or higher in an exam!", "⭐"},
	PerfectScore: {"Perfect Score", "Scored 100% in an exam!", "🏆"},
	FiveExams:    {"Persistent Learner", "Completed 5 exams!", "📚"},
	TenExams:     {"Exam Master", "Completed 10 exams!", "🎓"},

	FirstLogin:        {"Welcome Aboard", "Logged in for the first time!", "👋"},
	ThreeDayStreak:    {"Consistent Learner", "Maintained a 3-day login streak!", "🔥"},
	FiveDayStreak:     {"Workhorse", "Maintained a 5-day login streak!", "🐎"},
	SevenDayStreak:    {"Dedicated Scholar", "Maintained a 7-day login streak!", "⚡"},
	NineDayStreak:     {"Unstoppable Force", "Maintained a 9-day login streak!", "🚀"},
	FifteenDayStreak:  {"Elite Scholar", "Maintained a 15-day login streak!", "👑"},
	ThirtyDayStreak:   {"Legendary Dedication", "Maintained a 30-day login streak!", "💎"},
	SixtyDayStreak:    {"Two-Month Commitment", "Maintained a 60-day login streak!", "📅"},
	HundredDayStreak:  {"Century Streak", "Maintained a 100-day login streak!", "💯"},
	YearStreak:        {"Ultimate Dedicated", "Maintained a 365-day login streak!", "🌍"},
	StreakSaver:       {"Consistency King", "Maintained a streak for 14 days without missing!", "🛡️"},
	WeekendWarriorPro: {"Weekend Devotion", "Completed exams on 4 consecutive weekends!", "🗓️"},

	ChatBeginner: {"Curious Mind", "Used the AI Tutor for the first time!", "🤖"},
	ChatMaster:   {"AI Enthusiast", "Asked 10 questions to the AI Tutor!", "🧠"},
	AIFriend:     {"AI Explorer", "Asked 25 questions to the AI Tutor!", "🤖"},
	AIPartner:    {"AI Collaborator", "Asked 50 questions to the AI Tutor!", "🤝"},
	AIAddict:     {"AI Power User", "Asked 100 questions to the AI Tutor!", "⚡"},

	NightOwl:          {"Night Owl", "Completed an exam between 12 AM and 5 AM!", "🌙"},
	EarlyBird:         {"Early Bird", "Completed an exam between 5 AM and 8 AM!", "🌅"},
	NightOwlPro:       {"Midnight Scholar", "Completed 5 exams during midnight hours!", "🧛"},
	EarlyBirdPro:      {"Sunrise Success", "Completed 5 exams during early morning hours!", "🌅"},
	LunchBreakLearner: {"Productive Lunch", "Completed an exam between 12 PM and 2 PM!", "🍱"},
	AfterSchoolStudy:  {"Evening Diligence", "Completed an exam between 4 PM and 7 PM!", "🌆"},
	WeekendWarrior:    {"Weekend Warrior", "Completed an exam on a Saturday or Sunday!", "📅"},
	HolidayHero:       {"Holiday Hero", "Completed an exam on New Year or Christmas!", "🎄"},
	Marathoner:        {"Marathoner", "Completed 3 or more exams in a single day!", "🏃"},

	Improving:      {"On the Rise", "Scored better in your current exam than the previous one!", "📈"},
	DiverseLearner: {"Diverse Learner", "Completed exams in 3 different categories!", "🌐"},
	CenturyClub:    {"Century Club", "Scored 100% on a full-length (100 question) exam!", "💯"},

	TwentyExams:      {"Dedicated Learner", "Completed 20 exams!", "📚"},
	FiftyExams:       {"Study Machine", "Completed 50 exams!", "⚙️"},
	HundredExams:     {"Exam Century", "Completed 100 exams!", "🏅"},
	TwoHundredExams:  {"Medical Scholar", "Completed 200 exams!", "📜"},
	FiveHundredExams: {"Knowledge Titan", "Completed 500 exams!", "🏛️"},

	NHMFan:    {"NHM Aspirant", "Completed 10 NHM exams!", "🏥"},
	CHOFan:    {"CHO Specialist", "Completed 10 CHO exams!", "👨‍⚕️"},
	ESICFan:   {"ESIC Warrior", "Completed 10 ESIC exams!", "🛡️"},
	AIIMSFan:  {"AIIMS Elite", "Completed 10 AIIMS exams!", "✨"},
	JIPMERFan: {"JIPMER Pro", "Completed 10 JIPMER exams!", "💎"},

	ThreePerfectScores: {"Hat-trick", "Achieved 3 perfect scores!", "🎩"},
	TenPerfectScores:   {"Perfect Ten", "Achieved 10 perfect scores!", "🌟"},
	TwentyHighScores:   {"Consistent Excellence", "Scored 90% or higher in 20 exams!", "📈"},
	FiftyHighScores:    {"Elite Performer", "Scored 90% or higher in 50 exams!", "🚀"},
	TotalScore1000:     {"Point Collector", "Accumulated 1,000 total correct answers!", "💰"},
	TotalScore5000:     {"Score Master", "Accumulated 5,000 total correct answers!", "💰"},
	TotalScore10000:    {"Question Crusher", "Accumulated 10,000 total correct answers!", "💥"},
	SmartStart:         {"Brilliant Beginning", "Scored 100% on your very first exam!", "💡"},
	ComebackKid:        {"Comeback Kid", "Scored 90% after a previous score below 50%!", "🔄"},
	GoldenMean:         {"Solid Foundation", "Maintained an average score of 75% over 10 exams!", "🧱"},

	KnowledgeSeeker: {"Knowledge Seeker", "Used AI Tutor after failing a question!", "🔍"},
	DeepDive:        {"Deep Dive", "Asked AI 5 questions in a single session!", "🤿"},
	QuickQuery:      {"Quick Learner", "Asked AI a question immediately after an exam!", "⏱️"},
	TopicMasteryAI:  {"Topic Mastery", "Asked about 5 different topics in AI Tutor!", "🧠"},
	AIGuided:        {"AI Guided", "Completed 5 exams after consulting the AI Tutor!", "🗺️"},
	BotBestie:       {"Bot Bestie", "Used AI Tutor for 7 consecutive days!", "🤖"},
	WisdomWeaver:    {"Wisdom Weaver", "Asked a very long question to the AI Tutor!", "🕸️"},

	JackOfAllTrades:  {"Jack of All Trades", "Completed at least one exam from every category!", "🃏"},
	Specialist:       {"Specialist", "Completed 50 exams in a single category!", "🎯"},
	DiversePortfolio: {"Diverse Portfolio", "Completed 5 different types of exams!", "📂"},
	RepeatCustomer:   {"Perfectionist", "Retook the same exam type 5 times!", "🔁"},
	ExamSprinter:     {"Exam Sprinter", "Completed 2 exams within 30 minutes!", "🏃‍♂️"},
	LongHaul:         {"Long Haul", "Completed 10 exams in a single week!", "🚛"},
	SteadyProgress:   {"Steady Progress", "Increased score in 3 consecutive exams!", "📈"},
	NoStoneUnturned:  {"No Stone Unturned", "Attempted every available exam type!", "💎"},

	SimNovice:         {"Sim Novice", "Completed your first clinical simulation!", "🩺"},
	SimExpert:         {"Sim Expert", "Successfully resolved 5 clinical simulations!", "🚑"},
	SimMaster:         {"Sim Master", "Successfully resolved 15 clinical simulations!", "🏥"},
	Lifesaver:         {"Lifesaver", "Resolved a clinical simulation with the patient in critical status!", "❤️"},
	OopsieDaisy:       {"Oopsie Daisy", "The patient's condition worsened significantly under your care.", "🫣"},
	PanicMode:         {"Panic Mode", "Made decisions that led to a deteriorating patient status.", "😨"},
	WalkingLiability:  {"Walking Liability", "Finished a simulation with the patient in a worse state than they started.", "🚔"},
	NightingalesTouch: {"Nightingale's Touch", "Patient condition improved in every single step of the simulation!", "✨"},
	CalmUnderPressure: {"Calm Under Pressure", "Stabilized a critical patient with expert precision.", "🧘"},
	ClinicalInstinct:  {"Clinical Instinct", "Perfectly resolved a complex clinical case.", "🧠"},
	DoubleShift:       {"Double Shift", "Completed 5 clinical simulations in a single day.", "☕"},
	ZombieDoc:         {"Zombie Doc", "Failed 5 clinical simulations in total. Maybe take a break?", "🧟"},
	CodeBlueVeteran:   {"Code Blue Veteran", "Successfully resolved 10 cases that were in Critical status.", "🚨"},
	PharmaPro:         {"Pharmacology Pro", "Correctly administered medication in a clinical simulation.", "💊"},
	VitalsVirtuoso:    {"Vitals Virtuoso", "Finished a simulation with all patient vitals in perfect normal range.", "📈"},

	KnowledgeHub:    {"Knowledge Hub", "Earned 30 different achievements!", "🏢"},
	LegendaryStatus: {"Legendary Status", "Earned 50 different achievements!", "👑"},
}
