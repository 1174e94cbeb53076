package engine

// AchievementID identifies one achievement. The set is fixed.
type AchievementID string

const (
	FirstSession   AchievementID = "firstSession"
	TenSessions    AchievementID = "tenSessions"
	Marathon       AchievementID = "marathon"
	WeekStreak     AchievementID = "weekStreak"
	HundredMinutes AchievementID = "hundredMinutes"
	NightOwl       AchievementID = "nightOwl"
)

// EvalInput is the aggregate state achievements are judged on. Hour is the
// local hour at which the latest session completed.
type EvalInput struct {
	TotalSessions      int
	LastSessionMinutes int
	CurrentStreak      int
	TotalFocusMinutes  int
	Hour               int
}

type AchievementInfo struct {
	ID          AchievementID
	Title       string
	Description string
	Icon        string
	met         func(EvalInput) bool
}

// Catalogue lists every achievement in evaluation order.
var Catalogue = []AchievementInfo{
	{FirstSession, "First Focus", "Complete your first session", "★",
		func(in EvalInput) bool { return in.TotalSessions >= 1 }},
	{TenSessions, "Dedicated", "Complete 10 sessions", "🏆",
		func(in EvalInput) bool { return in.TotalSessions >= 10 }},
	{Marathon, "Marathon", "Focus for 60+ minutes in one session", "⚡",
		func(in EvalInput) bool { return in.LastSessionMinutes >= 60 }},
	{WeekStreak, "On Fire", "Maintain a 7-day streak", "🔥",
		func(in EvalInput) bool { return in.CurrentStreak >= 7 }},
	{HundredMinutes, "Centurion", "Reach 100 total focus minutes", "👑",
		func(in EvalInput) bool { return in.TotalFocusMinutes >= 100 }},
	{NightOwl, "Night Owl", "Complete a session after 10 PM", "🌙",
		func(in EvalInput) bool { return in.Hour >= 22 }},
}

// Lookup returns the catalogue entry for id.
func Lookup(id AchievementID) (AchievementInfo, bool) {
	for _, a := range Catalogue {
		if a.ID == id {
			return a, true
		}
	}
	return AchievementInfo{}, false
}

// Achievements is the monotonically growing unlocked set.
type Achievements struct {
	unlocked map[AchievementID]bool
}

// NewAchievements restores the unlocked set. Stored titles ("First Focus")
// are accepted alongside ids; anything unknown is ignored.
func NewAchievements(stored map[string]bool) *Achievements {
	a := &Achievements{unlocked: make(map[AchievementID]bool)}
	for key, ok := range stored {
		if !ok {
			continue
		}
		for _, info := range Catalogue {
			if key == string(info.ID) || key == info.Title {
				a.unlocked[info.ID] = true
			}
		}
	}
	return a
}

// Evaluate unlocks every achievement whose rule is met and which is not yet
// unlocked, and returns the new ids in catalogue order.
func (a *Achievements) Evaluate(in EvalInput) []AchievementID {
	var fresh []AchievementID
	for _, info := range Catalogue {
		if a.unlocked[info.ID] || !info.met(in) {
			continue
		}
		a.unlocked[info.ID] = true
		fresh = append(fresh, info.ID)
	}
	return fresh
}

func (a *Achievements) IsUnlocked(id AchievementID) bool { return a.unlocked[id] }

// Unlocked lists unlocked ids in catalogue order.
func (a *Achievements) Unlocked() []AchievementID {
	var out []AchievementID
	for _, info := range Catalogue {
		if a.unlocked[info.ID] {
			out = append(out, info.ID)
		}
	}
	return out
}

func (a *Achievements) ids() map[string]bool {
	set := make(map[string]bool, len(a.unlocked))
	for id := range a.unlocked {
		set[string(id)] = true
	}
	return set
}

// evaluateAchievements unlocks everything the completion earned and queues
// one notice per new achievement.
func (e *Engine) evaluateAchievements(in EvalInput) {
	fresh := e.achievements.Evaluate(in)
	if len(fresh) == 0 {
		return
	}
	e.notices = append(e.notices, fresh...)
	e.saveAchievements()
	for _, id := range fresh {
		e.log.Info().Str("achievement", string(id)).Msg("achievement unlocked")
	}
}

func (e *Engine) IsUnlocked(id AchievementID) bool { return e.achievements.IsUnlocked(id) }

// UnlockedAchievements lists unlocked ids in catalogue order.
func (e *Engine) UnlockedAchievements() []AchievementID { return e.achievements.Unlocked() }

// ConsumeNewlyUnlocked pops the oldest queued achievement notice. Every
// notice is already in the unlocked set; the queue only paces the display.
func (e *Engine) ConsumeNewlyUnlocked() (AchievementID, bool) {
	if len(e.notices) == 0 {
		return "", false
	}
	id := e.notices[0]
	e.notices = e.notices[1:]
	e.saveNotices()
	return id, true
}
