package catch

// Milestone is a progress threshold in percent of the goal.
type Milestone int

const (
	MilestoneQuarter      Milestone = 25
	MilestoneHalf         Milestone = 50
	MilestoneThreeQuarter Milestone = 75
	MilestoneGoal         Milestone = 100
)

var milestones = [...]Milestone{
	MilestoneQuarter,
	MilestoneHalf,
	MilestoneThreeQuarter,
	MilestoneGoal,
}

// Text returns the message shown when the milestone is reached.
func (m Milestone) Text() string {
	switch m {
	case MilestoneQuarter:
		return "Great start! 25% there."
	case MilestoneHalf:
		return "Halfway there!"
	case MilestoneThreeQuarter:
		return "Almost there! 75% reached."
	case MilestoneGoal:
		return "Goal reached! Well done!"
	default:
		return ""
	}
}

// MilestoneTracker reports each threshold at most once per goal.
type MilestoneTracker struct {
	goal    int
	reached [len(milestones)]bool
}

// Reset forgets reported thresholds and sets the goal.
func (m *MilestoneTracker) Reset(goal int) {
	m.goal = goal
	m.reached = [len(milestones)]bool{}
}

// SetGoal changes the goal, resetting only if the value differs.
func (m *MilestoneTracker) SetGoal(goal int) {
	if goal != m.goal {
		m.Reset(goal)
	}
}

// Observe checks a new score. It reports at most one milestone: the lowest
// reached threshold not yet reported. Higher ones wait for later changes.
// A goal of zero or less disables tracking.
func (m *MilestoneTracker) Observe(score int) (Milestone, bool) {
	if m.goal <= 0 {
		return 0, false
	}
	for i, ms := range milestones {
		if m.reached[i] {
			continue
		}
		// score/goal >= ms/100 without floating point
		if score*100 >= int(ms)*m.goal {
			m.reached[i] = true
			return ms, true
		}
		return 0, false
	}
	return 0, false
}
