package catch

import (
	"reflect"
	"testing"
)

func TestMilestoneTexts(t *testing.T) {
	tests := map[Milestone]string{
		MilestoneQuarter:      "Great start! 25% there.",
		MilestoneHalf:         "Halfway there!",
		MilestoneThreeQuarter: "Almost there! 75% reached.",
		MilestoneGoal:         "Goal reached! Well done!",
	}
	for m, want := range tests {
		if got := m.Text(); got != want {
			t.Errorf("Milestone(%d).Text() = %q, expected %q", m, got, want)
		}
	}
}

func TestMilestoneAscendingOnce(t *testing.T) {
	var m MilestoneTracker
	m.Reset(20)

	var fired []Milestone
	for _, score := range []int{1, 5, 6, 4, 10, 11, 15, 20, 21, 20} {
		if ms, ok := m.Observe(score); ok {
			fired = append(fired, ms)
		}
	}

	want := []Milestone{MilestoneQuarter, MilestoneHalf, MilestoneThreeQuarter, MilestoneGoal}
	if !reflect.DeepEqual(fired, want) {
		t.Errorf("fired = %v, expected %v", fired, want)
	}
}

func TestMilestoneLowestWinsOnJump(t *testing.T) {
	var m MilestoneTracker
	m.Reset(4)

	// Jumping straight to the goal reports only the lowest threshold
	ms, ok := m.Observe(4)
	if !ok || ms != MilestoneQuarter {
		t.Fatalf("Observe(4) = %v, %v; expected quarter", ms, ok)
	}

	// The rest follow one per change
	var rest []Milestone
	for i := 0; i < 5; i++ {
		if ms, ok := m.Observe(4); ok {
			rest = append(rest, ms)
		}
	}
	want := []Milestone{MilestoneHalf, MilestoneThreeQuarter, MilestoneGoal}
	if !reflect.DeepEqual(rest, want) {
		t.Errorf("later milestones = %v, expected %v", rest, want)
	}
}

func TestMilestoneResetOnGoalChange(t *testing.T) {
	var m MilestoneTracker
	m.Reset(10)
	m.Observe(3)

	m.SetGoal(10)
	if _, ok := m.Observe(3); ok {
		t.Error("same goal should keep reported thresholds")
	}

	m.SetGoal(20)
	ms, ok := m.Observe(5)
	if !ok || ms != MilestoneQuarter {
		t.Errorf("goal change should clear thresholds, got %v, %v", ms, ok)
	}
}

func TestMilestoneDisabledWithoutGoal(t *testing.T) {
	var m MilestoneTracker
	m.Reset(0)
	if _, ok := m.Observe(100); ok {
		t.Error("goal 0 should disable milestones")
	}
	m.Reset(-5)
	if _, ok := m.Observe(100); ok {
		t.Error("negative goal should disable milestones")
	}
}

func TestMilestoneNegativeScore(t *testing.T) {
	var m MilestoneTracker
	m.Reset(15)
	if _, ok := m.Observe(-6); ok {
		t.Error("negative score should not reach any milestone")
	}
}
