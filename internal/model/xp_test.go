package model

import "testing"

func TestComputeXP(t *testing.T) {
	cases := []struct {
		priority Priority
		minutes  int
		want     int
	}{
		{PriorityHigh, 30, 55},
		{PriorityHigh, 0, 50},
		{PriorityMedium, 240, 54},
		{PriorityLow, 0, 20},
		{PriorityLow, 90, 26},
		{PriorityMedium, 60, 36},
	}
	for _, tc := range cases {
		if got := ComputeXP(tc.priority, tc.minutes); got != tc.want {
			t.Fatalf("ComputeXP(%s, %d) = %d, want %d", tc.priority, tc.minutes, got, tc.want)
		}
	}
}

func TestComputeXPDurationCap(t *testing.T) {
	for _, p := range []Priority{PriorityHigh, PriorityMedium, PriorityLow} {
		capped := ComputeXP(p, 240)
		for _, d := range []int{241, 300, 1000, 100000} {
			if got := ComputeXP(p, d); got != capped {
				t.Fatalf("ComputeXP(%s, %d) = %d, want capped %d", p, d, got, capped)
			}
		}
	}
	if ComputeXP(PriorityHigh, 240) != 90 {
		t.Fatalf("expected +80%% bonus at the cap, got %d", ComputeXP(PriorityHigh, 240))
	}
}

func TestComputeXPInvalidPriority(t *testing.T) {
	if got := ComputeXP(Priority("bogus"), 60); got != 0 {
		t.Fatalf("expected 0 for invalid priority, got %d", got)
	}
}

func TestLevelCurve(t *testing.T) {
	if XPRequiredForLevel(1) != 500 {
		t.Fatalf("level 1 threshold: %d", XPRequiredForLevel(1))
	}
	if XPRequiredForLevel(2) != 1415 {
		t.Fatalf("level 2 threshold: %d", XPRequiredForLevel(2))
	}
	if LevelForTotalXP(0) != 1 {
		t.Fatalf("characters start at level 1, got %d", LevelForTotalXP(0))
	}
	if LevelForTotalXP(1414) != 1 || LevelForTotalXP(1415) != 2 {
		t.Fatalf("unexpected level boundary: %d %d", LevelForTotalXP(1414), LevelForTotalXP(1415))
	}
	if LevelProgress(0) != 0 {
		t.Fatalf("expected 0%% progress at 0 xp, got %d", LevelProgress(0))
	}
	if p := LevelProgress(1415); p != 0 {
		t.Fatalf("expected 0%% right after level up, got %d", p)
	}
}

func TestCharacterGear(t *testing.T) {
	if len(CharacterGear(2)) != 0 {
		t.Fatal("no gear below level 3")
	}
	gear := CharacterGear(7)
	if len(gear) != 3 || gear[0] != GearSword || gear[2] != GearCrown {
		t.Fatalf("unexpected level 7 gear: %v", gear)
	}
	if len(CharacterGear(10)) != 4 {
		t.Fatalf("expected cape at level 10")
	}
}
