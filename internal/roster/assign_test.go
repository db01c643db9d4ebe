package roster

import "testing"

func TestAssignNumbersSingleCandidateGoesToFirstPlayer(t *testing.T) {
	players := []Player{
		{ID: "p1", Name: "Josh Jackson"},
		{ID: "p2", Name: "Jackson, Josh"},
	}

	got := AssignNumbers(players, DefaultJerseyTable())
	if len(got) != 1 {
		t.Fatalf("expected exactly one assignment, got %v", got)
	}
	if got["p1"] != 54 {
		t.Fatalf("expected p1 to receive 54, got %v", got)
	}
	if _, ok := got["p2"]; ok {
		t.Fatalf("expected p2 to stay unassigned")
	}
}

func TestAssignNumbersSpellingsOfOnePersonShareCandidates(t *testing.T) {
	players := []Player{
		{ID: "p1", Name: "Josh Jackson"},
		{ID: "p2", Name: "Joshua C. Jackson"},
	}

	got := AssignNumbers(players, DefaultJerseyTable())
	if len(got) != 1 || got["p1"] != 54 {
		t.Fatalf("expected only p1 to receive 54, got %v", got)
	}
	if _, ok := got["p2"]; ok {
		t.Fatalf("expected p2 to stay unassigned")
	}
}

func TestAssignNumbersOtherPersonWithSameNumberIsIndependent(t *testing.T) {
	players := []Player{
		{ID: "kale", Name: "Kale Hansen", Number: IntPtr(54)},
		{ID: "josh", Name: "Joshua C. Jackson"},
	}

	got := AssignNumbers(players, DefaultJerseyTable())
	if got["josh"] != 54 {
		t.Fatalf("expected 54 to stay available for a different person, got %v", got)
	}
}

func TestAssignNumbersSkipsNumbersInUse(t *testing.T) {
	players := []Player{
		{ID: "numbered", Name: "Dalin Afu", Number: IntPtr(0)},
		{ID: "open", Name: "Dalin N. Afu"},
	}

	got := AssignNumbers(players, DefaultJerseyTable())
	if got["open"] != 61 {
		t.Fatalf("expected next candidate 61, got %v", got)
	}
	if _, ok := got["numbered"]; ok {
		t.Fatalf("expected numbered player to be left alone")
	}
}

func TestAssignNumbersSecondSameNameGetsNextCandidate(t *testing.T) {
	players := []Player{
		{ID: "x", Name: "Dalin Afu"},
		{ID: "y", Name: "Afu Dalin"},
		{ID: "z", Name: "Dalin Afu"},
	}

	got := AssignNumbers(players, DefaultJerseyTable())
	if got["x"] != 0 || got["y"] != 61 {
		t.Fatalf("expected 0 then 61, got %v", got)
	}
	if _, ok := got["z"]; ok {
		t.Fatalf("expected third entry to be skipped once candidates are exhausted")
	}
}

func TestAssignNumbersIgnoresUnknownAndEmptyNames(t *testing.T) {
	players := []Player{
		{ID: "u", Name: "Not On Record"},
		{ID: "e", Name: ""},
	}
	if got := AssignNumbers(players, DefaultJerseyTable()); len(got) != 0 {
		t.Fatalf("expected no assignments, got %v", got)
	}
}

func TestAssignNumbersDoesNotMutateAndIsIdempotent(t *testing.T) {
	players := []Player{{ID: "p", Name: "Noah Behm"}}

	got := AssignNumbers(players, DefaultJerseyTable())
	if got["p"] != 5 {
		t.Fatalf("expected 5, got %v", got)
	}
	if players[0].Number != nil {
		t.Fatalf("expected input to stay untouched")
	}

	players[0].Number = IntPtr(got["p"])
	if again := AssignNumbers(players, DefaultJerseyTable()); len(again) != 0 {
		t.Fatalf("expected no work on second pass, got %v", again)
	}
}

func TestAssignNumbersNilTable(t *testing.T) {
	if got := AssignNumbers([]Player{{ID: "p", Name: "Noah Behm"}}, nil); len(got) != 0 {
		t.Fatalf("expected no assignments without a table, got %v", got)
	}
}
