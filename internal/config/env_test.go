package config

import "testing"

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestIntEnvOrDefault(t *testing.T) {
	t.Setenv("INT_TEST", "14")
	if got := intEnvOrDefault("INT_TEST", 30); got != 14 {
		t.Fatalf("expected 14, got %d", got)
	}
	for _, raw := range []string{"", "abc", "-3", "0"} {
		t.Setenv("INT_TEST", raw)
		if got := intEnvOrDefault("INT_TEST", 30); got != 30 {
			t.Fatalf("expected default for %q, got %d", raw, got)
		}
	}
}

func TestListEnv(t *testing.T) {
	t.Setenv("LIST_TEST", " a, ,b ")
	got := listEnv("LIST_TEST")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected list %v", got)
	}
	t.Setenv("LIST_TEST", "  ")
	if listEnv("LIST_TEST") != nil {
		t.Fatalf("expected nil for blank value")
	}
}
