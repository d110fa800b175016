package responder

import "testing"

func reply(name string) string {
	for _, r := range Rules {
		if r.Name == name {
			return r.Reply
		}
	}
	panic("no rule " + name)
}

func TestRespond(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"How do I report an issue?", reply("report")},
		{"I want to browse", reply("explore")},
		{"How do I SIGN IN?", reply("login")},
		{"login please", reply("login")},
		{"Can I register here?", reply("signup")},
		{"sign up", reply("signup")},
		{"where is my profile", reply("profile")},
		{"I have a suggestion", reply("suggestion")},
		{"help", reply("help")},
		{"Is there a user guide", reply("help")},
		{"contact someone", reply("contact")},
		{"Do you have dark mode?", reply("dark-mode")},
		{"logout", reply("logout")},
		{"thank you!", reply("thanks")},
		{"Thanks a lot", reply("thanks")},
		{"xyzzy", Fallback},
		{"", Fallback},
	}
	for _, tt := range tests {
		if got := Respond(tt.message); got != tt.want {
			t.Errorf("Respond(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}

func TestRespondFirstMatchWins(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		// Mentions both "report" and "login": rule 1 is tested first.
		{"I can't login to report a pothole", reply("report")},
		// "help" also appears, but "issue" comes earlier in the table.
		{"help me with an issue", reply("report")},
		// "sign in" (login) outranks "support".
		{"support for sign in", reply("login")},
		// "logout" contains no "login", but a profile mention wins first.
		{"logout from profile", reply("profile")},
		// "support" outranks "thank".
		{"thanks, support team", reply("contact")},
	}
	for _, tt := range tests {
		if got := Respond(tt.message); got != tt.want {
			t.Errorf("Respond(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}

func TestRespondIsDeterministic(t *testing.T) {
	for _, msg := range []string{"How do I report an issue?", "xyzzy", "thank you!", "dark mode"} {
		first := Respond(msg)
		for i := 0; i < 5; i++ {
			if got := Respond(msg); got != first {
				t.Fatalf("Respond(%q) changed between calls: %q vs %q", msg, first, got)
			}
		}
	}
}

func TestFallbackRepeatsHelpSummary(t *testing.T) {
	if Fallback == reply("help") {
		t.Fatal("fallback should not be identical to the help reply")
	}
	if want := reply("help"); Fallback[len(Fallback)-len(want):] != want {
		t.Errorf("Fallback = %q, want it to end with the help summary", Fallback)
	}
}

func TestMatch(t *testing.T) {
	if _, ok := Match("qwerty"); ok {
		t.Error("Match(qwerty) ok = true, want false")
	}
	rule, ok := Match("DARK MODE")
	if !ok || rule.Name != "dark-mode" {
		t.Errorf("Match(DARK MODE) = %q, %v", rule.Name, ok)
	}
}
