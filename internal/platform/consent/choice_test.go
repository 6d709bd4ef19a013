package consent

import "testing"

func TestParseChoice(t *testing.T) {
	t.Parallel()

	tests := map[string]Choice{
		"accepted":   Accepted,
		"rejected":   Rejected,
		" accepted ": Accepted,
		"":           Unset,
		"ACCEPTED":   Unset,
		"yes":        Unset,
	}
	for in, want := range tests {
		if got := ParseChoice(in); got != want {
			t.Fatalf("ParseChoice(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSignalFor(t *testing.T) {
	t.Parallel()

	if got := SignalFor(Accepted); got != (Signal{AnalyticsStorage: Granted, AdStorage: Granted}) {
		t.Fatalf("SignalFor(Accepted) = %+v", got)
	}
	for _, c := range []Choice{Rejected, Unset} {
		if got := SignalFor(c); got != (Signal{AnalyticsStorage: Denied, AdStorage: Denied}) {
			t.Fatalf("SignalFor(%s) = %+v", c, got)
		}
	}
}

func TestChoiceString(t *testing.T) {
	t.Parallel()

	if Unset.String() != "unset" || Accepted.String() != "accepted" {
		t.Fatalf("unexpected strings %q %q", Unset.String(), Accepted.String())
	}
}
