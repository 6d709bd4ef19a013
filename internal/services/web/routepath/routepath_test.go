package routepath

import "testing"

func TestBuilders(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		BlogPost("calm-defaults"): "/blog/calm-defaults",
		BlogPost(" a b "):         "/blog/a%20b",
		Author("ana/lima"):        "/authors/ana%2Flima",
		Category("design"):        "/categories/design",
		Page("about"):             "/about",
		Static("/site.css"):       "/static/site.css",
	}
	for got, want := range tests {
		if got != want {
			t.Fatalf("route = %q, want %q", got, want)
		}
	}
}

func TestIsLocalRedirect(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"/blog/?lang=pt_BR":   true,
		"/":                   true,
		"":                    false,
		"//evil.example":      false,
		"/\\evil.example":     false,
		"https://evil.test/":  false,
		"blog/":               false,
	}
	for target, want := range tests {
		if got := IsLocalRedirect(target); got != want {
			t.Fatalf("IsLocalRedirect(%q) = %t, want %t", target, got, want)
		}
	}
}
