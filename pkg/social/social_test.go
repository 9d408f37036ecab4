package social_test

import (
	"testing"

	"github.com/agentstation/orgmap/pkg/companies"
	"github.com/agentstation/orgmap/pkg/social"
)

func TestClassifyHostAndSubdomain(t *testing.T) {
	taxonomy := social.DefaultTaxonomy()

	tests := []struct {
		url  string
		want companies.Platform
		ok   bool
	}{
		{"https://www.X.com/Acme", companies.PlatformX, true},
		{"https://x.com/Acme", companies.PlatformX, true},
		{"https://twitter.com/Acme", companies.PlatformX, true},
		{"https://NotX.com/Acme", "", false},
		{"https://www.linkedin.com/company/acme", companies.PlatformLinkedIn, true},
		{"https://notfacebook.com.evil.tld/page", "", false},
		{"https://facebook.com.evil.tld/page", "", false},
		{"https://m.facebook.com/acme", companies.PlatformFacebook, true},
		{"https://example.com", "", false},
		{"not a url", "", false},
	}
	for _, tt := range tests {
		got, ok := taxonomy.Classify(tt.url)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Classify(%q) = (%q, %v), want (%q, %v)", tt.url, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCollectFirstWinsPerPlatform(t *testing.T) {
	taxonomy := social.DefaultTaxonomy()
	links := []string{
		"https://example.com/about",
		"https://x.com/acme",
		"https://twitter.com/acme_legacy", // same platform, already resolved
		"https://github.com/acme",
	}

	got := taxonomy.Collect(links)
	if len(got) != 2 {
		t.Fatalf("expected 2 platforms, got %d: %v", len(got), got)
	}
	if got[companies.PlatformX] != "https://x.com/acme" {
		t.Errorf("expected first x link to win, got %q", got[companies.PlatformX])
	}
	if got[companies.PlatformGitHub] != "https://github.com/acme" {
		t.Errorf("unexpected github link %q", got[companies.PlatformGitHub])
	}
}

func TestCollectNothingClassified(t *testing.T) {
	got := social.DefaultTaxonomy().Collect([]string{"https://example.com"})
	if got != nil {
		t.Errorf("expected nil map, got %v", got)
	}
}
