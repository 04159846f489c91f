package update

import "testing"

func TestValidateRepo(t *testing.T) {
	valid := []string{
		"boreal-interactive/timbertrek",
		"org.repo/name-1",
	}
	for _, repo := range valid {
		if err := validateRepo(repo); err != nil {
			t.Fatalf("expected valid repo %q, got error: %v", repo, err)
		}
	}

	invalid := []string{
		"",
		"owner",
		"owner/repo/extra",
		"owner /repo",
		"owner/repo?x=1",
		"../owner/repo",
	}
	for _, repo := range invalid {
		if err := validateRepo(repo); err == nil {
			t.Fatalf("expected invalid repo %q to fail", repo)
		}
	}
}

func TestValidateHTTPSURL(t *testing.T) {
	allowed := map[string]struct{}{
		"github.com": {},
	}

	if err := validateHTTPSURL("https://github.com/boreal-interactive/timbertrek", allowed); err != nil {
		t.Fatalf("expected allowed URL to pass: %v", err)
	}

	if err := validateHTTPSURL("http://github.com/boreal-interactive/timbertrek", allowed); err == nil {
		t.Fatalf("expected non-https URL to fail")
	}

	if err := validateHTTPSURL("https://example.com/boreal-interactive/timbertrek", allowed); err == nil {
		t.Fatalf("expected non-allowlisted host URL to fail")
	}
}

func TestExpectedArchiveName(t *testing.T) {
	got := expectedArchiveName("timbertrek", "v1.2.0", "linux", "amd64")
	if got != "timbertrek_1.2.0_linux_amd64.tar.gz" {
		t.Fatalf("unexpected archive name %q", got)
	}
	got = expectedArchiveName("timbertrek", "v1.2.0", "windows", "amd64")
	if got != "timbertrek_1.2.0_windows_amd64.zip" {
		t.Fatalf("unexpected archive name %q", got)
	}
}
