package pkg

import (
	"regexp"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "bmk" {
		t.Errorf("expected Name to be %q, got %q", "bmk", Name)
	}
}

func TestVersion(t *testing.T) {
	semver := regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`)

	v := Version()
	if !semver.MatchString(v) {
		t.Errorf("expected semantic version, got %q", v)
	}
}

func TestAuthor(t *testing.T) {
	if len(Author) == 0 {
		t.Fatal("expected at least one author")
	}

	for _, a := range Author {
		if a.Name == "" || a.Email == "" {
			t.Errorf("incomplete author entry: %+v", a)
		}
	}
}
