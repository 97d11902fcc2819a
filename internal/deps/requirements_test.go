package deps

import (
	"strings"
	"testing"
)

func TestParseRequirements(t *testing.T) {
	input := strings.Join([]string{
		"# web framework",
		"flask>=2.0",
		"",
		"numpy==1.21.0",
		"requests[socks]>=2.25,<3.0",
		"pandas ; python_version >= '3.8'",
		"-r other.txt",
		"tqdm  # progress bars",
	}, "\n")

	reqs, err := ParseRequirements(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRequirements: %v", err)
	}

	wantNames := []string{"flask", "numpy", "requests", "pandas", "tqdm"}
	if len(reqs) != len(wantNames) {
		t.Fatalf("expected %d requirements, got %+v", len(wantNames), reqs)
	}
	for i, name := range wantNames {
		if reqs[i].Name != name {
			t.Fatalf("requirement %d: got %q, want %q", i, reqs[i].Name, name)
		}
	}

	if !reqs[0].Pinned() || reqs[3].Pinned() {
		t.Fatalf("constraint detection wrong: %+v", reqs)
	}
}

func TestParseSpecErrors(t *testing.T) {
	for _, bad := range []string{"", "==1.0", ">=2.0"} {
		if _, err := ParseSpec(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestSatisfiedBy(t *testing.T) {
	cases := []struct {
		spec    string
		version string
		want    bool
	}{
		{"numpy==1.21.0", "1.21.0", true},
		{"numpy==1.21.0", "1.21.1", false},
		{"flask>=2.0", "2.3.2", true},
		{"flask>=2.0", "1.1.4", false},
		{"pandas>=1.0,<2.0", "1.5.3", true},
		{"pandas>=1.0,<2.0", "2.0.1", false},
		{"django~=4.2", "4.2.7", true},
		{"django~=4.2", "5.0.0", false},
		{"six!=1.15.0", "1.16.0", true},
		{"six!=1.15.0", "1.15.0", false},
		{"anyver", "0.0.1", true},
	}

	for _, tc := range cases {
		req, err := ParseSpec(tc.spec)
		if err != nil {
			t.Fatalf("ParseSpec(%q): %v", tc.spec, err)
		}
		if got := req.SatisfiedBy(tc.version); got != tc.want {
			t.Fatalf("%q satisfied by %q: got %v, want %v", tc.spec, tc.version, got, tc.want)
		}
	}
}

func TestSatisfiedByUnparseableVersion(t *testing.T) {
	req, err := ParseSpec("weird==1.0.0")
	if err != nil {
		t.Fatalf("ParseSpec: %v", err)
	}
	if req.SatisfiedBy("not-a-version") {
		t.Fatal("unparseable installed version must count as unsatisfied")
	}
}

func TestLoadRequirementsMissingFile(t *testing.T) {
	if _, err := LoadRequirements("/definitely/not/here.txt"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
