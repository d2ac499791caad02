package buildinfo

import "testing"

func TestShort(t *testing.T) {
	defer func(v, c string) { Version, Commit = v, c }(Version, Commit)

	cases := []struct {
		version, commit, want string
	}{
		{"v1.2.0", "0123456789ab", "v1.2.0"},
		{"dev", "0123456789ab", "0123456"},
		{"dev", "abc", "abc"},
		{"dev", "unknown", "dev"},
	}
	for _, c := range cases {
		Version, Commit = c.version, c.commit
		if got := Short(); got != c.want {
			t.Errorf("Short() with %q/%q = %q, want %q", c.version, c.commit, got, c.want)
		}
	}
}
