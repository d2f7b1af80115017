package format

import "testing"

func TestSize(t *testing.T) {
	cases := []struct {
		name string
		b    int64
		sys  System
		want string
	}{
		{"metric example", 1234567, Metric, "1.23 MB"},
		{"binary example", 1048576, Binary, "1.00 MiB"},
		{"bytes example", 500, Bytes, "500 B"},
		{"metric zero", 0, Metric, "0 B"},
		{"binary zero", 0, Binary, "0 B"},
		{"metric sub-unit", 999, Metric, "999 B"},
		{"binary sub-unit", 1023, Binary, "1023 B"},
		{"gib fixed", 1 << 30, GiB, "1.00 GiB"},
		{"gb fixed", 1_000_000_000, GB, "1.00 GB"},
		{"mib fixed small", 512 * 1024, MiB, "0.50 MiB"},
		{"mb fixed small", 500_000, MB, "0.50 MB"},
		{"unknown defaults to metric", 1000, System("bogus"), "1.00 kB"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Size(c.b, c.sys); got != c.want {
				t.Errorf("Size(%d, %q) = %q, want %q", c.b, c.sys, got, c.want)
			}
		})
	}
}

func TestShortenPath(t *testing.T) {
	short := "/a/b/c"
	if got := ShortenPath(short); got != short {
		t.Errorf("short path was altered: %q", got)
	}

	long := "/very/long/path/that/exceeds/the/forty-five/character/budget/and/then/some"
	got := ShortenPath(long)
	if len([]rune(got)) != shortenHead+1+shortenTail {
		t.Errorf("shortened path has unexpected length: %q (%d runes)", got, len([]rune(got)))
	}
	r := []rune(long)
	wantHead := string(r[:shortenHead])
	wantTail := string(r[len(r)-shortenTail:])
	if got[:len(wantHead)] != wantHead {
		t.Errorf("shortened path head mismatch: %q", got)
	}
	if got[len(got)-len(wantTail):] != wantTail {
		t.Errorf("shortened path tail mismatch: %q", got)
	}
}
