package manifest

import (
	"strings"
	"testing"
)

func BenchmarkParse(b *testing.B) {
	for b.Loop() {
		if _, err := Parse(sample); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseReader_Cached(b *testing.B) {
	ClearCache()

	ctx := b.Context()

	for b.Loop() {
		if _, err := ParseReader(ctx, strings.NewReader(sample)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseReader_Uncached(b *testing.B) {
	ctx := b.Context()

	for b.Loop() {
		_, err := ParseReader(ctx, strings.NewReader(sample), WithCache(false))
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGetByKey(b *testing.B) {
	m, err := Parse(sample)
	if err != nil {
		b.Fatal(err)
	}

	for b.Loop() {
		if _, err := m.GetByKey("dependencies", "tokio"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEvaluate(b *testing.B) {
	m, err := Parse(sample)
	if err != nil {
		b.Fatal(err)
	}

	ctx := b.Context()

	for b.Loop() {
		if _, err := m.Evaluate(ctx, `semver(package.version, "0.9.0")`); err != nil {
			b.Fatal(err)
		}
	}
}
