package bbcode

import (
	"math/rand/v2"
	"strings"
	"testing"
)

const benchChunk = "Hello [b]world[/b], this is [i]some [u]text[/u][/i] with a [url=http://x.com]link[/url] & <stuff>.\n"

func BenchmarkParse(b *testing.B) {
	p := testParser(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Parse(benchChunk)
	}
}

func BenchmarkParse_LongInput(b *testing.B) {
	p := testParser(b, WithAutolink())
	input := strings.Repeat(benchChunk+"see https://example.com/page ", 100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Parse(input)
	}
}

func BenchmarkParse_PlainText(b *testing.B) {
	p := testParser(b)
	input := strings.Repeat("just a plain sentence without any markup at all ", 200)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Parse(input)
	}
}

func BenchmarkParse_DeeplyNested(b *testing.B) {
	p := testParser(b)
	input := strings.Repeat("[b][i]", 500) + "deep" + strings.Repeat("[/i][/b]", 500)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Parse(input)
	}
}

func BenchmarkParse_Chaos_UnclosedTagStorm(b *testing.B) {
	p := testParser(b)
	input := strings.Repeat("[b][i][u][list][*]", 200)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Parse(input)
	}
}

func BenchmarkParse_Chaos_StrayCloses(b *testing.B) {
	p := testParser(b)
	input := strings.Repeat("[/b][/i][/url]x", 300)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Parse(input)
	}
}

func BenchmarkParse_Chaos_MixedMayhem(b *testing.B) {
	p := testParser(b, WithAutolink())
	r := rand.New(rand.NewPCG(1, 2))

	var sb strings.Builder
	for range 100 {
		sb.WriteString(chaosInput(r))
	}
	input := sb.String()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Parse(input)
	}
}
