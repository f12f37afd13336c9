package spectrum

import (
	"testing"

	"github.com/cwbudde/algo-vocoder/internal/testutil"
)

var benchSizes = []struct {
	name string
	size int
}{
	{"257", 257},
	{"513", 513},
	{"1025", 1025},
	{"4097", 4097},
}

func BenchmarkMagnitude(b *testing.B) {
	for _, tc := range benchSizes {
		b.Run(tc.name, func(b *testing.B) {
			in := make([]complex128, tc.size)
			for i := range in {
				in[i] = complex(float64(i)/10.0, float64(tc.size-i)/10.0)
			}

			b.SetBytes(int64(tc.size * 16))
			b.ResetTimer()

			for range b.N {
				_ = Magnitude(in)
			}
		})
	}
}

func BenchmarkExpandFrames(b *testing.B) {
	for _, tc := range benchSizes {
		b.Run(tc.name, func(b *testing.B) {
			frames := testutil.Frames(testutil.PositiveSpectrum(1, tc.size), 200)

			b.ResetTimer()

			for range b.N {
				if _, err := ExpandFrames(frames, KindMagnitude); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
