package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-vocoder/dsp/spectrum"
)

func ExampleMagnitude() {
	bins := []complex128{1 + 0i, 0 + 1i, -1 + 0i}
	mag := spectrum.Magnitude(bins)
	fmt.Printf("%.1f %.1f %.1f\n", mag[0], mag[1], mag[2])
	// Output:
	// 1.0 1.0 1.0
}

func ExampleExpand() {
	full, _ := spectrum.Expand([]float64{1, 2, 3, 4}, spectrum.KindMagnitude)
	fmt.Println(full)
	fmt.Println(spectrum.Reduce(full))
	// Output:
	// [1 2 3 4 3 2]
	// [1 2 3 4]
}
