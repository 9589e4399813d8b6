package scale_test

import (
	"fmt"

	"github.com/matzehuels/stackchart/pkg/core/scale"
)

func ExampleNewLinear() {
	// A y axis: data 0..100 drawn bottom-up in a 300px tall area.
	y, _ := scale.NewLinear(scale.Domain{Min: 0, Max: 100}, scale.Range{Start: 300, End: 0})

	mid, _ := y.Forward(50)
	over, _ := y.Forward(120)
	fmt.Println("50 ->", mid)
	fmt.Println("120 ->", over)
	// Output:
	// 50 -> 150
	// 120 -> -60
}

func ExampleNewBand() {
	x, _ := scale.NewBand([]string{"Mon", "Tue", "Wed", "Thu"}, scale.Range{Start: 0, End: 400})

	start, _ := x.ForwardCategory("Wed")
	_, ok := x.Forward(7)
	fmt.Println("bandwidth:", x.Bandwidth())
	fmt.Println("Wed starts at:", start)
	fmt.Println("index 7 valid:", ok)
	// Output:
	// bandwidth: 100
	// Wed starts at: 200
	// index 7 valid: false
}
