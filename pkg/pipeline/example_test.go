package pipeline_test

import (
	"fmt"

	"github.com/matzehuels/stackchart/pkg/core/chart"
	"github.com/matzehuels/stackchart/pkg/core/series"
	"github.com/matzehuels/stackchart/pkg/pipeline"
)

func ExampleBuildFrame() {
	cfg := chart.Config{
		Categories: []string{"Q1", "Q2", "Q3"},
		Series: []series.Raw{
			{ID: "north", StackID: "region", Data: []any{4, 6, 8}},
			{ID: "south", StackID: "region", Data: []any{3, nil, 5}},
		},
	}
	f, warnings, err := pipeline.BuildFrame(cfg)
	if err != nil {
		panic(err)
	}
	fmt.Println(len(f.Stacks), f.BarCount(), len(warnings))
	// Output: 3 5 0
}
