package pointlearn_test

import (
	"context"
	"fmt"

	"github.com/yyyoichi/pointlearn"
)

func ExampleKMeans() {
	samples := []pointlearn.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1},
		{X: 10, Y: 10}, {X: 11, Y: 10}, {X: 10, Y: 11},
	}
	km, err := pointlearn.NewKMeans(samples, 2,
		pointlearn.SeedAt(pointlearn.Point{X: 0, Y: 0}, pointlearn.Point{X: 10, Y: 10}))
	if err != nil {
		fmt.Printf("Error creating k-means: %v\n", err)
		return
	}

	res, err := km.Run(context.Background())
	if err != nil {
		fmt.Printf("Error running k-means: %v\n", err)
		return
	}
	fmt.Println(res.Status)
	for _, c := range km.Centroids() {
		fmt.Printf("%d: (%.2f, %.2f) %v\n", c.Label, c.Position.X, c.Position.Y, c.Members)
	}

	// Output:
	// converged
	// 0: (0.33, 0.33) [0 1 2]
	// 1: (10.33, 10.33) [3 4 5]
}

func ExampleClusterDivisive() {
	// Four tight pairs at the corners of a square.
	var samples []pointlearn.Point
	for _, c := range []pointlearn.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 0, Y: 100}, {X: 100, Y: 100}} {
		samples = append(samples, c, pointlearn.Point{X: c.X + 1, Y: c.Y})
	}

	centroids, res, err := pointlearn.ClusterDivisive(context.Background(), samples, pointlearn.WithSeed(1))
	if err != nil {
		fmt.Printf("Error clustering: %v\n", err)
		return
	}
	fmt.Println(res.Status, len(centroids))

	// Output:
	// completed 4
}

func ExampleClassify() {
	samples := []pointlearn.Sample{
		{Point: pointlearn.Point{X: 5, Y: 5}, Class: pointlearn.ClassA},
		{Point: pointlearn.Point{X: 6, Y: 6}, Class: pointlearn.ClassA},
		{Point: pointlearn.Point{X: -5, Y: -5}, Class: pointlearn.ClassB},
		{Point: pointlearn.Point{X: -6, Y: -6}, Class: pointlearn.ClassB},
	}

	b, res, err := pointlearn.Classify(context.Background(), samples, pointlearn.Boundary{A: 1, B: 1, C: 0})
	if err != nil {
		fmt.Printf("Error classifying: %v\n", err)
		return
	}
	fmt.Println(b)
	fmt.Println(res.Status, res.Iterations)

	// Output:
	// 1.00X + 1.00Y + 0.00 = 0
	// converged 0
}
