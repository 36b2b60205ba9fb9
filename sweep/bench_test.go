package sweep_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/kvis/geometry"
	"github.com/katalvlaran/kvis/oracle"
	"github.com/katalvlaran/kvis/rays"
	"github.com/katalvlaran/kvis/sweep"
)

func benchSweepAll(b *testing.B, workers int) {
	segs := append(frame(20, 20),
		geometry.Seg(3, 4, 12, 4),
		geometry.Seg(12, 4, 12, 15),
		geometry.Seg(5, 9, 9, 17),
	)
	fams, err := rays.Families(20, 20, 0.01, rays.Angles(9))
	if err != nil {
		b.Fatal(err)
	}
	q := oracle.NewScene(segs, oracle.DefaultOptions())
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sweep.SweepAll(ctx, fams, q, workers); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSweepAll_Serial(b *testing.B)   { benchSweepAll(b, 1) }
func BenchmarkSweepAll_Parallel(b *testing.B) { benchSweepAll(b, 0) }
