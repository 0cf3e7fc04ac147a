// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/eigenframes/matrix"
)

// MinSide is the smallest image side Synthetic can draw digits on.
const MinSide = 8

// noiseLevel is the amplitude of uniform background noise.
const noiseLevel = 0.05

// Seven-segment layout: a top, b upper right, c lower right, d bottom,
// e lower left, f upper left, g middle.
const (
	segA = 1 << iota
	segB
	segC
	segD
	segE
	segF
	segG
)

var digitSegments = [10]int{
	segA | segB | segC | segD | segE | segF,        // 0
	segB | segC,                                    // 1
	segA | segB | segD | segE | segG,               // 2
	segA | segB | segC | segD | segG,               // 3
	segB | segC | segF | segG,                      // 4
	segA | segC | segD | segF | segG,               // 5
	segA | segC | segD | segE | segF | segG,        // 6
	segA | segB | segC,                             // 7
	segA | segB | segC | segD | segE | segF | segG, // 8
	segA | segB | segC | segD | segF | segG,        // 9
}

type segment struct{ x0, y0, x1, y1 float64 }

// Synthetic draws n side×side digit images, one per row, cycling labels
// 0..9. Each image gets a random shift of up to one pixel and uniform noise,
// both drawn from seed, so equal arguments give identical output.
//
// Errors: ErrBadSize when n < 1 or side < MinSide.
func Synthetic(n, side int, seed int64) (*matrix.Dense, []int, error) {
	if n < 1 || side < MinSide {
		return nil, nil, fmt.Errorf("dataset.Synthetic: n=%d side=%d: %w", n, side, ErrBadSize)
	}
	rng := rand.New(rand.NewSource(seed))
	N := side * side
	flat := make([]float64, n*N)
	labels := make([]int, n)

	for i := 0; i < n; i++ {
		labels[i] = i % 10
		dx := float64(rng.Intn(3) - 1)
		dy := float64(rng.Intn(3) - 1)
		drawDigit(flat[i*N:(i+1)*N], side, labels[i], dx, dy)
		for p := i * N; p < (i+1)*N; p++ {
			flat[p] = math.Min(flat[p]+noiseLevel*rng.Float64(), 1)
		}
	}

	m, err := matrix.NewDenseFrom(n, N, flat)
	if err != nil {
		return nil, nil, fmt.Errorf("dataset.Synthetic: %w", err)
	}

	return m, labels, nil
}

// drawDigit sets pixels within the stroke half-width of any lit segment to 1.
func drawDigit(img []float64, side, digit int, dx, dy float64) {
	s := float64(side)
	left, right := s*0.25+dx, s*0.75-1+dx
	top, mid, bottom := s*0.15+dy, s*0.5-0.5+dy, s*0.85-1+dy
	half := math.Max(0.75, s/20)

	// Indexed by bit position, a..g.
	segs := [7]segment{
		{left, top, right, top},
		{right, top, right, mid},
		{right, mid, right, bottom},
		{left, bottom, right, bottom},
		{left, mid, left, bottom},
		{left, top, left, mid},
		{left, mid, right, mid},
	}
	mask := digitSegments[digit]
	var x, y, k int
	for y = 0; y < side; y++ {
		for x = 0; x < side; x++ {
			for k = range segs {
				if mask&(1<<k) == 0 {
					continue
				}
				if distToSegment(float64(x), float64(y), segs[k]) <= half {
					img[y*side+x] = 1
					break
				}
			}
		}
	}
}

func distToSegment(px, py float64, sg segment) float64 {
	vx, vy := sg.x1-sg.x0, sg.y1-sg.y0
	t := 0.0
	if l2 := vx*vx + vy*vy; l2 > 0 {
		t = min(max(((px-sg.x0)*vx+(py-sg.y0)*vy)/l2, 0), 1)
	}

	return math.Hypot(px-(sg.x0+t*vx), py-(sg.y0+t*vy))
}
