package main

import (
	"math"
	"math/rand"
)

// simplex is 2D simplex noise over a seed-shuffled permutation table.
type simplex struct {
	perm [512]int
}

func newSimplex(seed int64) *simplex {
	s := &simplex{}
	rng := rand.New(rand.NewSource(seed))
	p := rng.Perm(256)
	for i := range s.perm {
		s.perm[i] = p[i&255]
	}
	return s
}

// gradient dots one of eight fixed directions with (x, y).
func gradient(hash int, x, y float64) float64 {
	h := hash & 7
	u, v := x, y
	if h >= 4 {
		u, v = y, x
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

const (
	skew   = 0.3660254037844386  // (sqrt(3) - 1) / 2
	unskew = 0.21132486540518713 // (3 - sqrt(3)) / 6
)

// corner is the contribution of one simplex corner at offset (x, y).
func (s *simplex) corner(hash int, x, y float64) float64 {
	t := 0.5 - x*x - y*y
	if t <= 0 {
		return 0
	}
	t *= t
	return t * t * gradient(hash, x, y)
}

// at returns noise in [-1, 1].
func (s *simplex) at(x, y float64) float64 {
	k := (x + y) * skew
	i := math.Floor(x + k)
	j := math.Floor(y + k)

	t := (i + j) * unskew
	x0 := x - (i - t)
	y0 := y - (j - t)

	i1, j1 := 0, 1
	if x0 > y0 {
		i1, j1 = 1, 0
	}

	x1 := x0 - float64(i1) + unskew
	y1 := y0 - float64(j1) + unskew
	x2 := x0 - 1 + 2*unskew
	y2 := y0 - 1 + 2*unskew

	ii := int(i) & 255
	jj := int(j) & 255

	n := s.corner(s.perm[ii+s.perm[jj]], x0, y0) +
		s.corner(s.perm[ii+i1+s.perm[jj+j1]], x1, y1) +
		s.corner(s.perm[ii+1+s.perm[jj+1]], x2, y2)
	return 70 * n
}

// fbm sums octaves of noise, each at twice the frequency and half the
// amplitude of the last, normalised to [0, 1].
func (s *simplex) fbm(x, y, freq float64, octaves int) float64 {
	var total, norm float64
	amp := 1.0
	for o := 0; o < octaves; o++ {
		total += s.at(x*freq, y*freq) * amp
		norm += amp
		freq *= 2
		amp /= 2
	}
	return (total/norm + 1) / 2
}
