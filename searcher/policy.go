package searcher

import "math"

// uct precomputes the exploration numerator shared by all children of a node
type uct struct {
	c       float64
	logNorm float64
}

func newUCT(c float64, N int) uct {
	return uct{c: c, logNorm: math.Log(float64(N) + 1)}
}

// exploration returns c*sqrt(ln(N+1)/(n+eps))
func (u uct) exploration(n int) float64 {
	return u.c * math.Sqrt(u.logNorm/(float64(n)+epsilon))
}

func mean(value float64, visits int) float64 {
	return value / (float64(visits) + epsilon)
}

// raveBlend mixes the child's mean with its all-moves-as-first mean.
// beta = n_rave / (n_rave + n + eps + b*n_rave*n)
func raveBlend(q float64, n int, raveValue float64, raveVisits int, b float64) float64 {
	raveQ := 0.0
	if raveVisits > 0 {
		raveQ = mean(raveValue, raveVisits)
	}
	nr, nc := float64(raveVisits), float64(n)
	beta := nr / (nr + nc + epsilon + b*nr*nc)
	return (1-beta)*q + beta*raveQ
}

// puct returns q + c*prior*sqrt(N+1)/(1+n)
func puct(q float64, n int, prior float64, N int, c float64) float64 {
	return q + c*prior*math.Sqrt(float64(N)+1)/(1+float64(n))
}
