// Package rating implements the Glicko-2 rating system by Professor Mark E.
// Glickman. All rating inputs and outputs are on the public Glicko "1500"
// scale; internally everything is converted to and computed on the Glicko-2
// mu/phi scale. The system is specified on http://www.glicko.com/
package rating

import "math"

// --- Glicko-2 constants (paper values) ---
const (
	g2Scale = 173.7178 // rating scale between r<->mu
	pi2     = math.Pi * math.Pi
)

// Standard starting values on the public scale, plus the system constant tau
// which bounds how fast volatility may change. Reasonable tau values are in
// [0.3, 1.2]; nothing here enforces that.
const (
	DefaultRating     = 1500.0
	DefaultDeviation  = 350.0
	DefaultVolatility = 0.06
	DefaultTau        = 0.3
)

// Outcome is a game result from the recording player's point of view.
type Outcome int

const (
	Loss Outcome = iota // scored 0.0
	Draw                // scored 0.5
	Win                 // scored 1.0
)

func (o Outcome) String() string {
	switch o {
	case Loss:
		return "loss"
	case Draw:
		return "draw"
	case Win:
		return "win"
	}
	return "invalid"
}

// score maps an outcome onto the model's {0, 0.5, 1} scale. Anything outside
// the three named outcomes is undefined in Glicko-2 and gets rejected here.
func (o Outcome) score() (float64, error) {
	switch o {
	case Loss:
		return 0.0, nil
	case Draw:
		return 0.5, nil
	case Win:
		return 1.0, nil
	}
	return 0, ErrInvalidOutcome
}

// --- public <-> internal scale ---

func toMu(r float64) float64      { return (r - 1500.0) / g2Scale }
func fromMu(mu float64) float64   { return mu*g2Scale + 1500.0 }
func toPhi(rd float64) float64    { return rd / g2Scale }
func fromPhi(phi float64) float64 { return phi * g2Scale }

// g(phi_j) and E(mu, mu_j, phi_j) from the Glicko-2 paper.
func g(phi float64) float64 { return 1.0 / math.Sqrt(1.0+3.0*phi*phi/pi2) }
func expectedScore(mu, muj, phij float64) float64 {
	return 1.0 / (1.0 + math.Exp(-g(phij)*(mu-muj)))
}

// gameResult is one recorded game: the opponent's mu/phi copied at record
// time plus the observed score. The copy matters — re-rating the opponent
// afterwards must not change this player's next Update.
type gameResult struct {
	oppMu  float64
	oppPhi float64
	score  float64
}

// Player holds one competitor's rating state. Results accumulate through
// AddResult and friends; no calculation happens until Update runs.
//
// A Player is not safe for concurrent mutation; that exclusivity is the
// caller's job. Two players never share state (opponents are snapshotted),
// so distinct players may be updated in parallel.
type Player struct {
	mu      float64 // rating, Glicko-2 scale
	phi     float64 // deviation, Glicko-2 scale
	sigma   float64 // volatility (same on both scales)
	pending []gameResult
}

// NewPlayer returns a fresh player at the standard defaults (1500, 350, 0.06).
func NewPlayer() *Player {
	return NewPlayerWith(DefaultRating, DefaultDeviation, DefaultVolatility)
}

// NewPlayerWith seeds specific public-scale starting values.
func NewPlayerWith(rating, deviation, volatility float64) *Player {
	p := new(Player)
	p.SetRating(rating)
	p.SetDeviation(deviation)
	p.SetVolatility(volatility)
	return p
}

// Rating returns the current rating on the public Glicko scale.
func (p *Player) Rating() float64 { return fromMu(p.mu) }

// Deviation returns the current rating deviation on the public Glicko scale.
func (p *Player) Deviation() float64 { return fromPhi(p.phi) }

// Volatility returns the current rating volatility.
func (p *Player) Volatility() float64 { return p.sigma }

// SetRating sets a public-scale Glicko rating.
func (p *Player) SetRating(rating float64) { p.mu = toMu(rating) }

// SetDeviation sets a public-scale Glicko rating deviation.
func (p *Player) SetDeviation(deviation float64) { p.phi = toPhi(deviation) }

// SetVolatility sets the rating volatility.
func (p *Player) SetVolatility(volatility float64) { p.sigma = volatility }

// AddResult records a game against opponent, from this player's point of
// view. The opponent's current rating and deviation are copied into the
// result log. Outcomes outside Win, Loss, and Draw are rejected with
// ErrInvalidOutcome and nothing is recorded.
func (p *Player) AddResult(opponent *Player, outcome Outcome) error {
	s, err := outcome.score()
	if err != nil {
		return err
	}
	p.pending = append(p.pending, gameResult{oppMu: opponent.mu, oppPhi: opponent.phi, score: s})
	return nil
}

// AddWin records a win over opponent.
func (p *Player) AddWin(opponent *Player) { _ = p.AddResult(opponent, Win) }

// AddLoss records a loss to opponent.
func (p *Player) AddLoss(opponent *Player) { _ = p.AddResult(opponent, Loss) }

// AddDraw records a draw with opponent.
func (p *Player) AddDraw(opponent *Player) { _ = p.AddResult(opponent, Draw) }

// ClearResults drops every recorded result without applying it. Update calls
// this automatically on success.
func (p *Player) ClearResults() { p.pending = nil }

// PendingGames reports how many results are waiting for the next Update.
func (p *Player) PendingGames() int { return len(p.pending) }

// Update applies every recorded result as one rating period using the
// default tau, then clears the result log. A player with no recorded results
// is left untouched — see Age for the canonical inactive-period step.
func (p *Player) Update() error { return p.UpdateTau(DefaultTau) }

// UpdateTau is Update with an explicit system constant tau.
//
// On ErrDivergence the player keeps its prior rating, deviation, volatility,
// and result log: an update either fully commits or fully fails.
func (p *Player) UpdateTau(tau float64) error {
	if len(p.pending) == 0 {
		return nil
	}

	// Estimated variance of the rating from game outcomes alone, and the
	// estimated rating improvement delta (steps 3-4 of the paper).
	var sumG2E, sumGSE float64
	for _, r := range p.pending {
		gj := g(r.oppPhi)
		ej := expectedScore(p.mu, r.oppMu, r.oppPhi)
		sumG2E += gj * gj * ej * (1.0 - ej)
		sumGSE += gj * (r.score - ej)
	}
	v := 1.0 / sumG2E
	delta := v * sumGSE

	// New volatility (step 5), then the deviation inflated for the elapsed
	// period (step 6) and shrunk by the new information (step 7).
	sigma, err := solveVolatility(p.phi, v, delta, p.sigma, tau)
	if err != nil {
		return err
	}
	phiStar := math.Sqrt(p.phi*p.phi + sigma*sigma)
	phiNew := 1.0 / math.Sqrt(1.0/(phiStar*phiStar)+1.0/v)

	p.mu += phiNew * phiNew * sumGSE
	p.phi = phiNew
	p.sigma = sigma
	p.ClearResults()
	return nil
}

// Age applies the inactive-period step on its own: deviation grows with
// volatility, rating stays put. Official Glicko-2 prescribes this for a
// player with no games in a period, while Update deliberately leaves such a
// player untouched, so callers opt in here. Pending results are unaffected.
func (p *Player) Age() {
	p.phi = math.Sqrt(p.phi*p.phi + p.sigma*p.sigma)
}

// ProbWin estimates the probability of beating opponent in a single game
// right now, using the Glicko win expectancy over both players' deviations.
func (p *Player) ProbWin(opponent *Player) float64 {
	rdsq := p.Deviation()*p.Deviation() + opponent.Deviation()*opponent.Deviation()
	return 1.0 / (1.0 + math.Pow(10.0, (opponent.Rating()-p.Rating())/(400.0*math.Sqrt(1.0+0.0000100723986*rdsq))))
}

// Less reports whether p's rating is below other's, for sorting collections
// of players. Deviation and volatility never enter the comparison.
func (p *Player) Less(other *Player) bool { return p.mu < other.mu }
