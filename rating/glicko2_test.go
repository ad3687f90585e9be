package rating

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Worked example from http://www.glicko.com/glicko2.doc/example.html
func workedExample() (a, b, c, d *Player) {
	a = NewPlayerWith(1500.0, 200.0, 0.06)
	b = NewPlayerWith(1400.0, 30.0, 0.06)
	c = NewPlayerWith(1550.0, 100.0, 0.06)
	d = NewPlayerWith(1700.0, 300.0, 0.06)
	a.AddWin(b)
	a.AddLoss(c)
	a.AddLoss(d)
	return a, b, c, d
}

func TestWorkedExample(t *testing.T) {
	a, b, c, d := workedExample()

	// Nothing applied until Update.
	assert.Equal(t, 3, a.PendingGames())
	assert.InDelta(t, 1500.0, a.Rating(), 1e-9)
	assert.InDelta(t, 200.0, a.Deviation(), 1e-9)

	require.NoError(t, a.Update())

	assert.InDelta(t, 1464.06, a.Rating(), 0.5)
	assert.InDelta(t, 151.52, a.Deviation(), 0.5)
	assert.InDelta(t, 0.05999, a.Volatility(), 1e-4)
	assert.Equal(t, 0, a.PendingGames())

	// Opponents never recorded anything, so they are untouched.
	assert.InDelta(t, 1400.0, b.Rating(), 1e-9)
	assert.InDelta(t, 1550.0, c.Rating(), 1e-9)
	assert.InDelta(t, 1700.0, d.Rating(), 1e-9)
}

func TestWorkedExampleViaAddResult(t *testing.T) {
	a := NewPlayerWith(1500.0, 200.0, 0.06)
	b := NewPlayerWith(1400.0, 30.0, 0.06)
	c := NewPlayerWith(1550.0, 100.0, 0.06)
	d := NewPlayerWith(1700.0, 300.0, 0.06)

	require.NoError(t, a.AddResult(b, Win))
	require.NoError(t, a.AddResult(c, Loss))
	require.NoError(t, a.AddResult(d, Loss))
	require.NoError(t, a.Update())

	assert.InDelta(t, 1464.06, a.Rating(), 0.5)
	assert.InDelta(t, 151.52, a.Deviation(), 0.5)
}

func TestDefaults(t *testing.T) {
	p := NewPlayer()
	assert.InDelta(t, 1500.0, p.Rating(), 1e-9)
	assert.InDelta(t, 350.0, p.Deviation(), 1e-9)
	assert.InDelta(t, 0.06, p.Volatility(), 1e-12)
	assert.Equal(t, 0, p.PendingGames())
}

func TestScaleRoundTrip(t *testing.T) {
	tests := []struct {
		name              string
		rating, deviation float64
	}{
		{"defaults", 1500.0, 350.0},
		{"low", 312.5, 25.0},
		{"high", 2875.0, 412.75},
		{"negative rating", -100.0, 90.0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := NewPlayer()
			p.SetRating(test.rating)
			p.SetDeviation(test.deviation)
			assert.InDelta(t, test.rating, p.Rating(), 1e-9)
			assert.InDelta(t, test.deviation, p.Deviation(), 1e-9)
		})
	}
}

func TestEmptyUpdateIsNoOp(t *testing.T) {
	p := NewPlayerWith(1623.0, 81.5, 0.0571)
	r, rd, vol := p.Rating(), p.Deviation(), p.Volatility()

	require.NoError(t, p.Update())

	// Bit-for-bit: an idle player's state must not drift.
	assert.Equal(t, r, p.Rating())
	assert.Equal(t, rd, p.Deviation())
	assert.Equal(t, vol, p.Volatility())
	assert.Equal(t, 0, p.PendingGames())
}

func TestSnapshotIsolation(t *testing.T) {
	subject := NewPlayerWith(1500.0, 200.0, 0.06)
	control := NewPlayerWith(1500.0, 200.0, 0.06)
	opp := NewPlayerWith(1400.0, 30.0, 0.06)

	subject.AddWin(opp)
	control.AddWin(opp)

	// Mutating the opponent after the fact must not leak into the
	// subject's already-recorded result.
	opp.SetRating(2400.0)
	opp.SetDeviation(350.0)
	opp.SetVolatility(1.0)

	require.NoError(t, subject.Update())
	require.NoError(t, control.Update())

	assert.Equal(t, control.Rating(), subject.Rating())
	assert.Equal(t, control.Deviation(), subject.Deviation())
	assert.Equal(t, control.Volatility(), subject.Volatility())
}

func TestOpponentUpdateDoesNotLeak(t *testing.T) {
	subject := NewPlayerWith(1500.0, 200.0, 0.06)
	control := NewPlayerWith(1500.0, 200.0, 0.06)
	opp := NewPlayerWith(1400.0, 30.0, 0.06)

	subject.AddWin(opp)
	control.AddWin(opp)

	// The opponent rates its own period before the subject does.
	opp.AddLoss(subject)
	require.NoError(t, opp.Update())

	require.NoError(t, subject.Update())
	require.NoError(t, control.Update())
	assert.Equal(t, control.Rating(), subject.Rating())
}

func TestClearResults(t *testing.T) {
	p := NewPlayerWith(1500.0, 200.0, 0.06)
	opp := NewPlayer()
	p.AddWin(opp)
	p.AddDraw(opp)
	require.Equal(t, 2, p.PendingGames())

	p.ClearResults()
	assert.Equal(t, 0, p.PendingGames())

	// Idempotent.
	p.ClearResults()
	assert.Equal(t, 0, p.PendingGames())

	// Discarded results must not influence the next update.
	require.NoError(t, p.Update())
	assert.InDelta(t, 1500.0, p.Rating(), 1e-9)
	assert.InDelta(t, 200.0, p.Deviation(), 1e-9)
}

func TestAddResultRejectsInvalidOutcome(t *testing.T) {
	p := NewPlayer()
	opp := NewPlayer()

	err := p.AddResult(opp, Outcome(7))
	assert.ErrorIs(t, err, ErrInvalidOutcome)
	assert.Equal(t, 0, p.PendingGames())

	err = p.AddResult(opp, Outcome(-1))
	assert.ErrorIs(t, err, ErrInvalidOutcome)
	assert.Equal(t, 0, p.PendingGames())
}

func TestAge(t *testing.T) {
	// From the reference implementation: rating the worked example and then
	// sitting out a period takes A's deviation from 151.52 to 151.87.
	a, _, _, _ := workedExample()
	require.NoError(t, a.Update())

	r, vol := a.Rating(), a.Volatility()
	a.Age()

	assert.InDelta(t, 151.87, a.Deviation(), 0.01)
	assert.Equal(t, r, a.Rating())
	assert.Equal(t, vol, a.Volatility())
}

func TestUpdateTau(t *testing.T) {
	a, _, _, _ := workedExample()
	require.NoError(t, a.UpdateTau(0.5)) // the paper's own tau

	assert.InDelta(t, 1464.06, a.Rating(), 0.5)
	assert.InDelta(t, 151.52, a.Deviation(), 0.5)
	assert.InDelta(t, 0.05999, a.Volatility(), 1e-4)
}

func TestProbWin(t *testing.T) {
	p := NewPlayerWith(1500.0, 100.0, 0.06)
	q := NewPlayerWith(1500.0, 100.0, 0.06)
	assert.InDelta(t, 0.5, p.ProbWin(q), 1e-12)

	stronger := NewPlayerWith(1800.0, 50.0, 0.06)
	weaker := NewPlayerWith(1200.0, 50.0, 0.06)
	assert.Greater(t, stronger.ProbWin(weaker), 0.5)
	assert.Less(t, weaker.ProbWin(stronger), 0.5)
	assert.InDelta(t, 1.0, stronger.ProbWin(weaker)+weaker.ProbWin(stronger), 1e-12)
}

func TestLess(t *testing.T) {
	lo := NewPlayerWith(1400.0, 350.0, 0.06)
	hi := NewPlayerWith(1600.0, 30.0, 0.06)
	assert.True(t, lo.Less(hi))
	assert.False(t, hi.Less(lo))
	assert.False(t, lo.Less(lo))
}

func TestG(t *testing.T) {
	assert.InDelta(t, 1.0, g(0.0), 1e-12)

	// Strictly decreasing in phi.
	prev := g(0.0)
	for phi := 0.25; phi <= 5.0; phi += 0.25 {
		cur := g(phi)
		assert.Less(t, cur, prev, "g must decrease at phi=%v", phi)
		assert.Greater(t, cur, 0.0)
		prev = cur
	}
}

func TestExpectedScore(t *testing.T) {
	// Even match against a perfectly known opponent.
	assert.InDelta(t, 0.5, expectedScore(0.0, 0.0, 0.0), 1e-12)

	tests := []struct {
		name          string
		mu, muj, phij float64
	}{
		{"even", 0.0, 0.0, 1.0},
		{"favorite", 1.5, -1.5, 0.5},
		{"underdog", -2.0, 2.0, 0.1},
		{"wide opponent", 0.0, 3.0, 4.0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			e := expectedScore(test.mu, test.muj, test.phij)
			assert.Greater(t, e, 0.0)
			assert.Less(t, e, 1.0)
		})
	}

	// Higher rating means higher expectation against the same opponent.
	assert.Greater(t, expectedScore(1.0, 0.0, 0.3), expectedScore(-1.0, 0.0, 0.3))
}

func TestPostUpdateDeviationFiniteAndPositive(t *testing.T) {
	p := NewPlayerWith(1500.0, 350.0, 0.06)
	opp := NewPlayerWith(3000.0, 10.0, 0.06)
	for i := 0; i < 20; i++ {
		p.AddWin(opp)
	}
	require.NoError(t, p.Update())
	assert.True(t, p.Deviation() > 0)
	assert.False(t, math.IsNaN(p.Deviation()) || math.IsInf(p.Deviation(), 0))
	assert.False(t, math.IsNaN(p.Rating()) || math.IsInf(p.Rating(), 0))
	assert.False(t, math.IsNaN(p.Volatility()) || math.IsInf(p.Volatility(), 0))
}
