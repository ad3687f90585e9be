package main

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"skillrate/rating"
)

var (
	errUnknownPlayer = errors.New("unknown player")
	errDuplicate     = errors.New("player already registered")
)

// Registry keeps the demonstration service's players in memory. The rating
// core defines no synchronization of its own, so all mutation is serialized
// behind one mutex here.
type Registry struct {
	mu      sync.Mutex
	tau     float64
	players map[string]*rating.Player
}

func NewRegistry(tau float64) *Registry {
	return &Registry{tau: tau, players: make(map[string]*rating.Player)}
}

// PlayerView is a public-scale snapshot of one player, as served to clients.
type PlayerView struct {
	Name       string  `json:"name"`
	Rating     float64 `json:"rating"`
	Deviation  float64 `json:"deviation"`
	Volatility float64 `json:"volatility"`
	Pending    int     `json:"pending_games"`
}

func view(name string, p *rating.Player) PlayerView {
	return PlayerView{
		Name:       name,
		Rating:     p.Rating(),
		Deviation:  p.Deviation(),
		Volatility: p.Volatility(),
		Pending:    p.PendingGames(),
	}
}

// Register adds a new player. Zero-valued fields fall back to the standard
// Glicko-2 starting values.
func (reg *Registry) Register(name string, ratingVal, deviation, volatility float64) (PlayerView, error) {
	if ratingVal == 0 {
		ratingVal = rating.DefaultRating
	}
	if deviation == 0 {
		deviation = rating.DefaultDeviation
	}
	if volatility == 0 {
		volatility = rating.DefaultVolatility
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, ok := reg.players[name]; ok {
		return PlayerView{}, errDuplicate
	}
	p := rating.NewPlayerWith(ratingVal, deviation, volatility)
	reg.players[name] = p
	return view(name, p), nil
}

// Get returns the current snapshot for one player.
func (reg *Registry) Get(name string) (PlayerView, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	p, ok := reg.players[name]
	if !ok {
		return PlayerView{}, fmt.Errorf("%w: %s", errUnknownPlayer, name)
	}
	return view(name, p), nil
}

// mirror flips an outcome to the other side's point of view.
func mirror(o rating.Outcome) rating.Outcome {
	switch o {
	case rating.Win:
		return rating.Loss
	case rating.Loss:
		return rating.Win
	}
	return rating.Draw
}

// RecordGame records one game for both sides; result is from home's point
// of view. Nothing is rated until the period closes.
func (reg *Registry) RecordGame(home, away string, result rating.Outcome) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	h, ok := reg.players[home]
	if !ok {
		return fmt.Errorf("%w: %s", errUnknownPlayer, home)
	}
	a, ok := reg.players[away]
	if !ok {
		return fmt.Errorf("%w: %s", errUnknownPlayer, away)
	}
	if err := h.AddResult(a, result); err != nil {
		return err
	}
	return a.AddResult(h, mirror(result))
}

// ClosePeriod rates every player's accumulated results with the configured
// tau. A player whose solve diverges keeps its prior state and is reported
// in failed; everyone else commits normally.
func (reg *Registry) ClosePeriod() (updated int, failed map[string]string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	failed = make(map[string]string)
	for _, name := range reg.sortedNames() {
		p := reg.players[name]
		if p.PendingGames() == 0 {
			continue
		}
		if err := p.UpdateTau(reg.tau); err != nil {
			failed[name] = err.Error()
			continue
		}
		updated++
	}
	return updated, failed
}

// Leaderboard returns every player, best rating first. Ties break by name
// so the order is stable across calls.
func (reg *Registry) Leaderboard() []PlayerView {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	out := make([]PlayerView, 0, len(reg.players))
	for name, p := range reg.players {
		out = append(out, view(name, p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (reg *Registry) sortedNames() []string {
	names := make([]string, 0, len(reg.players))
	for name := range reg.players {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
