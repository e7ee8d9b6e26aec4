// Package surprise picks novelty payloads (quotes, jokes, facts, ASCII art...)
// either at random per request or deterministically per UTC day.
package surprise

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

var (
	ErrEmptyPool   = errors.New("no content available")
	ErrUnknownKind = errors.New("unknown surprise kind")
)

// Kind enumerates the surprise categories.
type Kind int

const (
	KindQuote Kind = iota
	KindJoke
	KindFact
	KindASCIIArt
	KindChallenge
	KindMotivation
	KindCelebration
	KindGame
)

var kindNames = [...]string{
	KindQuote:       "quote",
	KindJoke:        "joke",
	KindFact:        "fact",
	KindASCIIArt:    "ascii_art",
	KindChallenge:   "challenge",
	KindMotivation:  "motivation",
	KindCelebration: "celebration",
	KindGame:        "game",
}

func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) valid() bool {
	return k >= 0 && int(k) < len(kindNames)
}

// Kinds returns every registered kind in registration order.
func Kinds() []Kind {
	kinds := make([]Kind, len(kindNames))
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// ParseKind maps a category name such as "ascii_art" to its Kind.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownKind)
}

// Surprise is a single generated payload.
type Surprise struct {
	Type      string         `json:"type"`
	Content   map[string]any `json:"content"`
	Timestamp string         `json:"timestamp"`
	// Secret is the mini-game's hidden number. It is never sent to clients.
	Secret int `json:"-"`
}

// Source is the random source generators draw from. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// globalSource draws from the process-wide math/rand/v2 generator, which is
// safe for concurrent use and never reseeded.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

type generator func(p *Pools, src Source) (Surprise, error)

// generators is indexed by Kind.
var generators = [...]generator{
	KindQuote:       quote,
	KindJoke:        joke,
	KindFact:        fact,
	KindASCIIArt:    asciiArt,
	KindChallenge:   challenge,
	KindMotivation:  motivation,
	KindCelebration: celebration,
	KindGame:        game,
}

// Selector produces surprises from a fixed set of pools.
type Selector struct {
	pools Pools
	src   Source
	now   func() time.Time
}

// New creates a Selector over the given pools using the shared random source.
func New(pools Pools) *Selector {
	return &Selector{
		pools: pools,
		src:   globalSource{},
		now:   time.Now,
	}
}

// Default creates a Selector over the built-in pools.
func Default() *Selector {
	return New(DefaultPools())
}

// Pick generates a surprise of the given kind.
func (s *Selector) Pick(kind Kind) (Surprise, error) {
	return s.generate(kind, s.src)
}

// Random generates a surprise of a uniformly chosen kind.
func (s *Selector) Random() (Surprise, error) {
	return s.random(s.src)
}

// Daily returns today's surprise. Every call within one UTC day yields the
// same type and content.
func (s *Selector) Daily() (Surprise, error) {
	return s.DailyAt(s.now())
}

// DailyAt returns the daily surprise for the UTC calendar day containing t.
// The draw uses a generator local to this call; the shared source is untouched.
func (s *Selector) DailyAt(t time.Time) (Surprise, error) {
	seed := uint64(DailySeed(t))
	src := rand.New(rand.NewPCG(seed, seed))

	sp, err := s.random(src)
	if err != nil {
		return Surprise{}, err
	}

	content := make(map[string]any, len(sp.Content)+1)
	for k, v := range sp.Content {
		content[k] = v
	}
	content["daily"] = true

	sp.Type = "daily_" + sp.Type
	sp.Content = content
	return sp, nil
}

// DailySeed is the UTC date of t as the integer YYYYMMDD.
func DailySeed(t time.Time) int64 {
	u := t.UTC()
	return int64(u.Year()*10000 + int(u.Month())*100 + u.Day())
}

func (s *Selector) random(src Source) (Surprise, error) {
	kind := Kind(src.IntN(len(generators)))
	return s.generate(kind, src)
}

func (s *Selector) generate(kind Kind, src Source) (Surprise, error) {
	if !kind.valid() {
		return Surprise{}, fmt.Errorf("%s: %w", kind, ErrUnknownKind)
	}
	sp, err := generators[kind](&s.pools, src)
	if err != nil {
		return Surprise{}, err
	}
	sp.Type = kind.String()
	sp.Timestamp = s.now().UTC().Format(time.RFC3339Nano)
	return sp, nil
}

func pick[T any](src Source, kind Kind, pool []T) (T, error) {
	var zero T
	if len(pool) == 0 {
		return zero, fmt.Errorf("%s: %w", kind, ErrEmptyPool)
	}
	return pool[src.IntN(len(pool))], nil
}

func quote(p *Pools, src Source) (Surprise, error) {
	q, err := pick(src, KindQuote, p.Quotes)
	if err != nil {
		return Surprise{}, err
	}
	return Surprise{Content: map[string]any{
		"quote":  q.Text,
		"author": q.Author,
		"emoji":  "💭",
	}}, nil
}

func joke(p *Pools, src Source) (Surprise, error) {
	j, err := pick(src, KindJoke, p.Jokes)
	if err != nil {
		return Surprise{}, err
	}
	return Surprise{Content: map[string]any{
		"setup":     j.Setup,
		"punchline": j.Punchline,
		"emoji":     "😄",
	}}, nil
}

func fact(p *Pools, src Source) (Surprise, error) {
	f, err := pick(src, KindFact, p.Facts)
	if err != nil {
		return Surprise{}, err
	}
	return Surprise{Content: map[string]any{
		"fact":  f,
		"emoji": "🤓",
	}}, nil
}

func asciiArt(p *Pools, src Source) (Surprise, error) {
	a, err := pick(src, KindASCIIArt, p.Art)
	if err != nil {
		return Surprise{}, err
	}
	return Surprise{Content: map[string]any{
		"name":  a.Name,
		"art":   a.Art,
		"emoji": "🎨",
	}}, nil
}

func challenge(p *Pools, src Source) (Surprise, error) {
	c, err := pick(src, KindChallenge, p.Challenges)
	if err != nil {
		return Surprise{}, err
	}
	return Surprise{Content: map[string]any{
		"challenge":  c.Challenge,
		"difficulty": c.Difficulty,
		"hint":       c.Hint,
		"emoji":      "💻",
	}}, nil
}

func motivation(p *Pools, src Source) (Surprise, error) {
	m, err := pick(src, KindMotivation, p.Motivations)
	if err != nil {
		return Surprise{}, err
	}
	return Surprise{Content: map[string]any{
		"message": m,
		"emoji":   "✨",
	}}, nil
}

func celebration(_ *Pools, _ Source) (Surprise, error) {
	return Surprise{Content: map[string]any{
		"message":  celebrationMessage,
		"confetti": true,
		"emoji":    "🎊",
	}}, nil
}

func game(p *Pools, src Source) (Surprise, error) {
	g, err := pick(src, KindGame, p.Games)
	if err != nil {
		return Surprise{}, err
	}
	return Surprise{
		Content: map[string]any{
			"name":         g.Name,
			"description":  g.Description,
			"instructions": g.Instructions,
			"emoji":        "🎮",
		},
		Secret: 1 + src.IntN(100),
	}, nil
}
