// Package seed produces synthetic like/dislike counts for demo listings.
// The blog API has no reaction counters, so these numbers are fixtures and
// never reach the server.
package seed

import (
	"sync"

	"github.com/brianvoe/gofakeit/v7"
)

const (
	MinLikes    = 10
	MaxLikes    = 209
	MinDislikes = 1
	MaxDislikes = 20
)

// Seeder returns the initial counts for a post.
type Seeder interface {
	Seed(postID int) (likes, dislikes int)
}

// Zero seeds every post with no reactions.
type Zero struct{}

func (Zero) Seed(int) (int, int) { return 0, 0 }

// Demo draws counts from a gofakeit source. A seed of 0 is time-random.
type Demo struct {
	mu    sync.Mutex
	faker *gofakeit.Faker
}

func NewDemo(seed uint64) *Demo {
	return &Demo{faker: gofakeit.New(seed)}
}

func (d *Demo) Seed(int) (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.faker.IntRange(MinLikes, MaxLikes), d.faker.IntRange(MinDislikes, MaxDislikes)
}

// For returns the seeder selected by the demo flag.
func For(demo bool, seed uint64) Seeder {
	if demo {
		return NewDemo(seed)
	}
	return Zero{}
}
