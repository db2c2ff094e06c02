package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/philly/quillpost/internal/posts/domain"
	"github.com/philly/quillpost/internal/posts/ports"
)

type demoPost struct {
	title, content, author string
	age                    time.Duration
}

var demoPosts = []demoPost{
	{
		title:   "The Rise of Decentralized Finance",
		content: "Decentralized Finance (DeFi) is an emerging and rapidly evolving field in the blockchain industry. It refers to the shift from traditional, centralized financial systems to peer-to-peer finance enabled by decentralized technologies built on Ethereum and other blockchains.",
		author:  "Alex Thompson",
		age:     72 * time.Hour,
	},
	{
		title:   "The Impact of Artificial Intelligence on Modern Businesses",
		content: "Artificial Intelligence (AI) is no longer a concept of the future. It's very much a part of our present, reshaping industries and enhancing the capabilities of existing systems.",
		author:  "Mia Williams",
		age:     48 * time.Hour,
	},
	{
		title:   "Sustainable Living: Tips for an Eco-Friendly Lifestyle",
		content: "Sustainability is more than just a buzzword; it's a way of life. Small changes to what we buy and how we travel add up to a lighter footprint.",
		author:  "Samuel Green",
		age:     24 * time.Hour,
	},
}

// DemoPostsSeeder fills an empty post store with a few sample posts
type DemoPostsSeeder struct {
	repo ports.PostRepository
	now  func() time.Time
}

func NewDemoPostsSeeder(repo ports.PostRepository) *DemoPostsSeeder {
	return &DemoPostsSeeder{repo: repo, now: time.Now}
}

func (s *DemoPostsSeeder) Name() string {
	return "DemoPostsSeeder"
}

// Seed does nothing when any post already exists
func (s *DemoPostsSeeder) Seed(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count posts: %w", err)
	}
	if n > 0 {
		return nil
	}

	now := s.now()
	for _, d := range demoPosts {
		post, err := domain.NewPost(d.title, d.content, d.author, now.Add(-d.age))
		if err != nil {
			return fmt.Errorf("build demo post %q: %w", d.title, err)
		}
		if err := s.repo.Create(ctx, post); err != nil {
			return fmt.Errorf("create demo post %q: %w", d.title, err)
		}
	}
	return nil
}
