package store

import (
	"sort"

	"github.com/zfogg/blogfront/pkg/model"
	"github.com/zfogg/blogfront/pkg/store/auth"
	"github.com/zfogg/blogfront/pkg/store/favorites"
	"github.com/zfogg/blogfront/pkg/store/likes"
)

// PostView is a listed post joined with its reaction and favorite state.
type PostView struct {
	model.Post
	Reactions likes.Entry `json:"reactions"`
	Favorite  bool        `json:"favorite"`
}

func Phase(s State) auth.Phase { return auth.PhaseOf(s.Auth) }

func IsFavorite(s State, id int) bool { return favorites.IsFavorite(s.Favorites, id) }

// LikesFor returns the reaction entry for a post, falling back to the
// post's own seeded counts when it has not been initialized yet.
func LikesFor(s State, id int) likes.Entry {
	if e, ok := likes.Get(s.Likes, id); ok {
		return e
	}
	for _, p := range s.Posts.Items {
		if p.ID == id {
			return likes.Entry{Likes: p.Likes, Dislikes: p.Dislikes}
		}
	}
	return likes.Entry{}
}

// Views joins the listing with reactions and favorites, in listing order.
func Views(s State) []PostView {
	out := make([]PostView, 0, len(s.Posts.Items))
	for _, p := range s.Posts.Items {
		out = append(out, ViewOf(s, p))
	}
	return out
}

// ViewOf joins one post with its reactions and favorite flag.
func ViewOf(s State, p model.Post) PostView {
	return PostView{Post: p, Reactions: LikesFor(s, p.ID), Favorite: IsFavorite(s, p.ID)}
}

// VisiblePosts are listed posts that have an image.
func VisiblePosts(s State) []model.Post {
	out := []model.Post{}
	for _, p := range s.Posts.Items {
		if p.HasImage() {
			out = append(out, p)
		}
	}
	return out
}

// FavoritePosts are listed posts the user favorited, in listing order.
func FavoritePosts(s State) []model.Post {
	out := []model.Post{}
	for _, p := range s.Posts.Items {
		if IsFavorite(s, p.ID) {
			out = append(out, p)
		}
	}
	return out
}

// PopularPosts orders the listing by current like count, keeping listing
// order between equal counts.
func PopularPosts(s State) []model.Post {
	out := append([]model.Post{}, s.Posts.Items...)
	sort.SliceStable(out, func(i, j int) bool {
		return LikesFor(s, out[i].ID).Likes > LikesFor(s, out[j].ID).Likes
	})
	return out
}
